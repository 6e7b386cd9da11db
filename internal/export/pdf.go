package export

import (
	"fmt"
	"io"

	"github.com/signintech/gopdf"
)

const (
	pdfMargin     = 36.0
	pdfRowHeight  = 20.0
	pdfFontSize   = 9
	pdfTitleSize  = 14
	pdfFontFamily = "body"
)

// WritePDF renders t as a landscape A4 table, repeating the header row on each page.
func WritePDF(w io.Writer, t Table, fontPath string) error {
	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4Landscape})

	if err := pdf.AddTTFFont(pdfFontFamily, fontPath); err != nil {
		return fmt.Errorf("load pdf font %s: %w", fontPath, err)
	}

	pageW := gopdf.PageSizeA4Landscape.W
	pageH := gopdf.PageSizeA4Landscape.H
	colW := (pageW - 2*pdfMargin) / float64(max(len(t.Headers), 1))

	pdf.AddPage()
	if err := pdf.SetFont(pdfFontFamily, "", pdfTitleSize); err != nil {
		return err
	}
	pdf.SetXY(pdfMargin, pdfMargin)
	if err := pdf.Cell(nil, t.Title); err != nil {
		return err
	}

	y := pdfMargin + 2*pdfRowHeight
	if err := writePDFRow(&pdf, t.Headers, y, colW, true); err != nil {
		return err
	}
	y += pdfRowHeight

	for _, row := range t.Rows {
		if y+pdfRowHeight > pageH-pdfMargin {
			pdf.AddPage()
			y = pdfMargin
			if err := writePDFRow(&pdf, t.Headers, y, colW, true); err != nil {
				return err
			}
			y += pdfRowHeight
		}
		if err := writePDFRow(&pdf, row, y, colW, false); err != nil {
			return err
		}
		y += pdfRowHeight
	}

	if _, err := pdf.WriteTo(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func writePDFRow(pdf *gopdf.GoPdf, cells []string, y, colW float64, header bool) error {
	if header {
		pdf.SetFillColor(230, 230, 230)
		pdf.RectFromUpperLeftWithStyle(pdfMargin, y, colW*float64(len(cells)), pdfRowHeight, "F")
	}
	if err := pdf.SetFont(pdfFontFamily, "", pdfFontSize); err != nil {
		return err
	}

	for i, text := range cells {
		pdf.SetXY(pdfMargin+float64(i)*colW, y)
		text = fitText(pdf, text, colW-4)
		err := pdf.CellWithOption(&gopdf.Rect{W: colW, H: pdfRowHeight}, text, gopdf.CellOption{
			Align:  gopdf.Left | gopdf.Middle,
			Border: gopdf.AllBorders,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// fitText shortens s with an ellipsis until it fits in width points.
func fitText(pdf *gopdf.GoPdf, s string, width float64) string {
	if tw, err := pdf.MeasureTextWidth(s); err != nil || tw <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + "…"
		if tw, err := pdf.MeasureTextWidth(candidate); err == nil && tw <= width {
			return candidate
		}
	}
	return ""
}
