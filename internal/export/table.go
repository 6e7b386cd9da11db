// Package export renders tabular data as PDF or XLSX downloads.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Format is a supported download format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

// ErrUnsupportedFormat is returned for formats other than pdf and xlsx.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// ParseFormat resolves a format name, defaulting to PDF when empty.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatPDF:
		return FormatPDF, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// ContentType is the MIME type of the rendered file.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/pdf"
}

// Table is a titled grid of strings. Every row has len(Headers) cells.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// Renderer writes tables in the configured formats.
type Renderer struct {
	fontPath string
}

// NewRenderer creates a Renderer. fontPath must point to a TrueType font for PDF output.
func NewRenderer(fontPath string) *Renderer {
	return &Renderer{fontPath: fontPath}
}

// Render writes t to w in format f.
func (r *Renderer) Render(w io.Writer, f Format, t Table) error {
	switch f {
	case FormatPDF:
		return WritePDF(w, t, r.fontPath)
	case FormatXLSX:
		return WriteXLSX(w, t)
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
}
