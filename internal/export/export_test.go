package export

import (
	"bytes"
	"errors"
	"testing"
)

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{"": FormatPDF, "PDF": FormatPDF, " xlsx ": FormatXLSX}
	for in, want := range cases {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("csv"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestWriteXLSXReadsBack(t *testing.T) {
	table := Table{
		Title:   "Class requests",
		Headers: []string{"Student", "Date", "Time", "Status"},
		Rows: [][]string{
			{"Asha", "2025-11-01", "18:00", "approved"},
			{"Ravi", "2025-11-02", "09:30", "pending"},
		},
	}

	var buf bytes.Buffer
	if err := NewRenderer("").Render(&buf, FormatXLSX, table); err != nil {
		t.Fatalf("render xlsx: %v", err)
	}

	rows, err := ReadXLSX(&buf)
	if err != nil {
		t.Fatalf("read xlsx: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "Student" || rows[2][0] != "Ravi" || rows[1][3] != "approved" {
		t.Errorf("unexpected rows %v", rows)
	}
}

func TestWritePDFRequiresFont(t *testing.T) {
	var buf bytes.Buffer
	err := NewRenderer("/nonexistent/font.ttf").Render(&buf, FormatPDF, Table{Title: "Users", Headers: []string{"Name"}})
	if err == nil {
		t.Fatal("expected font load error")
	}
}

func TestSheetName(t *testing.T) {
	if got := sheetName(""); got != "Export" {
		t.Errorf("empty title: got %q", got)
	}
	long := "Approved class requests for the whole season"
	if got := sheetName(long); len([]rune(got)) != 31 {
		t.Errorf("expected 31 runes, got %d", len([]rune(got)))
	}
}
