package main

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/xuri/excelize/v2"
)

const (
	exportSheetName = "Rekap Tamu"
	exportPDFTitle  = "REKAPITULASI BUKU TAMU DIGITAL"
)

// ExportXLSXFilename returns the spreadsheet download name. The generation
// timestamp keeps repeated exports in one session from colliding.
func ExportXLSXFilename(now time.Time) string {
	return fmt.Sprintf("E-Tamu_Data_%d.xlsx", now.UnixMilli())
}

// ExportPDFFilename returns the PDF download name, timestamped the same
// way as the spreadsheet export.
func ExportPDFFilename(now time.Time) string {
	return fmt.Sprintf("Laporan_Buku_Tamu_%d.pdf", now.UnixMilli())
}

var xlsxHeader = []string{"Tanggal", "Waktu", "Nama", "Instansi", "No HP", "Tujuan", "Keperluan"}

// BuildWorkbook renders the visible (already filtered and sorted) entries
// as a single-sheet workbook, one row per entry. An empty input yields a
// valid workbook containing only the header row.
func BuildWorkbook(entries []GuestEntry) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	for col, title := range xlsxHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(exportSheetName, cell, title); err != nil {
			return nil, err
		}
	}

	for row, e := range entries {
		values := []string{
			formatDateID(e.Timestamp),
			formatTimeID(e.Timestamp),
			e.Name,
			e.Institution,
			e.Phone,
			e.Purpose,
			e.Notes,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(exportSheetName, cell, v); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

var pdfColumns = []struct {
	Title string
	Width float64
}{
	{"Tanggal", 25},
	{"Waktu", 20},
	{"Nama Tamu", 60},
	{"Instansi", 70},
	{"Tujuan", 52},
	{"Kontak", 40},
}

// BuildPDF renders the visible entries as a landscape A4 striped table
// with a fixed title and a generation-time caption. An empty input yields
// a valid single-page document with the title and table header only.
func BuildPDF(entries []GuestEntry, unitName, schoolName string, printedAt time.Time) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(14, 10)
	pdf.CellFormat(0, 8, exportPDFTitle, "", 1, "L", false, 0, "")

	caption := fmt.Sprintf("%s - Dicetak pada: %s %s",
		strings.ToUpper(strings.TrimSpace(unitName+" "+schoolName)),
		formatDateID(printedAt), formatTimeID(printedAt))
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetX(14)
	pdf.CellFormat(0, 6, caption, "", 1, "L", false, 0, "")

	pdf.SetY(30)
	writePDFTableHeader(pdf)

	pdf.SetFont("Helvetica", "", 9)
	for i, e := range entries {
		if pdf.GetY() > 185 {
			pdf.AddPage()
			pdf.SetY(15)
			writePDFTableHeader(pdf)
			pdf.SetFont("Helvetica", "", 9)
		}

		// Alternating row fill
		if i%2 == 1 {
			pdf.SetFillColor(236, 253, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		pdf.SetTextColor(30, 41, 59)

		values := []string{
			formatDateID(e.Timestamp),
			formatTimeID(e.Timestamp),
			e.Name,
			e.Institution,
			e.Purpose,
			e.Phone,
		}
		pdf.SetX(14)
		for col, v := range values {
			pdf.CellFormat(pdfColumns[col].Width, 7, truncatePDFCell(pdf, v, pdfColumns[col].Width), "", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writePDFTableHeader(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(5, 150, 105)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetX(14)
	for _, col := range pdfColumns {
		pdf.CellFormat(col.Width, 8, col.Title, "", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)
}

// truncatePDFCell shortens a value so it fits its fixed-width column.
func truncatePDFCell(pdf *fpdf.Fpdf, v string, width float64) string {
	const pad = 2.0
	if pdf.GetStringWidth(v) <= width-pad {
		return v
	}
	runes := []rune(v)
	for len(runes) > 1 {
		runes = runes[:len(runes)-1]
		if pdf.GetStringWidth(string(runes)+"...") <= width-pad {
			break
		}
	}
	return string(runes) + "..."
}
