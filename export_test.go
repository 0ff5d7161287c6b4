package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportFilenames(t *testing.T) {
	now := time.UnixMilli(1756500000000)
	assert.Equal(t, "E-Tamu_Data_1756500000000.xlsx", ExportXLSXFilename(now))
	assert.Equal(t, "Laporan_Buku_Tamu_1756500000000.pdf", ExportPDFFilename(now))

	// Repeated exports in a session get distinct names
	assert.NotEqual(t, ExportXLSXFilename(now), ExportXLSXFilename(now.Add(time.Millisecond)))
}

func TestBuildWorkbook(t *testing.T) {
	t.Run("empty input yields a valid header-only workbook", func(t *testing.T) {
		data, err := BuildWorkbook(nil)
		require.NoError(t, err)

		f, err := excelize.OpenReader(bytes.NewReader(data))
		require.NoError(t, err)
		defer f.Close()

		rows, err := f.GetRows(exportSheetName)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, xlsxHeader, rows[0])
	})

	t.Run("one row per entry in given order", func(t *testing.T) {
		entries := VisibleEntries(testEntries(), "", PurposeAll)

		data, err := BuildWorkbook(entries)
		require.NoError(t, err)

		f, err := excelize.OpenReader(bytes.NewReader(data))
		require.NoError(t, err)
		defer f.Close()

		rows, err := f.GetRows(exportSheetName)
		require.NoError(t, err)
		require.Len(t, rows, len(entries)+1)

		first := rows[1]
		require.Len(t, first, len(xlsxHeader))
		assert.Equal(t, entries[0].Name, first[2])
		assert.Equal(t, entries[0].Institution, first[3])
		assert.Equal(t, entries[0].Phone, first[4])
		assert.Equal(t, entries[0].Purpose, first[5])
		assert.Equal(t, entries[0].Notes, first[6])
		assert.Equal(t, formatDateID(entries[0].Timestamp), first[0])
		assert.Equal(t, formatTimeID(entries[0].Timestamp), first[1])
	})
}

func TestBuildPDF(t *testing.T) {
	printedAt := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	t.Run("empty input yields a valid document", func(t *testing.T) {
		data, err := BuildPDF(nil, "PMR", "MAN 2 Kota Tidore Kepulauan", printedAt)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
		assert.Contains(t, string(data[len(data)-32:]), "%%EOF")
	})

	t.Run("entries render without error", func(t *testing.T) {
		entries := VisibleEntries(testEntries(), "", PurposeAll)
		data, err := BuildPDF(entries, "PMR", "MAN 2 Kota Tidore Kepulauan", printedAt)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
		// More content than the empty document
		empty, err := BuildPDF(nil, "PMR", "MAN 2 Kota Tidore Kepulauan", printedAt)
		require.NoError(t, err)
		assert.Greater(t, len(data), len(empty))
	})

	t.Run("long rows spill onto additional pages", func(t *testing.T) {
		var entries []GuestEntry
		base := time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC)
		for i := 0; i < 60; i++ {
			entries = append(entries, GuestEntry{
				ID:          "id",
				Name:        "Pengunjung",
				Institution: "Instansi",
				Phone:       "0812",
				Purpose:     VisitPurposes[0],
				Timestamp:   base.Add(time.Duration(i) * time.Minute),
			})
		}
		data, err := BuildPDF(entries, "PMR", "MAN 2", printedAt)
		require.NoError(t, err)
		// fpdf writes one /Page object per page
		assert.GreaterOrEqual(t, strings.Count(string(data), "/Type /Page"), 2)
	})
}

func TestTruncatePDFCell(t *testing.T) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 9)

	long := strings.Repeat("Instansi Panjang ", 10)
	short := truncatePDFCell(pdf, long, 40)
	assert.True(t, strings.HasSuffix(short, "..."))
	assert.Less(t, len(short), len(long))

	assert.Equal(t, "abc", truncatePDFCell(pdf, "abc", 40))
}
