package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEntries() []GuestEntry {
	base := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	return []GuestEntry{
		{ID: "a1", Name: "Siti Rahma", Institution: "Puskesmas Soasio", Phone: "0812", Purpose: "Pemeriksaan Kesehatan", Notes: "Skrining rutin", Timestamp: base},
		{ID: "b2", Name: "Budi Santoso", Institution: "SMAN 1 Tidore", Phone: "0813", Purpose: "Studi Banding", Notes: "Kunjungan OSIS", Timestamp: base.Add(2 * time.Hour)},
		{ID: "c3", Name: "Andi Wijaya", Institution: "PMI Kota Ternate", Phone: "0814", Purpose: "Koordinasi Program", Notes: "Jadwal donor darah", Timestamp: base.Add(time.Hour)},
	}
}

func TestFilterEntries(t *testing.T) {
	entries := testEntries()

	t.Run("all sentinel keeps everything", func(t *testing.T) {
		assert.Len(t, FilterEntries(entries, "", PurposeAll), len(entries))
		assert.Len(t, FilterEntries(entries, "", ""), len(entries))
	})

	t.Run("purpose filter is exact", func(t *testing.T) {
		got := FilterEntries(entries, "", "Studi Banding")
		require.Len(t, got, 1)
		assert.Equal(t, "b2", got[0].ID)

		// A purpose value no entry carries matches nothing
		assert.Empty(t, FilterEntries(entries, "", "Lainnya"))
	})

	t.Run("search matches name case-insensitively", func(t *testing.T) {
		got := FilterEntries(entries, "sITi", PurposeAll)
		require.Len(t, got, 1)
		assert.Equal(t, "a1", got[0].ID)
	})

	t.Run("search matches institution substring", func(t *testing.T) {
		got := FilterEntries(entries, "pmi", PurposeAll)
		require.Len(t, got, 1)
		assert.Equal(t, "c3", got[0].ID)
	})

	t.Run("search matching neither field excludes", func(t *testing.T) {
		assert.Empty(t, FilterEntries(entries, "tak ada", PurposeAll))
	})

	t.Run("search and purpose combine with AND", func(t *testing.T) {
		assert.Empty(t, FilterEntries(entries, "Siti", "Studi Banding"))
		assert.Len(t, FilterEntries(entries, "Siti", "Pemeriksaan Kesehatan"), 1)
	})

	t.Run("input slice is not mutated", func(t *testing.T) {
		before := testEntries()
		FilterEntries(entries, "siti", "Pemeriksaan Kesehatan")
		assert.Equal(t, before, entries)
	})
}

func TestSortEntries(t *testing.T) {
	entries := testEntries()

	t.Run("most recent first", func(t *testing.T) {
		got := SortEntries(entries)
		require.Len(t, got, 3)
		assert.Equal(t, []string{"b2", "c3", "a1"}, []string{got[0].ID, got[1].ID, got[2].ID})
	})

	t.Run("equal timestamps break ties by id", func(t *testing.T) {
		ts := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
		tied := []GuestEntry{
			{ID: "aaa", Timestamp: ts},
			{ID: "zzz", Timestamp: ts},
			{ID: "mmm", Timestamp: ts},
		}
		got := SortEntries(tied)
		assert.Equal(t, []string{"zzz", "mmm", "aaa"}, []string{got[0].ID, got[1].ID, got[2].ID})
	})
}

func TestVisibleEntries(t *testing.T) {
	entries := testEntries()

	t.Run("idempotent on an already filtered and sorted input", func(t *testing.T) {
		once := VisibleEntries(entries, "s", PurposeAll)
		twice := VisibleEntries(once, "s", PurposeAll)
		assert.Equal(t, once, twice)
	})

	t.Run("empty input stays empty", func(t *testing.T) {
		assert.Empty(t, VisibleEntries(nil, "", PurposeAll))
	})
}

func TestIsValidPurpose(t *testing.T) {
	for _, p := range VisitPurposes {
		assert.True(t, IsValidPurpose(p), p)
	}
	assert.False(t, IsValidPurpose(PurposeAll))
	assert.False(t, IsValidPurpose("Rapat"))
	assert.False(t, IsValidPurpose(""))
}

func TestLocaleFormatting(t *testing.T) {
	// 2026-03-05 03:04:05 UTC is 12:04:05 on the same day in WIT (UTC+9)
	ts := time.Date(2026, 3, 5, 3, 4, 5, 0, time.UTC)
	assert.Equal(t, "5/3/2026", formatDateID(ts))
	assert.Equal(t, "12.04.05", formatTimeID(ts))

	// Crossing midnight in WIT rolls the date forward
	late := time.Date(2026, 3, 5, 20, 30, 0, 0, time.UTC)
	assert.Equal(t, "6/3/2026", formatDateID(late))
	assert.Equal(t, "05.30.00", formatTimeID(late))
}
