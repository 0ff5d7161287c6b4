package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase/core"
)

// PurposeAll is the sentinel filter value that matches every visit purpose.
const PurposeAll = "Semua"

// VisitPurposes are the allowed values for a guest entry's purpose field.
// "Koordinasi Program" is the form default.
var VisitPurposes = []string{
	"Koordinasi Program",
	"Pemeriksaan Kesehatan",
	"Konsultasi Pembina",
	"Studi Banding",
	"Lainnya",
}

// GuestEntry is one recorded visitor sign-in, as served to the dashboard
// and fed into the export pipeline.
type GuestEntry struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Institution string    `json:"institution"`
	Position    string    `json:"position"`
	Phone       string    `json:"phone"`
	Purpose     string    `json:"purpose"`
	Notes       string    `json:"notes"`
	Remarks     string    `json:"remarks"`
	Timestamp   time.Time `json:"timestamp"`
}

// entryFromRecord maps a guests collection record to a GuestEntry.
// The record's created autodate is the visit timestamp; it is assigned
// exactly once by the store and never updated.
func entryFromRecord(r *core.Record) GuestEntry {
	return GuestEntry{
		ID:          r.Id,
		Name:        r.GetString("name"),
		Institution: r.GetString("institution"),
		Position:    r.GetString("position"),
		Phone:       r.GetString("phone"),
		Purpose:     r.GetString("purpose"),
		Notes:       r.GetString("notes"),
		Remarks:     r.GetString("remarks"),
		Timestamp:   r.GetDateTime("created").Time(),
	}
}

// IsValidPurpose reports whether p is one of the fixed visit purposes.
func IsValidPurpose(p string) bool {
	for _, v := range VisitPurposes {
		if v == p {
			return true
		}
	}
	return false
}

// FilterEntries keeps entries whose name or institution contains search
// (case-insensitive) and whose purpose matches the filter. The PurposeAll
// sentinel (or an empty purpose filter) matches every entry.
func FilterEntries(entries []GuestEntry, search, purpose string) []GuestEntry {
	search = strings.ToLower(strings.TrimSpace(search))

	filtered := make([]GuestEntry, 0, len(entries))
	for _, e := range entries {
		if search != "" &&
			!strings.Contains(strings.ToLower(e.Name), search) &&
			!strings.Contains(strings.ToLower(e.Institution), search) {
			continue
		}
		if purpose != "" && purpose != PurposeAll && e.Purpose != purpose {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered
}

// SortEntries orders entries most recent first. Entries sharing a
// timestamp are ordered by descending id so the result is deterministic.
func SortEntries(entries []GuestEntry) []GuestEntry {
	sorted := make([]GuestEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Timestamp.Equal(sorted[j].Timestamp) {
			return sorted[i].Timestamp.After(sorted[j].Timestamp)
		}
		return sorted[i].ID > sorted[j].ID
	})
	return sorted
}

// VisibleEntries is the dashboard's derived view: filter then sort. The
// export pipeline consumes exactly this sequence, never the raw collection.
func VisibleEntries(entries []GuestEntry, search, purpose string) []GuestEntry {
	return SortEntries(FilterEntries(entries, search, purpose))
}

// formatDateID renders a timestamp as an Indonesian short date (d/m/yyyy).
func formatDateID(t time.Time) string {
	local := t.In(displayLocation())
	return fmt.Sprintf("%d/%d/%d", local.Day(), int(local.Month()), local.Year())
}

// formatTimeID renders a timestamp as an Indonesian clock time (hh.mm.ss).
func formatTimeID(t time.Time) string {
	local := t.In(displayLocation())
	return fmt.Sprintf("%02d.%02d.%02d", local.Hour(), local.Minute(), local.Second())
}

// displayLocation is the timezone used for rendered dates and times.
// Tidore is in WIT (UTC+9).
func displayLocation() *time.Location {
	loc, err := time.LoadLocation("Asia/Jayapura")
	if err != nil {
		return time.UTC
	}
	return loc
}
