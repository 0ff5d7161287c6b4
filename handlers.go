package main

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/man2tidore/etamu-backend/utils"
	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// --- Guest Log Handlers ---

// fetchAllEntries loads the full guests collection as view entries,
// newest first by store order.
func fetchAllEntries(app *pocketbase.PocketBase) ([]GuestEntry, error) {
	records, err := app.FindRecordsByFilter(utils.CollectionGuests, "", "-created", 0, 0)
	if err != nil {
		return nil, err
	}
	entries := make([]GuestEntry, len(records))
	for i, r := range records {
		entries[i] = entryFromRecord(r)
	}
	return entries, nil
}

// visibleEntriesFromRequest resolves the derived view for the request's
// search and purpose query params. Exports use the same resolution, so
// what is exported is always exactly what is visible.
func visibleEntriesFromRequest(re *core.RequestEvent, app *pocketbase.PocketBase) ([]GuestEntry, string, string, error) {
	search := re.Request.URL.Query().Get("search")
	purpose := re.Request.URL.Query().Get("purpose")

	entries, err := fetchAllEntries(app)
	if err != nil {
		return nil, search, purpose, err
	}
	return VisibleEntries(entries, search, purpose), search, purpose, nil
}

// handleGuestsList returns the filtered, sorted guest log for the dashboard.
func handleGuestsList(re *core.RequestEvent, app *pocketbase.PocketBase) error {
	visible, _, _, err := visibleEntriesFromRequest(re, app)
	if err != nil {
		log.Printf("[Guests] List failed: %v", err)
		return utils.InternalErrorResponse(re, "Failed to load guest entries")
	}

	return re.JSON(http.StatusOK, map[string]any{
		"items": visible,
		"total": len(visible),
	})
}

// handleGuestCreate records a public form submission. The store assigns
// the id and the creation timestamp; the timestamp is never touched again.
func handleGuestCreate(re *core.RequestEvent, app *pocketbase.PocketBase) error {
	var input struct {
		Name        string `json:"name"`
		Institution string `json:"institution"`
		Position    string `json:"position"`
		Phone       string `json:"phone"`
		Purpose     string `json:"purpose"`
		Notes       string `json:"notes"`
		Remarks     string `json:"remarks"`
	}
	if err := json.NewDecoder(re.Request.Body).Decode(&input); err != nil {
		return utils.BadRequestResponse(re, "Invalid JSON")
	}

	input.Name = utils.NormalizeText(input.Name)
	input.Institution = utils.NormalizeText(input.Institution)
	input.Phone = utils.NormalizeText(input.Phone)

	if input.Name == "" || input.Institution == "" || input.Phone == "" {
		return utils.BadRequestResponse(re, "Nama, instansi dan nomor HP wajib diisi")
	}
	if input.Purpose == "" {
		input.Purpose = VisitPurposes[0]
	}
	if !IsValidPurpose(input.Purpose) {
		return utils.BadRequestResponse(re, "Tujuan kunjungan tidak dikenal")
	}

	collection, err := app.FindCollectionByNameOrId(utils.CollectionGuests)
	if err != nil {
		return utils.InternalErrorResponse(re, "Collection not found")
	}

	record := core.NewRecord(collection)
	record.Set("name", input.Name)
	record.Set("institution", input.Institution)
	record.Set("position", utils.NormalizeText(input.Position))
	record.Set("phone", input.Phone)
	record.Set("purpose", input.Purpose)
	record.Set("notes", input.Notes)
	record.Set("remarks", input.Remarks)

	if err := app.Save(record); err != nil {
		log.Printf("[Guests] Create failed: %v", err)
		return utils.StoreUnavailableResponse(re, "Gagal menyimpan data kunjungan, silakan coba lagi")
	}

	utils.LogFromRequest(app, re, "create", utils.CollectionGuests, record.Id, "success", nil, "")

	return re.JSON(http.StatusCreated, entryFromRecord(record))
}

// handleGuestDelete permanently removes a single entry. Deleting an entry
// that is already gone answers 404; the dashboard treats that as done.
func handleGuestDelete(re *core.RequestEvent, app *pocketbase.PocketBase) error {
	id := re.Request.PathValue("id")

	record, err := app.FindRecordById(utils.CollectionGuests, id)
	if err != nil {
		return utils.NotFoundResponse(re, "Guest entry not found")
	}

	if err := app.Delete(record); err != nil {
		log.Printf("[Guests] Delete %s failed: %v", id, err)
		return utils.StoreUnavailableResponse(re, "Gagal menghapus data kunjungan")
	}

	utils.LogFromRequest(app, re, "delete", utils.CollectionGuests, id, "success", nil, "")

	return utils.SuccessResponse(re, "Deleted")
}

// --- Dashboard Stats ---

// handleDashboardStats returns dashboard statistics
func handleDashboardStats(re *core.RequestEvent, app *pocketbase.PocketBase) error {
	// Count entries using CountRecords (avoids loading all records into memory)
	total, _ := app.CountRecords(utils.CollectionGuests)

	todayStart := time.Now().In(displayLocation())
	todayStart = time.Date(todayStart.Year(), todayStart.Month(), todayStart.Day(), 0, 0, 0, 0, todayStart.Location())
	since := todayStart.UTC().Format("2006-01-02 15:04:05.000Z")
	today, _ := app.CountRecords(utils.CollectionGuests, dbx.NewExp(utils.FieldCreated+" >= {:since}", dbx.Params{"since": since}))

	// Per-purpose counts, and the most common purpose
	byPurpose := make(map[string]int64, len(VisitPurposes))
	topPurpose := ""
	var topCount int64
	for _, p := range VisitPurposes {
		n, _ := app.CountRecords(utils.CollectionGuests, dbx.NewExp(utils.FieldPurpose+" = {:p}", dbx.Params{"p": p}))
		byPurpose[p] = n
		if n > topCount {
			topCount = n
			topPurpose = p
		}
	}

	return utils.DataResponse(re, map[string]any{
		"total":       total,
		"today":       today,
		"by_purpose":  byPurpose,
		"top_purpose": topPurpose,
	})
}
