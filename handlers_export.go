package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/man2tidore/etamu-backend/utils"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// --- Export Pipeline ---
//
// Both exports operate on the currently visible guest sequence: the same
// search and purpose params the dashboard table uses resolve the input, so
// the artifact always matches what is on screen. Neither export mutates
// the store, and an empty filtered sequence still produces a valid,
// empty-bodied artifact.

// handleExportXLSX streams the filtered view as a spreadsheet download.
func handleExportXLSX(re *core.RequestEvent, app *pocketbase.PocketBase) error {
	visible, search, purpose, err := visibleEntriesFromRequest(re, app)
	if err != nil {
		log.Printf("[Export] XLSX load failed: %v", err)
		return utils.InternalErrorResponse(re, "Failed to load guest entries")
	}

	data, err := BuildWorkbook(visible)
	if err != nil {
		log.Printf("[Export] XLSX build failed: %v", err)
		return utils.InternalErrorResponse(re, "Failed to build spreadsheet")
	}

	utils.LogFromRequest(app, re, "export", utils.CollectionGuests, "", "success",
		map[string]any{"format": "xlsx", "rows": len(visible), "search": search, "purpose": purpose}, "")

	filename := ExportXLSXFilename(time.Now())
	re.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	re.Response.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	re.Response.WriteHeader(http.StatusOK)
	_, err = re.Response.Write(data)
	return err
}

// handleExportPDF streams the filtered view as a landscape PDF recap.
func handleExportPDF(re *core.RequestEvent, app *pocketbase.PocketBase) error {
	visible, search, purpose, err := visibleEntriesFromRequest(re, app)
	if err != nil {
		log.Printf("[Export] PDF load failed: %v", err)
		return utils.InternalErrorResponse(re, "Failed to load guest entries")
	}

	settings, err := loadSettings(app)
	if err != nil {
		log.Printf("[Export] PDF settings read failed: %v", err)
		return utils.InternalErrorResponse(re, "Failed to load settings")
	}

	now := time.Now()
	data, err := BuildPDF(visible, settings.UnitName, settings.SchoolName, now)
	if err != nil {
		log.Printf("[Export] PDF build failed: %v", err)
		return utils.InternalErrorResponse(re, "Failed to build PDF")
	}

	utils.LogFromRequest(app, re, "export", utils.CollectionGuests, "", "success",
		map[string]any{"format": "pdf", "rows": len(visible), "search": search, "purpose": purpose}, "")

	filename := ExportPDFFilename(now)
	re.Response.Header().Set("Content-Type", "application/pdf")
	re.Response.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	re.Response.WriteHeader(http.StatusOK)
	_, err = re.Response.Write(data)
	return err
}
