package main

import (
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/man2tidore/etamu-backend/utils"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	qrcode "github.com/skip2/go-qrcode"
)

// --- Kiosk Mode ---

// getPublicBaseURL returns the externally reachable base URL used in QR
// codes and download links.
func getPublicBaseURL() string {
	if url := os.Getenv("PUBLIC_BASE_URL"); url != "" {
		return strings.TrimSuffix(url, "/")
	}
	return "http://localhost:8090"
}

// handleKiosk returns the kiosk payload: branding, the non-empty slides in
// their stored order, and the guest form URL the QR code points at.
func handleKiosk(re *core.RequestEvent, app *pocketbase.PocketBase) error {
	settings, err := loadSettings(app)
	if err != nil {
		log.Printf("[Kiosk] Settings read failed: %v", err)
		return utils.InternalErrorResponse(re, "Failed to load settings")
	}

	return re.JSON(http.StatusOK, map[string]any{
		"schoolName": settings.SchoolName,
		"unitName":   settings.UnitName,
		"logo":       settings.Logo,
		"slides":     ActiveSlides(settings.Slides),
		"formURL":    getPublicBaseURL() + "/guest-form",
	})
}

// handleKioskQR serves a PNG QR code that opens the guest form on the
// visitor's own phone.
func handleKioskQR(re *core.RequestEvent, app *pocketbase.PocketBase) error {
	png, err := qrcode.Encode(getPublicBaseURL()+"/guest-form", qrcode.Medium, 512)
	if err != nil {
		log.Printf("[Kiosk] QR encode failed: %v", err)
		return utils.InternalErrorResponse(re, "Failed to render QR code")
	}

	re.Response.Header().Set("Content-Type", "image/png")
	re.Response.Header().Set("Cache-Control", "public, max-age=3600")
	re.Response.WriteHeader(http.StatusOK)
	_, err = re.Response.Write(png)
	return err
}
