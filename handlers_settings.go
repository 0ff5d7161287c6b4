package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/man2tidore/etamu-backend/utils"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// --- Settings Handlers ---

// handleSettingsPublic returns the merged settings for public pages
// (landing, form, kiosk, login), without the admin password. Reading seeds
// the defaults if the document does not exist yet.
func handleSettingsPublic(re *core.RequestEvent, app *pocketbase.PocketBase) error {
	settings, err := loadSettings(app)
	if err != nil {
		log.Printf("[Settings] Public read failed: %v", err)
		return utils.InternalErrorResponse(re, "Failed to load settings")
	}

	return re.JSON(http.StatusOK, map[string]any{
		"schoolName": settings.SchoolName,
		"unitName":   settings.UnitName,
		"visi":       settings.Visi,
		"misi":       settings.Misi,
		"logo":       settings.Logo,
		"slides":     settings.Slides,
	})
}

// handleSettingsGet returns the full merged settings for the admin screen.
func handleSettingsGet(re *core.RequestEvent, app *pocketbase.PocketBase) error {
	settings, err := loadSettings(app)
	if err != nil {
		log.Printf("[Settings] Read failed: %v", err)
		return utils.InternalErrorResponse(re, "Failed to load settings")
	}
	return utils.DataResponse(re, settings)
}

// handleSettingsUpdate merges the supplied fields into the settings
// document. Omitted fields keep their prior values; this is never a
// full-document overwrite.
func handleSettingsUpdate(re *core.RequestEvent, app *pocketbase.PocketBase) error {
	record, err := ensureSettings(app)
	if err != nil {
		log.Printf("[Settings] Load for update failed: %v", err)
		return utils.InternalErrorResponse(re, "Failed to load settings")
	}

	var input map[string]any
	if err := json.NewDecoder(re.Request.Body).Decode(&input); err != nil {
		return utils.BadRequestResponse(re, "Invalid JSON")
	}

	changed := []string{}

	if v, ok := input["schoolName"].(string); ok {
		record.Set("schoolName", v)
		changed = append(changed, "schoolName")
	}
	if v, ok := input["unitName"].(string); ok {
		record.Set("unitName", v)
		changed = append(changed, "unitName")
	}
	if v, ok := input["visi"].(string); ok {
		record.Set("visi", v)
		changed = append(changed, "visi")
	}
	if v, ok := input["misi"].(string); ok {
		record.Set("misi", v)
		changed = append(changed, "misi")
	}
	if v, ok := input["logo"].(string); ok {
		if len(v) > utils.MaxLogoPayloadSize {
			return utils.BadRequestResponse(re, "Logo terlalu besar (maksimal 2MB)")
		}
		if v != "" && !strings.HasPrefix(v, "data:image/") {
			return utils.BadRequestResponse(re, "Hanya file gambar yang diperbolehkan")
		}
		record.Set("logo", v)
		changed = append(changed, "logo")
	}
	if raw, ok := input["slides"]; ok {
		slides, err := decodeSlides(raw)
		if err != nil {
			return utils.BadRequestResponse(re, err.Error())
		}
		record.Set("slides", slides)
		changed = append(changed, "slides")
	}

	// The password changes only through the dedicated flow
	if _, ok := input["adminPassword"]; ok {
		return utils.BadRequestResponse(re, "Gunakan form ubah password untuk mengganti password")
	}

	if len(changed) == 0 {
		return utils.BadRequestResponse(re, "No settings fields supplied")
	}

	if err := app.Save(record); err != nil {
		log.Printf("[Settings] Update failed: %v", err)
		return utils.StoreUnavailableResponse(re, "Gagal menyimpan pengaturan")
	}

	utils.LogFromRequest(app, re, "update", utils.CollectionSettings, record.Id, "success",
		map[string]any{"fields": changed}, "")

	return utils.DataResponse(re, settingsFromRecord(record))
}

// decodeSlides validates a slides payload: up to SlideCount data-URL
// strings, padded with empty slots so the stored array keeps its shape.
func decodeSlides(raw any) ([]string, error) {
	items, ok := raw.([]any)
	if !ok {
		return nil, errors.New("Slides harus berupa daftar gambar")
	}
	if len(items) > SlideCount {
		return nil, errors.New("Maksimal 5 slide")
	}

	slides := make([]string, SlideCount)
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, errors.New("Slides harus berupa daftar gambar")
		}
		if len(s) > utils.MaxSlidePayloadSize {
			return nil, errors.New("Ukuran slide terlalu besar (maksimal 2MB)")
		}
		if s != "" && !strings.HasPrefix(s, "data:image/") {
			return nil, errors.New("Hanya file gambar yang diperbolehkan")
		}
		slides[i] = s
	}
	return slides, nil
}

// handleChangePassword validates and commits an admin password change.
// The stored password is fetched fresh so a change made in another session
// is honored. Failures leave the stored password untouched.
func handleChangePassword(re *core.RequestEvent, app *pocketbase.PocketBase) error {
	var input struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if err := json.NewDecoder(re.Request.Body).Decode(&input); err != nil {
		return utils.BadRequestResponse(re, "Invalid JSON")
	}

	record, err := ensureSettings(app)
	if err != nil {
		log.Printf("[Settings] Load for password change failed: %v", err)
		return utils.InternalErrorResponse(re, "Failed to load settings")
	}
	stored := settingsFromRecord(record).AdminPassword

	if err := ValidatePasswordChange(input.CurrentPassword, stored, input.NewPassword, input.ConfirmPassword); err != nil {
		return utils.BadRequestResponse(re, passwordChangeMessage(err))
	}

	record.Set("adminPassword", input.NewPassword)
	if err := app.Save(record); err != nil {
		log.Printf("[Settings] Password change failed: %v", err)
		return utils.StoreUnavailableResponse(re, "Gagal menyimpan password baru")
	}

	utils.LogFromRequest(app, re, "update", utils.CollectionSettings, record.Id, "success",
		map[string]any{"fields": []string{"adminPassword"}}, "")

	return utils.SuccessResponse(re, "Password berhasil diubah")
}

// passwordChangeMessage maps validation errors to the form messages.
func passwordChangeMessage(err error) string {
	switch {
	case errors.Is(err, ErrWrongCurrentPassword):
		return "Password saat ini salah!"
	case errors.Is(err, ErrPasswordTooShort):
		return "Password baru minimal 4 karakter!"
	case errors.Is(err, ErrConfirmationMismatch):
		return "Password baru dan konfirmasi tidak cocok!"
	default:
		return "Gagal mengubah password"
	}
}
