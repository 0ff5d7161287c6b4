package main

import (
	"errors"
	"log"

	"github.com/man2tidore/etamu-backend/utils"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// SlideCount is the fixed number of kiosk slide slots.
const SlideCount = 5

// AppSettings is the single shared configuration document. The logo and
// slides hold data-URL image payloads; empty slide slots are kept in the
// stored document and filtered out only at display time.
type AppSettings struct {
	SchoolName    string   `json:"schoolName"`
	UnitName      string   `json:"unitName"`
	AdminPassword string   `json:"adminPassword"`
	Visi          string   `json:"visi"`
	Misi          string   `json:"misi"`
	Logo          string   `json:"logo"`
	Slides        []string `json:"slides"`
}

// DefaultSettings returns the values seeded on first read.
func DefaultSettings() AppSettings {
	return AppSettings{
		SchoolName:    "MAN 2 Kota Tidore Kepulauan",
		UnitName:      "PMR (Palang Merah Remaja)",
		AdminPassword: "admin",
		Visi:          "",
		Misi:          "",
		Logo:          "",
		Slides:        make([]string, SlideCount),
	}
}

// settingsFromRecord merges the stored document over the defaults, so a
// document written by an older version still yields every field.
func settingsFromRecord(r *core.Record) AppSettings {
	s := DefaultSettings()
	s.SchoolName = stringOr(r.GetString("schoolName"), s.SchoolName)
	s.UnitName = stringOr(r.GetString("unitName"), s.UnitName)
	s.AdminPassword = stringOr(r.GetString("adminPassword"), s.AdminPassword)
	s.Visi = r.GetString("visi")
	s.Misi = r.GetString("misi")
	s.Logo = r.GetString("logo")

	var slides []string
	if err := r.UnmarshalJSONField("slides", &slides); err == nil {
		for i := 0; i < SlideCount && i < len(slides); i++ {
			s.Slides[i] = slides[i]
		}
	}
	return s
}

func stringOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// ensureSettings returns the settings record, creating it with default
// values if it does not exist yet. Every read path goes through here, so
// the singleton is seeded as a side effect of the first read.
func ensureSettings(app *pocketbase.PocketBase) (*core.Record, error) {
	records, err := app.FindRecordsByFilter(utils.CollectionSettings, "", "", 1, 0)
	if err == nil && len(records) > 0 {
		return records[0], nil
	}

	collection, err := app.FindCollectionByNameOrId(utils.CollectionSettings)
	if err != nil {
		return nil, err
	}

	defaults := DefaultSettings()
	record := core.NewRecord(collection)
	record.Set("schoolName", defaults.SchoolName)
	record.Set("unitName", defaults.UnitName)
	record.Set("adminPassword", defaults.AdminPassword)
	record.Set("visi", defaults.Visi)
	record.Set("misi", defaults.Misi)
	record.Set("logo", defaults.Logo)
	record.Set("slides", defaults.Slides)

	if err := app.Save(record); err != nil {
		return nil, err
	}
	log.Printf("[Settings] Seeded default settings document %s", record.Id)
	return record, nil
}

// loadSettings reads the merged settings, seeding defaults on first read.
func loadSettings(app *pocketbase.PocketBase) (AppSettings, error) {
	record, err := ensureSettings(app)
	if err != nil {
		return DefaultSettings(), err
	}
	return settingsFromRecord(record), nil
}

// Password change failure modes. These surface as inline, non-fatal form
// errors; none of them alters the stored password.
var (
	ErrWrongCurrentPassword = errors.New("password saat ini salah")
	ErrPasswordTooShort     = errors.New("password baru minimal 4 karakter")
	ErrConfirmationMismatch = errors.New("password baru dan konfirmasi tidak cocok")
)

// MinPasswordLength is the minimum admin password length.
const MinPasswordLength = 4

// ValidatePasswordChange checks a changePassword request against the
// stored password. The stored value must be fetched fresh by the caller so
// a password changed elsewhere is honored without re-login.
func ValidatePasswordChange(current, stored, next, confirm string) error {
	if current != stored {
		return ErrWrongCurrentPassword
	}
	if len(next) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if next != confirm {
		return ErrConfirmationMismatch
	}
	return nil
}

// ActiveSlides drops empty slide slots, preserving order. The kiosk
// slideshow renders only what this returns.
func ActiveSlides(slides []string) []string {
	active := make([]string, 0, len(slides))
	for _, s := range slides {
		if s != "" {
			active = append(active, s)
		}
	}
	return active
}
