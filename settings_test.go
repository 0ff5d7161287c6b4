package main

import (
	"testing"

	"github.com/pocketbase/pocketbase/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.Equal(t, "MAN 2 Kota Tidore Kepulauan", s.SchoolName)
	assert.Equal(t, "PMR (Palang Merah Remaja)", s.UnitName)
	assert.Equal(t, "admin", s.AdminPassword)
	assert.Empty(t, s.Visi)
	assert.Empty(t, s.Misi)
	assert.Empty(t, s.Logo)

	require.Len(t, s.Slides, SlideCount)
	for _, slide := range s.Slides {
		assert.Empty(t, slide)
	}
}

func newSettingsRecord() *core.Record {
	collection := core.NewBaseCollection("settings")
	collection.Fields.Add(
		&core.TextField{Name: "schoolName"},
		&core.TextField{Name: "unitName"},
		&core.TextField{Name: "adminPassword"},
		&core.TextField{Name: "visi"},
		&core.TextField{Name: "misi"},
		&core.TextField{Name: "logo"},
		&core.JSONField{Name: "slides"},
	)
	return core.NewRecord(collection)
}

func TestSettingsFromRecord(t *testing.T) {
	t.Run("empty record falls back to defaults", func(t *testing.T) {
		s := settingsFromRecord(newSettingsRecord())
		assert.Equal(t, DefaultSettings(), s)
	})

	t.Run("stored fields win over defaults", func(t *testing.T) {
		r := newSettingsRecord()
		r.Set("schoolName", "SMAN 3 Ternate")
		r.Set("adminPassword", "rahasia")
		r.Set("visi", "Menjadi teladan")

		s := settingsFromRecord(r)
		assert.Equal(t, "SMAN 3 Ternate", s.SchoolName)
		assert.Equal(t, "rahasia", s.AdminPassword)
		assert.Equal(t, "Menjadi teladan", s.Visi)
		// Untouched field still gets the default
		assert.Equal(t, "PMR (Palang Merah Remaja)", s.UnitName)
	})

	t.Run("slides are padded to the fixed slot count", func(t *testing.T) {
		r := newSettingsRecord()
		r.Set("slides", `["data:image/png;base64,AAA",""]`)

		s := settingsFromRecord(r)
		require.Len(t, s.Slides, SlideCount)
		assert.Equal(t, "data:image/png;base64,AAA", s.Slides[0])
		assert.Empty(t, s.Slides[1])
		assert.Empty(t, s.Slides[4])
	})

	t.Run("extra slides beyond the slot count are dropped", func(t *testing.T) {
		r := newSettingsRecord()
		r.Set("slides", `["a","b","c","d","e","f","g"]`)

		s := settingsFromRecord(r)
		require.Len(t, s.Slides, SlideCount)
		assert.Equal(t, []string{"a", "b", "c", "d", "e"}, s.Slides)
	})
}

func TestValidatePasswordChange(t *testing.T) {
	const stored = "admin"

	t.Run("accepts a valid change", func(t *testing.T) {
		assert.NoError(t, ValidatePasswordChange("admin", stored, "baru1234", "baru1234"))
	})

	t.Run("rejects a wrong current password", func(t *testing.T) {
		err := ValidatePasswordChange("salah", stored, "baru1234", "baru1234")
		assert.ErrorIs(t, err, ErrWrongCurrentPassword)
	})

	t.Run("rejects a too short new password", func(t *testing.T) {
		err := ValidatePasswordChange("admin", stored, "abc", "abc")
		assert.ErrorIs(t, err, ErrPasswordTooShort)
	})

	t.Run("rejects a mismatched confirmation", func(t *testing.T) {
		err := ValidatePasswordChange("admin", stored, "baru1234", "baru5678")
		assert.ErrorIs(t, err, ErrConfirmationMismatch)
	})

	t.Run("checks the current password before the new one", func(t *testing.T) {
		// Both checks would fail; the current-password error wins
		err := ValidatePasswordChange("salah", stored, "x", "y")
		assert.ErrorIs(t, err, ErrWrongCurrentPassword)
	})

	t.Run("minimum length is inclusive", func(t *testing.T) {
		assert.NoError(t, ValidatePasswordChange("admin", stored, "1234", "1234"))
	})
}

func TestActiveSlides(t *testing.T) {
	assert.Empty(t, ActiveSlides(make([]string, SlideCount)))
	assert.Empty(t, ActiveSlides(nil))

	got := ActiveSlides([]string{"", "a", "", "b", ""})
	assert.Equal(t, []string{"a", "b"}, got)
}
