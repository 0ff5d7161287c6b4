package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStoredDate(t *testing.T) {
	want := time.Date(2026, 8, 10, 9, 30, 0, 0, time.UTC)

	for _, raw := range []string{
		"2026-08-10 09:30:00.000Z",
		"2026-08-10T09:30:00Z",
		"2026-08-10T09:30:00.000Z",
		"2026-08-10 09:30:00",
	} {
		got, err := ParseStoredDate(raw)
		require.NoError(t, err, raw)
		assert.True(t, got.Equal(want), raw)
	}

	_, err := ParseStoredDate("10/08/2026")
	assert.Error(t, err)
	_, err = ParseStoredDate("")
	assert.Error(t, err)
}

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "Budi Santoso", NormalizeText("  Budi Santoso  "))
	assert.Empty(t, NormalizeText("   "))
	assert.Empty(t, NormalizeText(""))
}
