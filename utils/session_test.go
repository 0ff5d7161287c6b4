package utils

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminSessionRoundtrip(t *testing.T) {
	token, err := CreateAdminSession()
	require.NoError(t, err)

	claims, err := ValidateAdminSession(token)
	require.NoError(t, err)

	now := time.Now().Unix()
	assert.InDelta(t, now, claims.IssuedAt, 5)
	assert.Equal(t, claims.IssuedAt+int64(AdminSessionTTL.Seconds()), claims.ExpiresAt)
}

func TestValidateAdminSessionRejectsTampering(t *testing.T) {
	token, err := CreateAdminSession()
	require.NoError(t, err)

	t.Run("missing signature separator", func(t *testing.T) {
		_, err := ValidateAdminSession(strings.ReplaceAll(token, ".", ""))
		assert.Error(t, err)
	})

	t.Run("modified payload", func(t *testing.T) {
		parts := strings.SplitN(token, ".", 2)
		require.Len(t, parts, 2)

		forged := AdminSessionClaims{
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(100 * AdminSessionTTL).Unix(),
		}
		payload, err := json.Marshal(forged)
		require.NoError(t, err)

		_, err = ValidateAdminSession(base64.RawURLEncoding.EncodeToString(payload) + "." + parts[1])
		assert.Error(t, err)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := ValidateAdminSession("not-a-token")
		assert.Error(t, err)
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := ValidateAdminSession("")
		assert.Error(t, err)
	})
}

func TestValidateAdminSessionRejectsExpired(t *testing.T) {
	claims := AdminSessionClaims{
		IssuedAt:  time.Now().Add(-2 * AdminSessionTTL).Unix(),
		ExpiresAt: time.Now().Add(-AdminSessionTTL).Unix(),
	}
	payload, err := json.Marshal(claims)
	require.NoError(t, err)

	encoded := base64.RawURLEncoding.EncodeToString(payload)
	_, err = ValidateAdminSession(encoded + "." + signSession(encoded))
	assert.ErrorContains(t, err, "expired")
}

func TestSessionSigningKeyBindsTokens(t *testing.T) {
	t.Setenv("SESSION_SIGNING_KEY", "key-one")
	token, err := CreateAdminSession()
	require.NoError(t, err)

	t.Setenv("SESSION_SIGNING_KEY", "key-two")
	_, err = ValidateAdminSession(token)
	assert.Error(t, err)

	t.Setenv("SESSION_SIGNING_KEY", "key-one")
	_, err = ValidateAdminSession(token)
	assert.NoError(t, err)
}
