package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// AdminSessionClaims holds the data in an admin session token.
type AdminSessionClaims struct {
	IssuedAt  int64 `json:"iat"`
	ExpiresAt int64 `json:"exp"`
}

// AdminSessionTTL bounds how long a signed token stays valid even if the
// browser keeps its session cookie alive.
const AdminSessionTTL = 12 * time.Hour

// CreateAdminSession creates an HMAC-signed token for dashboard access.
func CreateAdminSession() (string, error) {
	now := time.Now().Unix()
	claims := AdminSessionClaims{
		IssuedAt:  now,
		ExpiresAt: now + int64(AdminSessionTTL.Seconds()),
	}

	payload, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}

	encoded := base64.RawURLEncoding.EncodeToString(payload)
	sig := signSession(encoded)
	return encoded + "." + sig, nil
}

// ValidateAdminSession validates and decodes an HMAC-signed session token.
func ValidateAdminSession(sessionToken string) (*AdminSessionClaims, error) {
	parts := strings.SplitN(sessionToken, ".", 2)
	if len(parts) != 2 {
		return nil, errors.New("invalid token format")
	}

	encoded, sig := parts[0], parts[1]

	// Verify signature
	expected := signSession(encoded)
	if !hmac.Equal([]byte(sig), []byte(expected)) {
		return nil, errors.New("invalid signature")
	}

	// Decode payload
	payload, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, errors.New("invalid encoding")
	}

	var claims AdminSessionClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, errors.New("invalid payload")
	}

	// Check expiry
	if time.Now().Unix() > claims.ExpiresAt {
		return nil, errors.New("session expired")
	}

	return &claims, nil
}

// signSession creates an HMAC-SHA256 signature for a session payload.
// Uses SESSION_SIGNING_KEY with a domain separator to avoid key reuse.
func signSession(payload string) string {
	key := os.Getenv("SESSION_SIGNING_KEY")
	if key == "" {
		key = "dev-session-key"
	}

	mac := hmac.New(sha256.New, []byte("etamu-admin-session:"+key))
	mac.Write([]byte(payload))
	return fmt.Sprintf("%x", mac.Sum(nil))
}
