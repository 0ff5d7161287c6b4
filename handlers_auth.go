package main

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/man2tidore/etamu-backend/utils"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// --- Admin Session Gate ---

// handleLogin checks the supplied password against the stored admin
// password, fetched fresh so a password changed elsewhere takes effect
// without restarting anything. On success it issues a session-scoped
// cookie; on mismatch the gate stays anonymous and the view shows the
// rejection message for 3 seconds.
func handleLogin(re *core.RequestEvent, app *pocketbase.PocketBase) error {
	var input struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(re.Request.Body).Decode(&input); err != nil {
		return utils.BadRequestResponse(re, "Invalid JSON")
	}

	settings, err := loadSettings(app)
	if err != nil {
		log.Printf("[Auth] Settings read failed during login: %v", err)
		return utils.InternalErrorResponse(re, "Failed to load settings")
	}

	if input.Password != settings.AdminPassword {
		utils.LogAuthEvent(app, re, "login_failed", "failure")
		return utils.UnauthorizedResponse(re, "Access Denied: Unrecognized Authority Key")
	}

	token, err := utils.CreateAdminSession()
	if err != nil {
		log.Printf("[Auth] Session token creation failed: %v", err)
		return utils.InternalErrorResponse(re, "Failed to create session")
	}

	// No Max-Age: the cookie survives reloads but not the browser session
	http.SetCookie(re.Response, &http.Cookie{
		Name:     utils.AdminSessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   re.Request.TLS != nil,
	})

	utils.LogAuthEvent(app, re, "login", "success")

	return re.JSON(http.StatusOK, map[string]any{"authenticated": true})
}

// handleLogout clears the session cookie, returning the gate to anonymous.
func handleLogout(re *core.RequestEvent, app *pocketbase.PocketBase) error {
	http.SetCookie(re.Response, &http.Cookie{
		Name:     utils.AdminSessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	utils.LogAuthEvent(app, re, "logout", "success")

	return re.JSON(http.StatusOK, map[string]any{"authenticated": false})
}

// handleSessionCheck lets the SPA re-derive the gate state on load, so a
// page reload inside the same browser session does not force re-login.
func handleSessionCheck(re *core.RequestEvent, app *pocketbase.PocketBase) error {
	return re.JSON(http.StatusOK, map[string]any{
		"authenticated": utils.HasAdminSession(re),
	})
}
