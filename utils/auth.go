package utils

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase/core"
)

// RequireAdminSession is middleware that guards dashboard routes. It
// accepts a valid admin session cookie, issued by the login handler after
// the stored password matched.
func RequireAdminSession(e *core.RequestEvent) error {
	cookie, err := e.Request.Cookie(AdminSessionCookie)
	if err != nil || cookie.Value == "" {
		log.Printf("[Auth] Unauthorized request to %s from %s", e.Request.URL.Path, e.RealIP())
		return e.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Unauthorized",
		})
	}

	if _, err := ValidateAdminSession(cookie.Value); err != nil {
		log.Printf("[Auth] Rejected session for %s from %s: %v", e.Request.URL.Path, e.RealIP(), err)
		return e.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Unauthorized",
		})
	}

	return e.Next()
}

// HasAdminSession reports whether the request carries a valid admin
// session, without rejecting it. Used by the session check endpoint that
// re-derives gate state on app start.
func HasAdminSession(e *core.RequestEvent) bool {
	cookie, err := e.Request.Cookie(AdminSessionCookie)
	if err != nil || cookie.Value == "" {
		return false
	}
	_, err = ValidateAdminSession(cookie.Value)
	return err == nil
}
