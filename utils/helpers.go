package utils

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase/core"
)

// --- HTTP Response Helpers ---

// ErrorResponse returns a JSON error response with the given status code and message
func ErrorResponse(re *core.RequestEvent, status int, message string) error {
	return re.JSON(status, map[string]string{"error": message})
}

// NotFoundResponse returns a 404 JSON error response
func NotFoundResponse(re *core.RequestEvent, message string) error {
	return ErrorResponse(re, http.StatusNotFound, message)
}

// BadRequestResponse returns a 400 JSON error response
func BadRequestResponse(re *core.RequestEvent, message string) error {
	return ErrorResponse(re, http.StatusBadRequest, message)
}

// InternalErrorResponse returns a 500 JSON error response
func InternalErrorResponse(re *core.RequestEvent, message string) error {
	return ErrorResponse(re, http.StatusInternalServerError, message)
}

// UnauthorizedResponse returns a 401 JSON error response
func UnauthorizedResponse(re *core.RequestEvent, message string) error {
	return ErrorResponse(re, http.StatusUnauthorized, message)
}

// StoreUnavailableResponse returns a 503 JSON error response for failed
// store writes. The caller's form stays interactive; nothing is retried.
func StoreUnavailableResponse(re *core.RequestEvent, message string) error {
	return ErrorResponse(re, http.StatusServiceUnavailable, message)
}

// SuccessResponse returns a 200 JSON success response with a message
func SuccessResponse(re *core.RequestEvent, message string) error {
	return re.JSON(http.StatusOK, map[string]string{"message": message})
}

// DataResponse returns a 200 JSON response with arbitrary data
func DataResponse(re *core.RequestEvent, data any) error {
	return re.JSON(http.StatusOK, data)
}

// --- Date Helpers ---

// ParseStoredDate parses a timestamp string in the formats PocketBase
// writes for autodate fields.
func ParseStoredDate(dateStr string) (time.Time, error) {
	formats := []string{
		"2006-01-02 15:04:05.000Z",
		time.RFC3339,
		time.RFC3339Nano,
		"2006-01-02T15:04:05.000Z",
		"2006-01-02 15:04:05",
	}
	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("could not parse date: %s", dateStr)
}

// NormalizeText trims whitespace and collapses a value for required-field
// checks; a value of only spaces counts as empty.
func NormalizeText(v string) string {
	return strings.TrimSpace(v)
}
