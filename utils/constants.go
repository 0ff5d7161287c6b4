package utils

// Collection names
const (
	CollectionGuests    = "guests"
	CollectionSettings  = "settings"
	CollectionAuditLogs = "audit_logs"
)

// Field names
const (
	FieldPurpose = "purpose"
	FieldCreated = "created"
)

// AdminSessionCookie is the session-scoped cookie carrying the signed
// admin session token. No Max-Age is set, so the browser drops it when the
// session ends but keeps it across reloads.
const AdminSessionCookie = "etamu_admin_session"

// Payload size limits (bytes of stored data-URL image payload, ~2MB of
// raw image after base64 encoding)
const (
	MaxLogoPayloadSize  = 4000000
	MaxSlidePayloadSize = 4000000
)
