package logger

// Standard field names for consistent structured logging across fmtls.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Identity and context
	FieldSessionID = "session_id"
	FieldComponent = "component"

	// Protocol
	FieldMethod        = "method"
	FieldURI           = "uri"
	FieldVersion       = "version"
	FieldClientVersion = "client_version"
	FieldServerVersion = "server_version"

	// Errors
	FieldError     = "error"
	FieldErrorCode = "error_code"

	// Counts and sizes
	FieldCount  = "count"
	FieldLength = "length"

	// Status
	FieldExitSignal = "exit_signal"
)
