package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details for security reasons.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgInvalidRequest       = "Invalid request body"
	ErrMsgMissingBody          = "Request body is required"
	ErrMsgMissingPatch         = "Patch document is required"
	ErrMsgBodyTooLarge         = "Request body too large"
	ErrMsgMissingFields        = "Missing required fields: %s"
	ErrMsgInvalidUserID        = "Invalid user ID"
	ErrMsgUserNotFound         = "User not found"
	ErrMsgValidationFailed     = "Validation failed"
	ErrMsgNotAcceptable        = "Not Acceptable"
	ErrMsgGenericServerError   = "Something went wrong"
	ErrMsgServiceUnavailable   = "store unavailable"
	ErrMsgUnsupportedPatchBody = "Patch body must be a JSON Patch array or a JSON object"
)

// Log messages
const (
	LogMsgDecodeFailed    = "Failed to decode request"
	LogMsgServiceError    = "User operation failed"
	LogMsgValidationError = "User validation failed"
	LogMsgUserNotFound    = "User not found"
	LogMsgNotAcceptable   = "No acceptable response format"
)
