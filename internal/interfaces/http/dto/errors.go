package dto

import "net/http"

// General error codes
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "INTERNAL_ERROR"
	// ErrCodeValidation is used for request validation failures
	ErrCodeValidation = "VALIDATION_ERROR"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "NOT_FOUND"
)

// Workflow error codes, matching the domain error taxonomy
const (
	// ErrCodeUnknownStatus is used when a status is not in the catalog
	ErrCodeUnknownStatus = "UNKNOWN_STATUS"
	// ErrCodeDocumentRequired is used when a transition is blocked by the
	// document gate
	ErrCodeDocumentRequired = "DOCUMENT_REQUIRED"
	// ErrCodeConcurrentModification is used when optimistic locking fails
	ErrCodeConcurrentModification = "CONCURRENT_MODIFICATION"
	// ErrCodeUploadIncomplete is used when a document registration is
	// confirmed before its bytes exist in storage
	ErrCodeUploadIncomplete = "UPLOAD_INCOMPLETE"
	// ErrCodePersistenceFailure is used when the underlying store rejects
	// an operation
	ErrCodePersistenceFailure = "PERSISTENCE_FAILURE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes.
// Domain error codes not listed here (the INVALID_* family) fall back to
// 400 via the INVALID_ prefix rule in GetHTTPStatus.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeValidation: http.StatusBadRequest,
	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeNotFound:   http.StatusNotFound,

	ErrCodeUnknownStatus:          http.StatusUnprocessableEntity,
	ErrCodeDocumentRequired:       http.StatusUnprocessableEntity,
	ErrCodeConcurrentModification: http.StatusConflict,
	ErrCodeUploadIncomplete:       http.StatusUnprocessableEntity,
	ErrCodePersistenceFailure:     http.StatusInternalServerError,

	"ALREADY_EXISTS": http.StatusConflict,
	"INVALID_INPUT":  http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unmapped INVALID_* codes map to 400; anything else unknown maps to 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	if len(code) > 8 && code[:8] == "INVALID_" {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
