package dto

import (
	"net/http"
	"strings"
)

// Error codes emitted by the HTTP layer itself
const (
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeConflict     = "CONFLICT"
	ErrCodeRateLimited  = "RATE_LIMITED"
	ErrCodeBodyTooLarge = "BODY_TOO_LARGE"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes. Codes
// not listed here fall back to 500 so new domain failures never leak as
// accidental 200s.
var errorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:     http.StatusInternalServerError,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeConflict:     http.StatusConflict,
	ErrCodeRateLimited:  http.StatusTooManyRequests,
	ErrCodeBodyTooLarge: http.StatusRequestEntityTooLarge,

	// identity
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	"TOKEN_INVALID":       http.StatusUnauthorized,
	"TOKEN_REVOKED":       http.StatusUnauthorized,
	"ACCOUNT_DEACTIVATED": http.StatusForbidden,
	"EMAIL_TAKEN":         http.StatusConflict,
	"USER_NOT_FOUND":      http.StatusNotFound,
	"INVALID_PASSWORD":    http.StatusBadRequest,
	"INVALID_ROLE":        http.StatusBadRequest,

	// taxonomy
	"CODE_TAKEN": http.StatusConflict,
	"SLUG_TAKEN": http.StatusConflict,

	// directory
	"ALREADY_EXISTS":   http.StatusConflict,
	"ALREADY_MEMBER":   http.StatusConflict,
	"LAST_OWNER":       http.StatusUnprocessableEntity,
	"SLUG_EXHAUSTED":   http.StatusUnprocessableEntity,
	"INVALID_STATE":    http.StatusUnprocessableEntity,
	"IN_USE":           http.StatusConflict,
	"DUPLICATE_DAY":    http.StatusBadRequest,
	"INVALID_TIME":     http.StatusBadRequest,
	"INVALID_DAY":      http.StatusBadRequest,
	"INVALID_NAME":     http.StatusBadRequest,
	"INVALID_CATEGORY": http.StatusBadRequest,
	"INVALID_LOCATION": http.StatusBadRequest,
	"INVALID_INPUT":    http.StatusBadRequest,

	// reviews
	"ALREADY_REVIEWED": http.StatusConflict,
	"ALREADY_REPORTED": http.StatusConflict,
	"OWN_COMPANY":      http.StatusUnprocessableEntity,
	"OWN_REVIEW":       http.StatusUnprocessableEntity,
	"INVALID_RATING":   http.StatusBadRequest,

	// seo
	"INVALID_PATH":   http.StatusBadRequest,
	"INVALID_TARGET": http.StatusBadRequest,

	// import
	"INVALID_FILE":          http.StatusBadRequest,
	"MISSING_COLUMNS":       http.StatusBadRequest,
	"FILE_TOO_LARGE":        http.StatusRequestEntityTooLarge,
	"INVALID_CONFLICT_MODE": http.StatusBadRequest,
	"INVALID_TRANSITION":    http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status for a domain error code. Unlisted
// INVALID_* codes are constructor validation failures and map to 400;
// anything else unknown maps to 500.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
