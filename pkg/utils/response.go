package utils

import (
	"encoding/json"
	"net/http"

	"calboard/pkg/logger"
)

const (
	// Request Error Codes
	ErrRequestInvalid           = "request/invalid_parameters"
	ErrRequestBadRequest        = "request/bad_request"
	ErrRequestNotFound          = "request/not_found"
	ErrRequestRateLimitExceeded = "request/rate_limit_exceeded"
	ErrRequestBodyTooLarge      = "request/body_too_large"

	// Validation Error Codes
	ErrValidationMissingField = "validation/missing_field"

	// Storage Error Codes
	ErrStorageRead  = "storage/read_failed"
	ErrStorageWrite = "storage/write_failed"

	// Server Error Codes
	ErrServerInternal = "server/internal_error"
)

// APIError is the JSON error envelope. Error carries the human readable
// message clients display; Code is a stable machine key.
type APIError struct {
	Error  string `json:"error"`
	Code   string `json:"code"`
	Status int    `json:"status"`
}

// WriteError sends a JSON formatted error response.
func WriteError(w http.ResponseWriter, status int, code string, message string) {
	if status >= http.StatusInternalServerError {
		logger.LogError("%s: %s", code, message)
	} else {
		logger.LogDebug("%s: %s", code, message)
	}
	WriteJSON(w, status, APIError{
		Error:  message,
		Code:   code,
		Status: status,
	})
}

func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.LogWarn("response encode failed: %v", err)
	}
}
