package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mcoot/gameportal/internal/api/apierr"
)

// maxBodyBytes bounds JSON request bodies
const maxBodyBytes = 1 << 16

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// decodeJSON reads a JSON request body into v, writing a 400 on failure
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return false
	}
	return true
}
