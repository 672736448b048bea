package apierr

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/mcoot/gameportal/internal/model"
	"github.com/mcoot/gameportal/internal/services/auth"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeInvalidClientID    = "INVALID_CLIENT_ID"
	CodeInvalidUsername    = "INVALID_USERNAME"
	CodeInvalidPassword    = "INVALID_PASSWORD"
	CodeInvalidScore       = "INVALID_SCORE"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUsernameExists     = "USERNAME_EXISTS"
	CodeGameNotFound       = "GAME_NOT_FOUND"
	CodeNoActiveGame       = "NO_ACTIVE_GAME"
	CodeUnsupportedAction  = "UNSUPPORTED_ACTION"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// Status returns the HTTP status err maps to
func Status(err error) int {
	return toHTTPError(err).status
}

func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	// Validation errors carry the failed rule after the sentinel's text
	case errors.Is(err, auth.ErrInvalidUsername):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidUsername, detail(err, auth.ErrInvalidUsername)}}
	case errors.Is(err, auth.ErrInvalidPassword):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPassword, detail(err, auth.ErrInvalidPassword)}}
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, auth.ErrUsernameTaken):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already exists"}}

	case errors.Is(err, model.ErrNoActiveUser):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Login required"}}
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found"}}
	case errors.Is(err, model.ErrNoActiveGame):
		return &httpError{http.StatusNotFound, APIError{CodeNoActiveGame, "No game in progress"}}
	case errors.Is(err, model.ErrUnsupportedAction):
		return &httpError{http.StatusConflict, APIError{CodeUnsupportedAction, "Action not supported by the active game"}}
	case errors.Is(err, model.ErrInvalidScore):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidScore, "Score and duration must be non-negative"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// detail strips the sentinel prefix from a wrapped validation error
func detail(err, sentinel error) string {
	msg := strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
	if msg == "" {
		return sentinel.Error()
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInvalidClientIDError reports a missing or malformed X-Client-ID header
func NewInvalidClientIDError() error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidClientID, "X-Client-ID header must be a UUID"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
