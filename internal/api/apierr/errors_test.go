package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/gameportal/internal/model"
	"github.com/mcoot/gameportal/internal/services/auth"
)

func TestWriteErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"taken", auth.ErrUsernameTaken, http.StatusConflict, CodeUsernameExists, "Username already exists"},
		{"credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized, CodeInvalidCredentials, "Invalid username or password"},
		{"username rule", auth.ValidateUsername("ab"), http.StatusBadRequest, CodeInvalidUsername, "Username must be at least 3 characters"},
		{"password rule", auth.ValidatePassword("123"), http.StatusBadRequest, CodeInvalidPassword, "Password must be at least 6 characters"},
		{"no user", model.ErrNoActiveUser, http.StatusUnauthorized, CodeUnauthorized, "Login required"},
		{"wrapped game not found", fmt.Errorf("lookup: %w", model.ErrGameNotFound), http.StatusNotFound, CodeGameNotFound, "Game not found"},
		{"no game", model.ErrNoActiveGame, http.StatusNotFound, CodeNoActiveGame, "No game in progress"},
		{"unsupported", model.ErrUnsupportedAction, http.StatusConflict, CodeUnsupportedAction, "Action not supported by the active game"},
		{"invalid request", NewInvalidRequestError("bad body"), http.StatusBadRequest, CodeInvalidRequest, "bad body"},
		{"client id", NewInvalidClientIDError(), http.StatusBadRequest, CodeInvalidClientID, "X-Client-ID header must be a UUID"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, CodeInternalError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			WriteError(rr, tt.err)

			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, tt.status, Status(tt.err))
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.Equal(t, tt.message, resp.Error.Message)
		})
	}
}
