package handler

import (
	"net/http"

	"github.com/mcoot/gameportal/internal/api/middleware"
	"github.com/mcoot/gameportal/internal/api/request"
	"github.com/mcoot/gameportal/internal/api/response"
	"github.com/mcoot/gameportal/internal/model"
)

// SessionHandler handles account and session endpoints
type SessionHandler struct{}

// NewSessionHandler creates a new session handler
func NewSessionHandler() *SessionHandler {
	return &SessionHandler{}
}

// Register handles POST /api/v1/session/register
func (h *SessionHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	session, err := middleware.MustGetPortal(r.Context()).Register(r.Context(), req.Username, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.SessionFromModel(session))
}

// Login handles POST /api/v1/session/login
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Username == "" {
		WriteError(w, NewInvalidRequestError("username is required"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}

	session, err := middleware.MustGetPortal(r.Context()).Login(r.Context(), req.Username, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.OK(w, response.SessionFromModel(session))
}

// Get handles GET /api/v1/session
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetPortal(r.Context()).Auth.Current()
	if session == nil {
		WriteError(w, model.ErrNoActiveUser)
		return
	}
	response.OK(w, response.SessionFromModel(session))
}

// Logout handles DELETE /api/v1/session
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := middleware.MustGetPortal(r.Context()).Logout(r.Context()); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}
