package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/mcoot/gameportal/internal/api/apierr"
	"github.com/mcoot/gameportal/internal/middleware"
	"github.com/mcoot/gameportal/internal/model"
	"github.com/mcoot/gameportal/internal/portal"
)

// ClientIDHeader identifies the calling client. Browsers opening an
// EventSource cannot set headers, so the client_id query parameter is
// accepted as a fallback.
const (
	ClientIDHeader = "X-Client-ID"
	ClientIDQuery  = "client_id"
)

type contextKey string

const (
	clientIDContextKey contextKey = "client_id"
	portalContextKey   contextKey = "portal"
	sessionContextKey  contextKey = "session"
)

// PortalSource resolves the portal of a client
type PortalSource interface {
	Get(ctx context.Context, clientID string) (*portal.Portal, error)
}

// Client validates the client ID and attaches that client's portal to the request
func Client(portals PortalSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(ClientIDHeader)
			if raw == "" {
				raw = r.URL.Query().Get(ClientIDQuery)
			}
			id, err := uuid.Parse(raw)
			if err != nil {
				apierr.WriteError(w, apierr.NewInvalidClientIDError())
				return
			}
			clientID := id.String()

			p, err := portals.Get(r.Context(), clientID)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			middleware.Annotate(r.Context(), "client_id", clientID)
			ctx := context.WithValue(r.Context(), clientIDContextKey, clientID)
			ctx = context.WithValue(ctx, portalContextKey, p)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSession rejects requests from clients with no logged-in user
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := MustGetPortal(r.Context())
		session, err := p.RequireUser()
		if err != nil {
			apierr.WriteError(w, err)
			return
		}
		ctx := context.WithValue(r.Context(), sessionContextKey, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetClientID returns the client ID from the request context
func GetClientID(ctx context.Context) string {
	id, _ := ctx.Value(clientIDContextKey).(string)
	return id
}

// GetPortal returns the client's portal from the request context
func GetPortal(ctx context.Context) *portal.Portal {
	p, _ := ctx.Value(portalContextKey).(*portal.Portal)
	return p
}

// MustGetPortal returns the client's portal or panics
func MustGetPortal(ctx context.Context) *portal.Portal {
	p := GetPortal(ctx)
	if p == nil {
		panic("no portal in context - client middleware not applied?")
	}
	return p
}

// MustGetSession returns the logged-in session or panics
func MustGetSession(ctx context.Context) *model.Session {
	session, _ := ctx.Value(sessionContextKey).(*model.Session)
	if session == nil {
		panic("no session in context - session middleware not applied?")
	}
	return session
}
