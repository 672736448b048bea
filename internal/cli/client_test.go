package cli

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/gameportal/internal/api"
	"github.com/mcoot/gameportal/internal/api/request"
	"github.com/mcoot/gameportal/internal/api/response"
	"github.com/mcoot/gameportal/internal/factory"
	"github.com/mcoot/gameportal/internal/model"
	"github.com/mcoot/gameportal/internal/services/game"
	"github.com/mcoot/gameportal/internal/testutil"
)

type ClientSuite struct {
	suite.Suite
	app    *factory.TestApp
	server *httptest.Server
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

func (s *ClientSuite) SetupTest() {
	s.app = factory.NewTestApp()
	s.server = httptest.NewServer(api.NewRouter(api.RouterConfig{
		Logger:     testutil.NopLogger(),
		Portals:    s.app.Portals,
		HubManager: s.app.HubManager,
	}))
	client = NewClient(s.server.URL+"/", uuid.NewString())
}

func (s *ClientSuite) TearDownTest() {
	s.server.Close()
	_ = s.app.Close()
}

func (s *ClientSuite) login() {
	var session response.Session
	s.Require().NoError(client.Post("/api/v1/session/login", request.LoginRequest{Username: "player1", Password: "demo"}, &session))
	s.Equal("player1", session.Username)
}

func (s *ClientSuite) TestHealth() {
	var health response.Health
	s.Require().NoError(client.Get("/api/v1/health", &health))
	s.Equal("ok", health.Status)
}

func (s *ClientSuite) TestErrorEnvelopeIsParsed() {
	var session response.Session
	err := client.Get("/api/v1/session", &session)
	s.Require().Error(err)
	s.Equal("Login required (UNAUTHORIZED)", err.Error())
}

func (s *ClientSuite) TestMissingClientID() {
	bare := NewClient(s.server.URL, "")
	err := bare.Get("/api/v1/games", nil)
	s.Require().Error(err)
	s.Contains(err.Error(), "INVALID_CLIENT_ID")
}

func (s *ClientSuite) TestLogoutHasNoBody() {
	s.login()
	s.NoError(client.Delete("/api/v1/session"))
}

func (s *ClientSuite) TestPlayLuckyBoxInteractively() {
	s.login()

	var out bytes.Buffer
	session := &playSession{
		game: mustGame(s.T(), "lucky-box"),
		in:   strings.NewReader(strings.Repeat("\n", game.BoxesPerGame)),
		out:  &out,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.Require().NoError(session.run(ctx))

	text := out.String()
	s.Contains(text, "Lucky Box")
	s.Contains(text, "Box 1/10: ")
	s.Contains(text, "Box 10/10: ")
	s.Contains(text, "Score 100 in 0s. Better luck next time!")

	var history response.History
	s.Require().NoError(client.Get("/api/v1/history", &history))
	s.Require().Len(history.Entries, 1)
	s.Equal(100, history.Entries[0].Score)
}

func (s *ClientSuite) TestPlayQuitResetsGame() {
	s.login()

	var out bytes.Buffer
	session := &playSession{
		game: mustGame(s.T(), "tap-counter"),
		in:   strings.NewReader("\n\nq\n"),
		out:  &out,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.Require().NoError(session.run(ctx))

	var snap game.Snapshot
	s.Require().NoError(client.Get("/api/v1/play", &snap))
	s.Equal(game.StateIdle, snap.State)
}

func mustGame(t *testing.T, slug string) model.Game {
	t.Helper()
	g, err := model.GameBySlug(slug)
	require.NoError(t, err)
	return g
}

func TestReadSSE(t *testing.T) {
	stream := ": keepalive\n\n" +
		"event: connected\ndata: {\"status\":\"connected\"}\n\n" +
		"event: tick\ndata: line one\ndata: line two\n\n" +
		"data: no name\n\n"

	var events []SSEEvent
	require.NoError(t, readSSE(strings.NewReader(stream), func(ev SSEEvent) {
		events = append(events, ev)
	}))

	require.Len(t, events, 3)
	assert.Equal(t, "connected", events[0].Event)
	assert.Equal(t, `{"status":"connected"}`, events[0].Data)
	assert.Equal(t, "tick", events[1].Event)
	assert.Equal(t, "line one\nline two", events[1].Data)
	assert.Equal(t, "message", events[2].Event)
}
