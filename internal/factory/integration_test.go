package factory

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/gameportal/internal/model"
	"github.com/mcoot/gameportal/internal/portal"
	"github.com/mcoot/gameportal/internal/services/game"
	"github.com/mcoot/gameportal/internal/storage"
	redisstorage "github.com/mcoot/gameportal/internal/storage/redis"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

func (s *IntegrationSuite) TearDownTest() {
	s.Require().NoError(s.app.Close())
}

func (s *IntegrationSuite) portal(clientID string) *portal.Portal {
	p, err := s.app.Portals.Get(s.ctx, clientID)
	s.Require().NoError(err)
	return p
}

// Test: log in, play a tap game to timeout and find it in history and stats
func (s *IntegrationSuite) TestTapGameIsRecorded() {
	p := s.portal("client-a")
	_, err := p.Login(s.ctx, "player1", "demo")
	s.Require().NoError(err)

	_, err = p.Arcade.Launch(model.GameTapCounter)
	s.Require().NoError(err)
	for i := 0; i < 5; i++ {
		_, err = p.Arcade.Tap()
		s.Require().NoError(err)
	}
	s.app.MockClock.Advance(game.TapDuration)

	entries, err := p.History.ListForUser(s.ctx, "3", "")
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal(5, entries[0].Score)
	s.Equal(10, entries[0].Duration)
	s.Equal(s.app.MockClock.Now().UTC(), entries[0].Timestamp.UTC())

	stats, err := p.History.StatsFor(s.ctx, "3", model.GameTapCounter)
	s.Require().NoError(err)
	s.Require().NotNil(stats)
	s.Equal(model.GameStats{
		GameID:       model.GameTapCounter,
		TotalPlays:   1,
		BestScore:    5,
		AverageScore: 5,
		LastPlayed:   entries[0].Timestamp,
	}, *stats)
}

// Test: a client's data lives under its own namespace of the shared store
func (s *IntegrationSuite) TestClientDataIsNamespaced() {
	p := s.portal("client-a")
	_, err := p.Login(s.ctx, "admin", "admin")
	s.Require().NoError(err)

	raw, err := s.app.MemoryStore.Get(s.ctx, portal.Namespace("client-a")+storage.SessionKey)
	s.Require().NoError(err)
	s.Contains(raw, `"username":"admin"`)

	_, err = s.app.MemoryStore.Get(s.ctx, storage.SessionKey)
	s.ErrorIs(err, storage.ErrNotFound)

	s.Nil(s.portal("client-b").Auth.Current())
}

func TestNewWithStorageBackends(t *testing.T) {
	mr := miniredis.RunT(t)

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "default memory", cfg: Config{}},
		{name: "memory", cfg: Config{StorageType: StorageTypeMemory}},
		{name: "sqlite", cfg: Config{StorageType: StorageTypeSQLite, SQLitePath: filepath.Join(t.TempDir(), "portal.db")}},
		{name: "sqlite without path", cfg: Config{StorageType: StorageTypeSQLite}, wantErr: true},
		{name: "redis", cfg: Config{StorageType: StorageTypeRedis, RedisConfig: &redisstorage.Config{URL: "redis://" + mr.Addr(), KeyPrefix: "test"}}},
		{name: "redis without config", cfg: Config{StorageType: StorageTypeRedis}, wantErr: true},
		{name: "unknown", cfg: Config{StorageType: "etcd"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, err := New(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			defer func() { _ = app.Close() }()

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			p, err := app.Portals.Get(ctx, "client-a")
			if err != nil {
				t.Fatalf("Portals.Get: %v", err)
			}
			if _, err := p.Login(ctx, "guest", "guest"); err != nil {
				t.Fatalf("Login: %v", err)
			}
		})
	}
}
