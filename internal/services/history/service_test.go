package history

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/gameportal/internal/dependencies/mocks"
	"github.com/mcoot/gameportal/internal/model"
	"github.com/mcoot/gameportal/internal/storage"
	"github.com/mcoot/gameportal/internal/storage/memory"
	"github.com/mcoot/gameportal/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock, testutil.NopLogger(), DefaultConfig())
	s.ctx = context.Background()
}

func (s *ServiceSuite) record(userID model.UserID, gameID model.GameID, score int) *model.HistoryEntry {
	entry, err := s.service.RecordResult(s.ctx, userID, gameID, "Game", score, 10)
	s.Require().NoError(err)
	s.clock.Advance(time.Second)
	return entry
}

// RecordResult tests

func (s *ServiceSuite) TestRecordResult() {
	entry, err := s.service.RecordResult(s.ctx, "1", model.GameTapCounter, "Tap Counter", 42, 10)
	s.Require().NoError(err)

	s.NotEmpty(entry.ID)
	s.Equal(model.GameTapCounter, entry.GameID)
	s.Equal("Tap Counter", entry.GameName)
	s.Equal(42, entry.Score)
	s.Equal(10, entry.Duration)
	s.Equal(s.clock.Now(), entry.Timestamp)
	s.Equal(model.UserID("1"), entry.UserID)
}

func (s *ServiceSuite) TestRecordResultPersists() {
	s.record("1", model.GameTapCounter, 5)

	stored, err := storage.GetJSON[[]model.HistoryEntry](s.ctx, s.storage, "gameHistory_1")
	s.Require().NoError(err)
	s.Require().Len(stored, 1)
	s.Equal(5, stored[0].Score)
}

func (s *ServiceSuite) TestRecordResultWithoutUser() {
	_, err := s.service.RecordResult(s.ctx, "", model.GameTapCounter, "Tap Counter", 5, 10)
	s.ErrorIs(err, model.ErrNoActiveUser)
	s.Equal(0, s.storage.Len())
}

func (s *ServiceSuite) TestRecordResultRejectsNegatives() {
	_, err := s.service.RecordResult(s.ctx, "1", model.GameTapCounter, "Tap Counter", -1, 10)
	s.ErrorIs(err, model.ErrInvalidScore)

	_, err = s.service.RecordResult(s.ctx, "1", model.GameTapCounter, "Tap Counter", 1, -10)
	s.ErrorIs(err, model.ErrInvalidScore)
}

func (s *ServiceSuite) TestNewestFirst() {
	s.record("1", model.GameTapCounter, 1)
	s.record("1", model.GameTapCounter, 2)
	s.record("1", model.GameTapCounter, 3)

	entries, err := s.service.ListForUser(s.ctx, "1", "")
	s.Require().NoError(err)
	s.Require().Len(entries, 3)
	s.Equal(3, entries[0].Score)
	s.Equal(1, entries[2].Score)
}

func (s *ServiceSuite) TestRetentionCap() {
	for i := 1; i <= 101; i++ {
		s.record("1", model.GameTapCounter, i)
	}

	entries, err := s.service.ListForUser(s.ctx, "1", "")
	s.Require().NoError(err)
	s.Require().Len(entries, 100)
	s.Equal(101, entries[0].Score)
	s.Equal(2, entries[99].Score)
}

func (s *ServiceSuite) TestCustomLimit() {
	svc := New(s.storage, s.clock, testutil.NopLogger(), Config{Limit: 2})
	for i := 1; i <= 5; i++ {
		_, err := svc.RecordResult(s.ctx, "7", model.GameLuckyBox, "Lucky Box", i, 1)
		s.Require().NoError(err)
	}

	entries, err := svc.ListForUser(s.ctx, "7", "")
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal(5, entries[0].Score)
	s.Equal(4, entries[1].Score)
}

func (s *ServiceSuite) TestUniqueIDs() {
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		entry := s.record("1", model.GameTapCounter, i)
		s.False(seen[entry.ID], fmt.Sprintf("duplicate id %s", entry.ID))
		seen[entry.ID] = true
	}
}

// ListForUser tests

func (s *ServiceSuite) TestHistoryIsPerUser() {
	s.record("1", model.GameTapCounter, 10)
	s.record("2", model.GameTapCounter, 20)

	entries, err := s.service.ListForUser(s.ctx, "2", "")
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal(20, entries[0].Score)
}

func (s *ServiceSuite) TestFilterByGame() {
	s.record("1", model.GameTapCounter, 10)
	s.record("1", model.GameLuckyBox, 500)
	s.record("1", model.GameTapCounter, 12)

	entries, err := s.service.ListForUser(s.ctx, "1", model.GameTapCounter)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal(12, entries[0].Score)
	s.Equal(10, entries[1].Score)
}

func (s *ServiceSuite) TestEmptyHistory() {
	entries, err := s.service.ListForUser(s.ctx, "1", "")
	s.Require().NoError(err)
	s.Empty(entries)
}

func (s *ServiceSuite) TestMalformedHistoryIsEmpty() {
	s.Require().NoError(s.storage.Set(s.ctx, "gameHistory_1", "garbage"))

	entries, err := s.service.ListForUser(s.ctx, "1", "")
	s.Require().NoError(err)
	s.Empty(entries)

	s.record("1", model.GameTapCounter, 3)
	entries, err = s.service.ListForUser(s.ctx, "1", "")
	s.Require().NoError(err)
	s.Len(entries, 1)
}

// Stats tests

func (s *ServiceSuite) TestStatsForNeverPlayed() {
	stats, err := s.service.StatsFor(s.ctx, "1", model.GameTapCounter)
	s.Require().NoError(err)
	s.Nil(stats)
}

func (s *ServiceSuite) TestStatsFor() {
	s.record("1", model.GameTapCounter, 10)
	s.record("1", model.GameTapCounter, 20)
	last := s.record("1", model.GameTapCounter, 30)

	stats, err := s.service.StatsFor(s.ctx, "1", model.GameTapCounter)
	s.Require().NoError(err)
	s.Require().NotNil(stats)
	s.Equal(3, stats.TotalPlays)
	s.Equal(30, stats.BestScore)
	s.Equal(20, stats.AverageScore)
	s.Equal(last.Timestamp, stats.LastPlayed)
}

func (s *ServiceSuite) TestStatsForUser() {
	s.record("1", model.GameTapCounter, 10)
	s.record("1", model.GameMemoryClicker, 4)

	summary, err := s.service.StatsForUser(s.ctx, "1")
	s.Require().NoError(err)
	s.Len(summary, 2)
	s.Equal(4, summary[model.GameMemoryClicker].BestScore)
}

// Recorder tests

type fixedSession model.UserID

func (f fixedSession) CurrentUserID() model.UserID { return model.UserID(f) }

func (s *ServiceSuite) TestRecorderUsesCurrentUser() {
	game, _ := model.GameByID(model.GameTapCounter)
	rec := NewRecorder(s.service, fixedSession("3"), testutil.NopLogger())

	s.Require().NoError(rec.Record(s.ctx, game, 8, 10))

	entries, err := s.service.ListForUser(s.ctx, "3", "")
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal("Tap Counter", entries[0].GameName)
}

func (s *ServiceSuite) TestRecorderWithoutUserIsNoop() {
	game, _ := model.GameByID(model.GameTapCounter)
	rec := NewRecorder(s.service, fixedSession(""), testutil.NopLogger())

	s.NoError(rec.Record(s.ctx, game, 8, 10))
	s.Equal(0, s.storage.Len())
}
