package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/gameportal/internal/dependencies/mocks"
)

type MemorySuite struct {
	suite.Suite
	clock  *mocks.MockClock
	random *mocks.MockRandom
	log    *eventLog
	memory *MemoryClicker
}

func TestMemorySuite(t *testing.T) {
	suite.Run(t, new(MemorySuite))
}

func (s *MemorySuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.log = &eventLog{}
	s.memory = NewMemoryClicker(s.clock, s.random, s.log.listener())
}

// waitForInput advances the clock until the sequence has been played back
func (s *MemorySuite) waitForInput() {
	for i := 0; i < 1000; i++ {
		snap := s.memory.Snapshot()
		if snap.State != StatePlaying || !snap.Memory.ShowingSequence {
			return
		}
		s.clock.Advance(100 * time.Millisecond)
	}
	s.FailNow("sequence never finished playing")
}

func (s *MemorySuite) repeatSequence() {
	for _, symbol := range s.memory.Sequence() {
		s.Require().True(s.memory.Press(symbol))
	}
}

func (s *MemorySuite) TestStartPlaysFirstSymbol() {
	s.random.QueueIntn(2) // Green

	s.Require().True(s.memory.Start())
	s.Equal([]int{3}, s.memory.Sequence())

	snap := s.memory.Snapshot()
	s.Equal(StatePlaying, snap.State)
	s.Equal(1, snap.Memory.Level)
	s.True(snap.Memory.ShowingSequence)

	s.clock.Advance(memoryPreDelay)
	s.Equal(3, s.memory.Snapshot().Memory.Highlighted)

	s.clock.Advance(memoryHighlight)
	snap = s.memory.Snapshot()
	s.Equal(0, snap.Memory.Highlighted)
	s.False(snap.Memory.ShowingSequence)
	s.Equal(1, s.log.count(EventHighlight))
	s.Equal(1, s.log.count(EventInputReady))
}

func (s *MemorySuite) TestInputLockedDuringPlayback() {
	s.random.QueueIntn(0)
	s.memory.Start()

	s.False(s.memory.Press(1))
	s.Equal(0, s.memory.Snapshot().Memory.Progress)
}

func (s *MemorySuite) TestInvalidSymbolIsIgnored() {
	s.random.QueueIntn(0)
	s.memory.Start()
	s.waitForInput()

	s.False(s.memory.Press(0))
	s.False(s.memory.Press(7))
	s.Equal(StatePlaying, s.memory.Snapshot().State)
}

func (s *MemorySuite) TestPressWhileIdleIsIgnored() {
	s.False(s.memory.Press(1))
}

func (s *MemorySuite) TestCorrectInputAdvancesLevel() {
	s.random.QueueIntn(0, 4)
	s.memory.Start()
	s.waitForInput()

	s.True(s.memory.Press(1))

	snap := s.memory.Snapshot()
	s.Equal(2, snap.Memory.Level)
	s.True(snap.Memory.ShowingSequence)
	s.False(s.memory.Press(1), "input stays locked before the next level")

	s.clock.Advance(memoryNextLevelWait)
	s.Equal([]int{1, 5}, s.memory.Sequence())

	s.waitForInput()
	s.Equal(3, s.log.count(EventHighlight))
	s.True(s.memory.Press(1))
	s.Equal(1, s.memory.Snapshot().Memory.Progress)
}

func (s *MemorySuite) TestWrongInputLoses() {
	s.random.QueueIntn(0, 1, 2)
	s.memory.Start()
	s.waitForInput()
	s.repeatSequence()
	s.clock.Advance(memoryNextLevelWait)
	s.waitForInput()
	s.repeatSequence()
	s.clock.Advance(memoryNextLevelWait)
	s.waitForInput()

	// level 3, sequence 1 2 3
	s.True(s.memory.Press(1))
	s.True(s.memory.Press(6))

	snap := s.memory.Snapshot()
	s.Equal(StateFinished, snap.State)
	s.Require().NotNil(snap.Result)
	s.Equal(3, snap.Result.Score)
	s.False(snap.Result.Won)
	s.Equal("Keep practicing!", snap.Result.Message)
}

func (s *MemorySuite) TestPerfectGameWins() {
	for i := 0; i < MemoryMaxLevel; i++ {
		s.random.QueueIntn(i % len(Colors))
	}
	s.memory.Start()

	for level := 1; level <= MemoryMaxLevel; level++ {
		s.waitForInput()
		s.Require().Equal(level, s.memory.Snapshot().Memory.Level)
		s.repeatSequence()
		if level < MemoryMaxLevel {
			s.clock.Advance(memoryNextLevelWait)
		}
	}

	snap := s.memory.Snapshot()
	s.Equal(StateFinished, snap.State)
	s.Require().NotNil(snap.Result)
	s.Equal(15, snap.Result.Score)
	s.True(snap.Result.Won)
	s.Equal("Perfect memory!", snap.Result.Message)
	s.Greater(snap.Result.Duration, 0)
}

func (s *MemorySuite) TestResetDuringPlaybackCancelsTimers() {
	s.random.QueueIntn(0)
	s.memory.Start()
	s.clock.Advance(memoryPreDelay)

	s.memory.Reset()
	s.clock.Advance(time.Minute)

	snap := s.memory.Snapshot()
	s.Equal(StateIdle, snap.State)
	s.Equal(1, snap.Memory.Level)
	s.Equal(0, snap.Memory.SequenceLength)
	s.Equal(0, snap.Memory.Highlighted)
	s.Equal(0, s.log.count(EventInputReady))
}

func (s *MemorySuite) TestResetDuringLevelWait() {
	s.random.QueueIntn(0, 0)
	s.memory.Start()
	s.waitForInput()
	s.memory.Press(1)

	s.memory.Reset()
	s.clock.Advance(time.Minute)

	s.Empty(s.memory.Sequence())
}

func (s *MemorySuite) TestMessages() {
	s.Equal("Perfect memory!", memoryMessage(15, true))
	s.Equal("Excellent memory!", memoryMessage(10, false))
	s.Equal("Good memory!", memoryMessage(5, false))
	s.Equal("Keep practicing!", memoryMessage(4, false))
}
