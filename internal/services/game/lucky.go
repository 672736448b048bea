package game

import (
	"github.com/mcoot/gameportal/internal/dependencies/clock"
	"github.com/mcoot/gameportal/internal/dependencies/random"
	"github.com/mcoot/gameportal/internal/model"
)

// BoxesPerGame is the number of draws in one lucky box game
const BoxesPerGame = 10

// Draw picks a tier with probability proportional to its chance.
// A uniform value in [0, 100) selects the first tier whose running chance
// total reaches it; the first tier is the fallback.
func Draw(rnd random.Random, tiers []model.RewardTier) model.RewardTier {
	r := rnd.Float64() * 100
	cumulative := 0.0
	for _, tier := range tiers {
		cumulative += tier.Chance
		if r <= cumulative {
			return tier
		}
	}
	return tiers[0]
}

// LuckySnapshot is the lucky box part of a Snapshot
type LuckySnapshot struct {
	BoxesOpened int                `json:"boxesOpened"`
	BoxesTotal  int                `json:"boxesTotal"`
	Total       int                `json:"total"`
	LastReward  *model.RewardTier  `json:"lastReward,omitempty"`
	Rewards     []model.RewardTier `json:"rewards"`
}

// LuckyBox accumulates the value of BoxesPerGame random draws
type LuckyBox struct {
	machine
	random  random.Random
	tiers   []model.RewardTier
	rewards []model.RewardTier
	total   int
}

// NewLuckyBox creates an idle lucky box game drawing from model.RewardTiers
func NewLuckyBox(clk clock.Clock, rnd random.Random, listener Listener) *LuckyBox {
	b := &LuckyBox{random: rnd, tiers: model.RewardTiers}
	b.init(model.GameLuckyBox, clk, listener)
	return b
}

func (b *LuckyBox) Start() bool {
	b.mu.Lock()
	if b.state != StateIdle {
		b.mu.Unlock()
		return false
	}
	b.begin()
	b.rewards = nil
	b.total = 0
	events := []Event{{Type: EventStarted, Snapshot: b.snapshotLocked()}}
	b.mu.Unlock()

	b.emit(events)
	return true
}

// Open draws one box. It returns nil outside of play.
func (b *LuckyBox) Open() *model.RewardTier {
	b.mu.Lock()
	if b.state != StatePlaying {
		b.mu.Unlock()
		return nil
	}
	reward := Draw(b.random, b.tiers)
	b.rewards = append(b.rewards, reward)
	b.total += reward.Value

	events := []Event{{Type: EventReward, Snapshot: b.snapshotLocked(), Reward: &reward}}
	if len(b.rewards) >= BoxesPerGame {
		b.finish(b.total, false, luckyMessage(b.total))
		events = append(events, Event{Type: EventFinished, Snapshot: b.snapshotLocked()})
	}
	b.mu.Unlock()

	b.emit(events)
	return &reward
}

func (b *LuckyBox) Reset() {
	b.mu.Lock()
	b.resetLocked()
	b.rewards = nil
	b.total = 0
	events := []Event{{Type: EventReset, Snapshot: b.snapshotLocked()}}
	b.mu.Unlock()

	b.emit(events)
}

func (b *LuckyBox) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshotLocked()
}

func (b *LuckyBox) snapshotLocked() Snapshot {
	snap := b.baseSnapshot(b.total)
	lucky := &LuckySnapshot{
		BoxesOpened: len(b.rewards),
		BoxesTotal:  BoxesPerGame,
		Total:       b.total,
		Rewards:     append([]model.RewardTier{}, b.rewards...),
	}
	if n := len(b.rewards); n > 0 {
		last := b.rewards[n-1]
		lucky.LastReward = &last
	}
	snap.Lucky = lucky
	return snap
}

func luckyMessage(total int) string {
	switch {
	case total >= 1000:
		return "Incredible luck!"
	case total >= 500:
		return "Great fortune!"
	case total >= 200:
		return "Good luck!"
	default:
		return "Better luck next time!"
	}
}
