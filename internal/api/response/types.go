package response

import (
	"time"

	"github.com/mcoot/gameportal/internal/model"
)

// Health is the liveness response
type Health struct {
	Status string `json:"status"`
}

// Session represents the logged-in user in API responses
type Session struct {
	UserID    string    `json:"id"`
	Username  string    `json:"username"`
	LoginTime time.Time `json:"loginTime"`
}

// SessionFromModel converts a model.Session
func SessionFromModel(s *model.Session) Session {
	return Session{
		UserID:    string(s.UserID),
		Username:  s.Username,
		LoginTime: s.LoginTime,
	}
}

// GameList is the catalog response
type GameList struct {
	Games []model.Game `json:"games"`
}

// GameDetail is one catalog entry plus the caller's stats for it.
// Stats is null when the caller is logged out or has never played.
type GameDetail struct {
	model.Game
	Stats *model.GameStats `json:"stats"`
}

// History lists plays, most recent first
type History struct {
	Entries []model.HistoryEntry `json:"entries"`
}

// HistoryFromModel converts history entries, never returning a null list
func HistoryFromModel(entries []model.HistoryEntry) History {
	if entries == nil {
		entries = []model.HistoryEntry{}
	}
	return History{Entries: entries}
}

// StatsList holds stats for every game the user has played, in catalog order
type StatsList struct {
	Stats []model.GameStats `json:"stats"`
}

// StatsListFromModel orders per-game stats by the catalog
func StatsListFromModel(byGame map[model.GameID]model.GameStats) StatsList {
	list := make([]model.GameStats, 0, len(byGame))
	for _, g := range model.Games {
		if s, ok := byGame[g.ID]; ok {
			list = append(list, s)
		}
	}
	return StatsList{Stats: list}
}

// GameStats holds one game's stats; Stats is null if it was never played
type GameStats struct {
	GameID model.GameID     `json:"gameId"`
	Stats  *model.GameStats `json:"stats"`
}
