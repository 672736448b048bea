// Package stats computes per-game summaries of play history.
package stats

import "github.com/mcoot/gameportal/internal/model"

// Summarize groups entries by game. Games without entries are absent from the result.
func Summarize(entries []model.HistoryEntry) map[model.GameID]model.GameStats {
	type acc struct {
		stats model.GameStats
		sum   int
	}
	byGame := make(map[model.GameID]*acc)
	for _, e := range entries {
		a, ok := byGame[e.GameID]
		if !ok {
			a = &acc{stats: model.GameStats{GameID: e.GameID, BestScore: e.Score, LastPlayed: e.Timestamp}}
			byGame[e.GameID] = a
		}
		a.stats.TotalPlays++
		a.sum += e.Score
		if e.Score > a.stats.BestScore {
			a.stats.BestScore = e.Score
		}
		if e.Timestamp.After(a.stats.LastPlayed) {
			a.stats.LastPlayed = e.Timestamp
		}
	}

	out := make(map[model.GameID]model.GameStats, len(byGame))
	for id, a := range byGame {
		a.stats.AverageScore = roundedMean(a.sum, a.stats.TotalPlays)
		out[id] = a.stats
	}
	return out
}

// ForGame summarizes one game's entries. ok is false when the game has none.
func ForGame(entries []model.HistoryEntry, gameID model.GameID) (stats model.GameStats, ok bool) {
	filtered := make([]model.HistoryEntry, 0, len(entries))
	for _, e := range entries {
		if e.GameID == gameID {
			filtered = append(filtered, e)
		}
	}
	stats, ok = Summarize(filtered)[gameID]
	return stats, ok
}

// roundedMean rounds sum/n to the nearest integer, halves up
func roundedMean(sum, n int) int {
	if n == 0 {
		return 0
	}
	return (2*sum + n) / (2 * n)
}
