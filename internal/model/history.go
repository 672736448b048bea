package model

import "time"

// HistoryEntry records one finished play
type HistoryEntry struct {
	ID       string `json:"id"`
	GameID   GameID `json:"gameId"`
	GameName string `json:"gameName"`
	Score    int    `json:"score"`
	// Duration is the play time in whole seconds
	Duration  int       `json:"duration"`
	Timestamp time.Time `json:"timestamp"`
	UserID    UserID    `json:"userId"`
}

// GameStats summarizes a user's plays of one game
type GameStats struct {
	GameID       GameID    `json:"gameId"`
	TotalPlays   int       `json:"totalPlays"`
	BestScore    int       `json:"bestScore"`
	AverageScore int       `json:"averageScore"`
	LastPlayed   time.Time `json:"lastPlayed"`
}
