package storage

import (
	"fmt"

	"github.com/mcoot/gameportal/internal/model"
)

const (
	// UsersKey holds the JSON array of every account
	UsersKey = "gamePortalUsers"

	// SessionKey holds the JSON session of the logged-in user
	SessionKey = "gamePortalUser"
)

// HistoryKey returns the key holding a user's play history
func HistoryKey(userID model.UserID) string {
	return fmt.Sprintf("gameHistory_%s", userID)
}
