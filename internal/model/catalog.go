package model

// GameID identifies a game in the catalog
type GameID string

const (
	GameTapCounter    GameID = "tap-counter"
	GameMemoryClicker GameID = "memory-clicker"
	GameLuckyBox      GameID = "lucky-box"
)

// Game is a static catalog entry
type Game struct {
	ID          GameID `json:"id"`
	Name        string `json:"name"`
	Emoji       string `json:"emoji"`
	Tag         string `json:"tag"`
	Description string `json:"description"`
	Slug        string `json:"slug"`
	MinScore    *int   `json:"minScore,omitempty"`
	MaxScore    *int   `json:"maxScore,omitempty"`
}

func intPtr(v int) *int { return &v }

// Games is the catalog, in display order
var Games = []Game{
	{
		ID:          GameTapCounter,
		Name:        "Tap Counter",
		Emoji:       "⚡",
		Tag:         "Speed",
		Description: "Tap as fast as you can in 10 seconds!",
		Slug:        "tap-counter",
		MinScore:    intPtr(0),
		MaxScore:    intPtr(500),
	},
	{
		ID:          GameMemoryClicker,
		Name:        "Memory Clicker",
		Emoji:       "🧠",
		Tag:         "Memory",
		Description: "Remember and repeat the sequence!",
		Slug:        "memory-clicker",
		MinScore:    intPtr(0),
		MaxScore:    intPtr(50),
	},
	{
		ID:          GameLuckyBox,
		Name:        "Lucky Box",
		Emoji:       "🎁",
		Tag:         "Luck",
		Description: "Open boxes to find treasures!",
		Slug:        "lucky-box",
		MinScore:    intPtr(0),
		MaxScore:    intPtr(10000),
	},
}

// GameByID looks up a catalog entry by ID
func GameByID(id GameID) (Game, error) {
	for _, g := range Games {
		if g.ID == id {
			return g, nil
		}
	}
	return Game{}, ErrGameNotFound
}

// GameBySlug looks up a catalog entry by its URL slug
func GameBySlug(slug string) (Game, error) {
	for _, g := range Games {
		if g.Slug == slug {
			return g, nil
		}
	}
	return Game{}, ErrGameNotFound
}
