package model

// Rarity labels a reward tier
type Rarity string

const (
	RarityCommon    Rarity = "Common"
	RarityUncommon  Rarity = "Uncommon"
	RarityRare      Rarity = "Rare"
	RarityEpic      Rarity = "Epic"
	RarityLegendary Rarity = "Legendary"
	RarityMythic    Rarity = "Mythic"
	RarityDivine    Rarity = "Divine"
)

// RewardTier is one outcome of a lucky box draw.
// Chance is a percentage; the chances of RewardTiers sum to 100.
type RewardTier struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	Emoji  string  `json:"emoji"`
	Value  int     `json:"value"`
	Chance float64 `json:"chance"`
	Rarity Rarity  `json:"rarity"`
}

// RewardTiers is the draw table, in cumulative-weight order
var RewardTiers = []RewardTier{
	{ID: 1, Name: "Common Gem", Emoji: "💎", Value: 10, Chance: 40, Rarity: RarityCommon},
	{ID: 2, Name: "Silver Coin", Emoji: "🪙", Value: 25, Chance: 25, Rarity: RarityUncommon},
	{ID: 3, Name: "Gold Coin", Emoji: "🥇", Value: 50, Chance: 15, Rarity: RarityRare},
	{ID: 4, Name: "Crystal", Emoji: "🔮", Value: 100, Chance: 10, Rarity: RarityEpic},
	{ID: 5, Name: "Diamond", Emoji: "💍", Value: 250, Chance: 7, Rarity: RarityLegendary},
	{ID: 6, Name: "Treasure Chest", Emoji: "👑", Value: 500, Chance: 2.5, Rarity: RarityMythic},
	{ID: 7, Name: "Dragon Egg", Emoji: "🐲", Value: 1000, Chance: 0.5, Rarity: RarityDivine},
}
