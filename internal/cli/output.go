package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mcoot/gameportal/internal/api/response"
	"github.com/mcoot/gameportal/internal/model"
	"github.com/mcoot/gameportal/internal/services/game"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// JSON reports whether output is machine-readable
func (o *Output) JSON() bool {
	return o.format == "json"
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.JSON() {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.JSON() {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Health:
		fmt.Printf("Status: %s\n", v.Status)
	case response.Session:
		o.printSession(v)
	case response.GameList:
		o.printGameList(v)
	case response.GameDetail:
		o.printGameDetail(v)
	case response.History:
		o.printHistory(v)
	case response.StatsList:
		o.printStatsList(v)
	case response.GameStats:
		o.printGameStats(v.GameID, v.Stats)
	case game.Snapshot:
		o.printSnapshot(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printSession(s response.Session) {
	fmt.Printf("User: %s (%s)\n", s.Username, s.UserID)
	fmt.Printf("Logged in: %s\n", FormatTimestamp(s.LoginTime))
}

func (o *Output) printGameList(l response.GameList) {
	for _, g := range l.Games {
		fmt.Printf("%s %-15s [%s] %s\n", g.Emoji, g.Name, g.Tag, g.Description)
		fmt.Printf("   play with: portal play %s\n", g.Slug)
	}
}

func (o *Output) printGameDetail(d response.GameDetail) {
	fmt.Printf("%s %s (%s)\n", d.Emoji, d.Name, d.ID)
	fmt.Printf("Category: %s\n", d.Tag)
	fmt.Println(d.Description)
	if d.Stats != nil {
		fmt.Println()
		o.printGameStats(d.ID, d.Stats)
	}
}

func (o *Output) printHistory(h response.History) {
	if len(h.Entries) == 0 {
		fmt.Println("No games played yet")
		return
	}
	for _, e := range h.Entries {
		fmt.Printf("%s  %-15s score %-6d %s\n",
			FormatTimestamp(e.Timestamp), e.GameName, e.Score, FormatDuration(e.Duration))
	}
}

func (o *Output) printStatsList(l response.StatsList) {
	if len(l.Stats) == 0 {
		fmt.Println("No games played yet")
		return
	}
	for i, s := range l.Stats {
		if i > 0 {
			fmt.Println()
		}
		stats := s
		o.printGameStats(s.GameID, &stats)
	}
}

func (o *Output) printGameStats(id model.GameID, s *model.GameStats) {
	name := string(id)
	if g, err := model.GameByID(id); err == nil {
		name = g.Name
	}
	if s == nil {
		fmt.Printf("%s: not played yet\n", name)
		return
	}
	fmt.Printf("%s\n", name)
	fmt.Printf("  Plays:       %d\n", s.TotalPlays)
	fmt.Printf("  Best score:  %d\n", s.BestScore)
	fmt.Printf("  Average:     %d\n", s.AverageScore)
	fmt.Printf("  Last played: %s\n", FormatTimestamp(s.LastPlayed))
}

func (o *Output) printSnapshot(s game.Snapshot) {
	name := string(s.GameID)
	if g, err := model.GameByID(s.GameID); err == nil {
		name = g.Emoji + " " + g.Name
	}
	fmt.Printf("Game: %s (%s)\n", name, s.State)

	switch {
	case s.Tap != nil:
		fmt.Printf("Taps: %d\n", s.Tap.Taps)
		fmt.Printf("Time left: %s\n", FormatDuration(s.Tap.TimeLeft))
	case s.Memory != nil:
		fmt.Printf("Level: %d/%d\n", s.Memory.Level, game.MemoryMaxLevel)
		fmt.Printf("Progress: %d/%d\n", s.Memory.Progress, s.Memory.SequenceLength)
		if s.Memory.ShowingSequence {
			fmt.Println("Watch the sequence...")
		}
	case s.Lucky != nil:
		fmt.Printf("Boxes: %d/%d\n", s.Lucky.BoxesOpened, s.Lucky.BoxesTotal)
		fmt.Printf("Total: %d\n", s.Lucky.Total)
		if r := s.Lucky.LastReward; r != nil {
			fmt.Printf("Last reward: %s\n", formatReward(*r))
		}
	}

	if s.Result != nil {
		fmt.Printf("Result: %d in %s - %s\n", s.Result.Score, FormatDuration(s.Result.Duration), s.Result.Message)
	}
}

func formatReward(r model.RewardTier) string {
	return fmt.Sprintf("%s %s +%d (%s)", r.Emoji, r.Name, r.Value, r.Rarity)
}

func colorName(symbol int) string {
	if symbol < 1 || symbol > len(game.Colors) {
		return "?"
	}
	return game.Colors[symbol-1].Name
}

func colorLegend() string {
	parts := make([]string, len(game.Colors))
	for i, c := range game.Colors {
		parts[i] = fmt.Sprintf("%d=%s", c.ID, c.Name)
	}
	return strings.Join(parts, " ")
}
