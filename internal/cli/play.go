package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mcoot/gameportal/internal/api/request"
	"github.com/mcoot/gameportal/internal/api/sse"
	"github.com/mcoot/gameportal/internal/model"
	"github.com/mcoot/gameportal/internal/services/game"
)

var errStreamClosed = errors.New("event stream closed")

func newPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play <slug>",
		Short: "Play a game interactively",
		Long: `Start a game and play it from the terminal.

  tap-counter     press Enter to tap, as fast as you can
  memory-clicker  watch the colours, then type them back as numbers
  lucky-box       press Enter to open each box

Type q to give up. Press Ctrl+C to disconnect.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := model.GameBySlug(args[0])
			if err != nil {
				return fmt.Errorf("unknown game %q, see 'portal games'", args[0])
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			session := &playSession{game: g, in: os.Stdin, out: os.Stdout, jsonOut: NewOutput(cfg.Output).JSON()}
			return session.run(ctx)
		},
	}
}

// playSession runs one interactive game, reading actions from in and
// following the game's progress over the event stream
type playSession struct {
	game    model.Game
	in      io.Reader
	out     io.Writer
	jsonOut bool
	started bool
}

func (p *playSession) run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Subscribe before launching so the started event is not missed
	body, err := client.Stream(ctx, "/api/v1/events")
	if err != nil {
		return err
	}
	defer func() { _ = body.Close() }()

	events := make(chan game.Event)
	go func() {
		defer close(events)
		_ = readSSE(body, func(ev SSEEvent) {
			if ev.Event == sse.EventConnected {
				return
			}
			var gameEvent game.Event
			if err := json.Unmarshal([]byte(ev.Data), &gameEvent); err != nil {
				return
			}
			select {
			case events <- gameEvent:
			case <-ctx.Done():
			}
		})
	}()

	var snap game.Snapshot
	if err := client.Post("/api/v1/play/"+p.game.Slug, nil, &snap); err != nil {
		return err
	}
	p.printIntro()

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(p.in)
		for scanner.Scan() {
			select {
			case lines <- strings.TrimSpace(scanner.Text()):
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			p.println("\nDisconnected")
			return nil

		case ev, ok := <-events:
			if !ok {
				return errStreamClosed
			}
			if done := p.handleEvent(ev); done {
				return nil
			}

		case line, ok := <-lines:
			if !ok {
				lines = nil
				continue
			}
			if line == "q" {
				var snap game.Snapshot
				return client.Post("/api/v1/play/reset", nil, &snap)
			}
			if err := p.act(line); err != nil {
				p.println(err.Error())
			}
		}
	}
}

func (p *playSession) printIntro() {
	if p.jsonOut {
		return
	}
	p.printf("%s %s\n", p.game.Emoji, p.game.Name)
	switch p.game.ID {
	case model.GameTapCounter:
		p.println("Press Enter to tap. Go!")
	case model.GameMemoryClicker:
		p.printf("Colours: %s\n", colorLegend())
		p.println("Watch the sequence...")
	case model.GameLuckyBox:
		p.println("Press Enter to open a box.")
	}
}

// act performs the action an input line asks for
func (p *playSession) act(line string) error {
	var snap game.Snapshot
	switch p.game.ID {
	case model.GameTapCounter:
		return client.Post("/api/v1/play/tap", nil, &snap)
	case model.GameLuckyBox:
		return client.Post("/api/v1/play/open", nil, &snap)
	case model.GameMemoryClicker:
		for _, field := range strings.Fields(line) {
			symbol, err := strconv.Atoi(field)
			if err != nil || symbol < 1 || symbol > len(game.Colors) {
				return fmt.Errorf("enter numbers from 1 to %d: %s", len(game.Colors), colorLegend())
			}
			if err := client.Post("/api/v1/play/press", request.PressRequest{Symbol: symbol}, &snap); err != nil {
				return err
			}
			if snap.State != game.StatePlaying {
				return nil
			}
		}
	}
	return nil
}

// handleEvent prints an event and reports whether the game is over
func (p *playSession) handleEvent(ev game.Event) bool {
	// Events from a game this launch replaced arrive before started
	if ev.Type == game.EventStarted {
		p.started = true
	}
	if !p.started || ev.Snapshot.GameID != p.game.ID {
		return false
	}
	if p.jsonOut {
		data, _ := json.Marshal(ev)
		p.println(string(data))
		return ev.Type == game.EventFinished || ev.Type == game.EventReset
	}

	snap := ev.Snapshot
	switch ev.Type {
	case game.EventTick:
		if snap.Tap != nil {
			p.printf("%s left, %d taps\n", FormatDuration(snap.Tap.TimeLeft), snap.Tap.Taps)
		}
	case game.EventHighlight:
		p.printf("  %s\n", colorName(ev.Symbol))
	case game.EventInputReady:
		if snap.Memory != nil {
			p.printf("Level %d: enter %d colours\n", snap.Memory.Level, snap.Memory.SequenceLength)
		}
	case game.EventReward:
		if ev.Reward != nil && snap.Lucky != nil {
			p.printf("Box %d/%d: %s\n", snap.Lucky.BoxesOpened, snap.Lucky.BoxesTotal, formatReward(*ev.Reward))
		}
	case game.EventFinished:
		if snap.Result != nil {
			p.printf("Score %d in %s. %s\n", snap.Result.Score, FormatDuration(snap.Result.Duration), snap.Result.Message)
		}
		return true
	case game.EventReset:
		p.println("Game abandoned")
		return true
	}
	return false
}

func (p *playSession) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}

func (p *playSession) println(s string) {
	_, _ = fmt.Fprintln(p.out, s)
}
