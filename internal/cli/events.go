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
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

func newEventsCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Stream game events for this client",
		Long: `Connect to the portal's event stream and print events in real-time.

Events include:
  - started: A game began
  - tick: The tap counter's countdown moved
  - highlight: The memory game showed a colour
  - input-ready: The memory game is waiting for input
  - progress: A correct memory input
  - reward: A lucky box was opened
  - finished: A game ended
  - reset: A game returned to idle

Press Ctrl+C to disconnect.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return streamEvents(ctx, os.Stdout, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output events as JSON lines")

	return cmd
}

// SSEEvent represents a parsed SSE event
type SSEEvent struct {
	Time  time.Time `json:"time"`
	Event string    `json:"event"`
	Data  string    `json:"data"`
}

// readSSE parses an event stream, calling fn for each complete event,
// until the stream ends. Comment lines are skipped.
func readSSE(r io.Reader, fn func(SSEEvent)) error {
	scanner := bufio.NewScanner(r)
	var currentEvent string
	var dataLines []string

	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case strings.HasPrefix(line, ":"):
		case strings.HasPrefix(line, "event:"):
			currentEvent = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			dataLines = append(dataLines, strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " "))
		case line == "":
			if currentEvent != "" || len(dataLines) > 0 {
				if currentEvent == "" {
					currentEvent = "message"
				}
				fn(SSEEvent{Time: time.Now(), Event: currentEvent, Data: strings.Join(dataLines, "\n")})
			}
			currentEvent = ""
			dataLines = nil
		}
	}
	return scanner.Err()
}

func streamEvents(ctx context.Context, w io.Writer, jsonOutput bool) error {
	body, err := client.Stream(ctx, "/api/v1/events")
	if err != nil {
		return err
	}
	defer func() { _ = body.Close() }()

	if !jsonOutput {
		_, _ = fmt.Fprintf(w, "Connected as client %s\n", cfg.ClientID)
	}

	err = readSSE(body, func(ev SSEEvent) {
		printEvent(w, ev, jsonOutput)
	})
	if err != nil && ctx.Err() == nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stream error: %w", err)
	}

	if !jsonOutput {
		_, _ = fmt.Fprintln(w, "Disconnected")
	}
	return nil
}

func printEvent(w io.Writer, ev SSEEvent, jsonOutput bool) {
	if jsonOutput {
		data, _ := json.Marshal(ev)
		_, _ = fmt.Fprintln(w, string(data))
		return
	}

	displayData := strings.ReplaceAll(ev.Data, "\n", " ")
	if len(displayData) > 100 {
		displayData = displayData[:100] + "..."
	}
	_, _ = fmt.Fprintf(w, "[%s] %s: %s\n", ev.Time.Format("2006-01-02 15:04:05"), ev.Event, displayData)
}
