package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hersh/blockfall/internal/game"
	"github.com/hersh/blockfall/internal/tui"
)

// This is the standalone terminal entry point.
// For remote play, use:
//   Server: go run ./cmd/server
//   Client: go run ./cmd/client --server ws://localhost:8080/ws --name YourName
// For a desktop window: go run ./cmd/desktop

func main() {
	name := flag.String("name", "Player", "player name")
	seed := flag.Int64("seed", 0, "piece sequence seed (0 = random)")
	rows := flag.Int("rows", game.DefaultRows, "board height in cells")
	cols := flag.Int("cols", game.DefaultCols, "board width in cells")
	baseRate := flag.Int("base-rate", game.DefaultBaseRate, "gravity ticks per second before the level is added")
	flag.Parse()

	cfg := game.Config{Rows: *rows, Cols: *cols, BaseRate: *baseRate}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(
		tui.NewModel(*name, cfg, *seed),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
