package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/hersh/blockfall/internal/desktop"
	"github.com/hersh/blockfall/internal/game"
)

var keymap = []struct {
	keys []ebiten.Key
	cmd  game.Command
}{
	{[]ebiten.Key{ebiten.KeyLeft, ebiten.KeyA}, game.MoveLeft},
	{[]ebiten.Key{ebiten.KeyRight, ebiten.KeyD}, game.MoveRight},
	{[]ebiten.Key{ebiten.KeyDown, ebiten.KeyS}, game.SoftDrop},
	{[]ebiten.Key{ebiten.KeyUp, ebiten.KeyW}, game.Rotate},
}

// Game adapts the desktop driver to ebiten.
type Game struct {
	driver *desktop.Driver
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	var pressed []game.Command
	for _, binding := range keymap {
		for _, k := range binding.keys {
			if inpututil.IsKeyJustPressed(k) {
				pressed = append(pressed, binding.cmd)
				break
			}
		}
	}
	g.driver.Frame(pressed, inpututil.IsKeyJustPressed(ebiten.KeyEnter))
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(desktop.Background)
	snap := g.driver.Snapshot()

	for y, row := range snap.Composite() {
		for x, cell := range row {
			px, py := float32(x*desktop.CellSize), float32(y*desktop.CellSize)
			if cell.Filled {
				vector.DrawFilledRect(screen, px, py, desktop.CellSize-1, desktop.CellSize-1, desktop.Palette(cell.Color), false)
			} else {
				vector.StrokeRect(screen, px, py, desktop.CellSize, desktop.CellSize, 1, desktop.GridLine, false)
			}
		}
	}

	panelX := snap.Cols*desktop.CellSize + 10
	ebitenutil.DebugPrintAt(screen, "NEXT", panelX, 10)
	drawPiece(screen, snap.Next, float32(panelX), 30)

	info := fmt.Sprintf("SCORE %d\nLEVEL %d\nLINES %d", snap.Score, snap.Level, snap.Lines)
	ebitenutil.DebugPrintAt(screen, info, panelX, 110)

	if snap.GameOver {
		ebitenutil.DebugPrintAt(screen, "GAME OVER\nENTER to restart\nESC to quit", panelX, 180)
	}
}

func drawPiece(screen *ebiten.Image, p game.PieceView, x, y float32) {
	const size = desktop.CellSize / 2
	c := desktop.Palette(p.Color())
	for _, off := range p.Shape.Filled() {
		vector.DrawFilledRect(screen, x+float32(off.Col*size), y+float32(off.Row*size), size-1, size-1, c, false)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.driver.ScreenSize()
}

func main() {
	seed := flag.Int64("seed", 0, "piece sequence seed (0 = random)")
	baseRate := flag.Int("base-rate", game.DefaultBaseRate, "gravity ticks per second before the level is added")
	flag.Parse()

	cfg := game.DefaultConfig()
	cfg.BaseRate = *baseRate
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	driver := desktop.NewDriver(cfg, *seed, desktop.DefaultTPS)
	w, h := driver.ScreenSize()

	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("Blockfall")
	ebiten.SetTPS(desktop.DefaultTPS)

	if err := ebiten.RunGame(&Game{driver: driver}); err != nil {
		log.Fatalf("run: %v", err)
	}
}
