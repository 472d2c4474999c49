// Package desktop holds the frame-based driver used by the windowed
// front end. It knows nothing about the window library: the caller feeds
// it the commands pressed in each frame and draws what Snapshot returns.
package desktop

import (
	"image/color"
	"time"

	"github.com/hersh/blockfall/internal/game"
)

const (
	CellSize   = 30
	PanelWidth = 160
	DefaultTPS = 60
)

var palette = map[game.Color]color.RGBA{
	game.Cyan:    {0, 255, 255, 255},
	game.Magenta: {255, 0, 255, 255},
	game.Yellow:  {255, 255, 0, 255},
	game.Green:   {0, 255, 0, 255},
	game.Red:     {255, 0, 0, 255},
	game.Blue:    {0, 0, 255, 255},
	game.Orange:  {255, 165, 0, 255},
}

var (
	Background = color.RGBA{0, 0, 0, 255}
	GridLine   = color.RGBA{40, 40, 40, 255}
)

// Palette returns the fill color for a piece color.
func Palette(c game.Color) color.RGBA {
	if rgba, ok := palette[c]; ok {
		return rgba
	}
	return color.RGBA{128, 128, 128, 255}
}

// FramesPerTick converts a gravity interval into a whole number of frames
// at tps frames per second, rounded to nearest. It is never less than one.
func FramesPerTick(interval time.Duration, tps int) int {
	n := int((interval*time.Duration(tps) + time.Second/2) / time.Second)
	if n < 1 {
		return 1
	}
	return n
}

// Driver owns one session at a time and advances it a frame at a time.
type Driver struct {
	cfg     game.Config
	seed    int64
	tps     int
	session *game.Session
	frames  int
	games   int
}

// NewDriver starts a first game. A zero seed picks a new random seed for
// every game.
func NewDriver(cfg game.Config, seed int64, tps int) *Driver {
	if tps <= 0 {
		tps = DefaultTPS
	}
	d := &Driver{cfg: cfg, seed: seed, tps: tps}
	d.Restart()
	return d
}

// Restart throws away the current session and starts a new one.
func (d *Driver) Restart() {
	var gen game.Generator = game.NewTimeSeededGenerator()
	if d.seed != 0 {
		gen = game.NewRandomGenerator(d.seed + int64(d.games))
	}
	d.session = game.NewSession(d.cfg, gen)
	d.frames = 0
	d.games++
}

// Frame applies the commands pressed this frame, then counts toward the
// next gravity tick. restart only takes effect after game over.
func (d *Driver) Frame(pressed []game.Command, restart bool) {
	if d.session.GameOver() {
		if restart {
			d.Restart()
		}
		return
	}

	for _, cmd := range pressed {
		d.session.Apply(cmd)
	}

	d.frames++
	if d.frames >= FramesPerTick(d.session.TickInterval(), d.tps) {
		d.frames = 0
		d.session.Tick()
	}
}

func (d *Driver) Snapshot() game.Snapshot {
	return d.session.Snapshot()
}

// ScreenSize is the window size in pixels for the configured board.
func (d *Driver) ScreenSize() (int, int) {
	return d.cfg.Cols*CellSize + PanelWidth, d.cfg.Rows * CellSize
}
