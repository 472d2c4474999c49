package game

import (
	"fmt"
	"time"
)

const (
	DefaultRows     = 20
	DefaultCols     = 10
	DefaultBaseRate = 5
)

// Config holds the playfield size and the gravity base rate.
type Config struct {
	Rows     int
	Cols     int
	BaseRate int
}

func DefaultConfig() Config {
	return Config{
		Rows:     DefaultRows,
		Cols:     DefaultCols,
		BaseRate: DefaultBaseRate,
	}
}

// Validate rejects boards too small to hold every piece kind in every
// orientation.
func (c Config) Validate() error {
	if c.Rows < 4 || c.Cols < 4 {
		return fmt.Errorf("board %dx%d too small: need at least 4x4", c.Cols, c.Rows)
	}
	if c.BaseRate < 0 {
		return fmt.Errorf("base rate %d must not be negative", c.BaseRate)
	}
	return nil
}

// Session is one game. It is not safe for concurrent use; drivers must
// deliver commands one at a time.
type Session struct {
	cfg         Config
	board       *Board
	gen         Generator
	current     Piece
	next        Piece
	score       int
	level       int
	lines       int
	lastCleared int
	over        bool
}

// NewSession starts a game on an empty board.
func NewSession(cfg Config, gen Generator) *Session {
	return NewSessionOnBoard(cfg, gen, NewBoard(cfg.Rows, cfg.Cols))
}

// NewSessionOnBoard starts a game on a copy of an existing board. If the
// first piece cannot be placed the session begins in the game-over state.
func NewSessionOnBoard(cfg Config, gen Generator, board *Board) *Session {
	cfg.Rows, cfg.Cols = board.Rows(), board.Cols()
	s := &Session{
		cfg:   cfg,
		board: board.clone(),
		gen:   gen,
		level: LevelFor(0),
	}
	s.current = s.spawn()
	s.next = s.spawn()
	if s.board.Collides(s.current.Shape, s.current.Pos) {
		s.over = true
	}
	return s
}

func (s *Session) spawn() Piece {
	return SpawnPiece(s.gen.Next(), s.cfg.Cols)
}

// Current and Next return copies; the settled grid is only visible
// through Snapshot.
func (s *Session) Current() Piece { return s.current.clone() }
func (s *Session) Next() Piece { return s.next.clone() }
func (s *Session) Score() int { return s.score }
func (s *Session) Level() int { return s.level }
func (s *Session) Lines() int { return s.lines }
func (s *Session) GameOver() bool { return s.over }
func (s *Session) Config() Config { return s.cfg }
func (s *Session) LastCleared() int { return s.lastCleared }

// TickInterval is the gravity period for the current level.
func (s *Session) TickInterval() time.Duration {
	return TickInterval(s.level, s.cfg.BaseRate)
}

// Apply dispatches a command. It reports whether the session changed.
func (s *Session) Apply(c Command) bool {
	switch c {
	case MoveLeft:
		return s.MoveLeft()
	case MoveRight:
		return s.MoveRight()
	case SoftDrop:
		return s.SoftDrop()
	case Rotate:
		return s.Rotate()
	case Tick:
		return s.Tick()
	}
	return false
}

func (s *Session) MoveLeft() bool {
	return s.shift(-1)
}

func (s *Session) MoveRight() bool {
	return s.shift(1)
}

func (s *Session) shift(dx int) bool {
	if s.over {
		return false
	}
	pos := Position{Row: s.current.Pos.Row, Col: s.current.Pos.Col + dx}
	if s.board.Collides(s.current.Shape, pos) {
		return false
	}
	s.current.Pos = pos
	return true
}

// Rotate turns the active piece clockwise in place. A rotation that would
// collide is dropped and the old orientation kept.
func (s *Session) Rotate() bool {
	if s.over {
		return false
	}
	rotated := s.current.Shape.Rotate()
	if s.board.Collides(rotated, s.current.Pos) {
		return false
	}
	s.current = Piece{Kind: s.current.Kind, Shape: rotated, Pos: s.current.Pos}
	return true
}

// SoftDrop is a player-requested gravity step. It behaves exactly like
// Tick and awards no extra points.
func (s *Session) SoftDrop() bool {
	return s.gravity()
}

// Tick is a driver-issued gravity step.
func (s *Session) Tick() bool {
	return s.gravity()
}

func (s *Session) gravity() bool {
	if s.over {
		return false
	}
	pos := Position{Row: s.current.Pos.Row + 1, Col: s.current.Pos.Col}
	if !s.board.Collides(s.current.Shape, pos) {
		s.current.Pos = pos
		s.lastCleared = 0
		return true
	}
	s.lockPiece()
	return true
}

func (s *Session) lockPiece() {
	s.board.Lock(s.current)
	cleared := s.board.ClearLines()

	s.lastCleared = cleared
	s.lines += cleared
	s.score += ScoreFor(cleared)
	s.level = LevelFor(s.score)

	s.current = s.next
	s.next = s.spawn()

	if s.board.Collides(s.current.Shape, s.current.Pos) {
		s.over = true
	}
}
