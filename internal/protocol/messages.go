package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/hersh/blockfall/internal/game"
)

// MessageType identifies the kind of message sent over the wire.
type MessageType string

const (
	// Server -> Client messages
	MsgAssignID MessageType = "assign_id"
	MsgSnapshot MessageType = "snapshot"
	MsgError    MessageType = "error"

	// Client -> Server messages
	MsgStart   MessageType = "start"
	MsgCommand MessageType = "command"
)

// Envelope is the top-level wire format for all messages.
type Envelope struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload"`
}

// RawEnvelope is an Envelope whose payload has not been decoded yet.
type RawEnvelope struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Decode splits a message into its type and raw payload.
func Decode(data []byte) (RawEnvelope, error) {
	var env RawEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return RawEnvelope{}, fmt.Errorf("decode envelope: %w", err)
	}
	return env, nil
}

// Into unmarshals the payload into target.
func (e RawEnvelope) Into(target interface{}) error {
	if err := json.Unmarshal(e.Payload, target); err != nil {
		return fmt.Errorf("decode %s payload: %w", e.Type, err)
	}
	return nil
}

// --- Server -> Client payloads ---

// AssignIDPayload is sent when a client first connects.
type AssignIDPayload struct {
	PlayerID uint64 `json:"player_id"`
}

// PiecePayload describes one piece: its kind, current orientation and
// position. Position is meaningless for the queued next piece.
type PiecePayload struct {
	Kind  int      `json:"kind"`
	Shape [][]bool `json:"shape"`
	Row   int      `json:"row"`
	Col   int      `json:"col"`
}

// SnapshotPayload is the visible state of a session after a change.
type SnapshotPayload struct {
	Rows     int          `json:"rows"`
	Cols     int          `json:"cols"`
	Board    []int        `json:"board"` // flat, row-major, 0 = empty
	Active   PiecePayload `json:"active"`
	Next     PiecePayload `json:"next"`
	Score    int          `json:"score"`
	Level    int          `json:"level"`
	Lines    int          `json:"lines"`
	GameOver bool         `json:"game_over"`
}

// ErrorPayload reports a rejected client message.
type ErrorPayload struct {
	Message string `json:"message"`
}

// --- Client -> Server payloads ---

// StartPayload starts a new session, replacing any running one. A zero
// seed lets the server pick one.
type StartPayload struct {
	PlayerName string `json:"player_name"`
	Seed       int64  `json:"seed,omitempty"`
}

// CommandPayload carries one input command by name, e.g. "move_left".
type CommandPayload struct {
	Command string `json:"command"`
}

// --- Snapshot codec ---

func pieceToPayload(v game.PieceView) PiecePayload {
	return PiecePayload{
		Kind:  int(v.Kind),
		Shape: v.Shape,
		Row:   v.Pos.Row,
		Col:   v.Pos.Col,
	}
}

func pieceFromPayload(p PiecePayload) (game.PieceView, error) {
	k := game.Kind(p.Kind)
	if !k.Valid() {
		return game.PieceView{}, fmt.Errorf("invalid piece kind %d", p.Kind)
	}
	shape := game.Shape(p.Shape)
	if !isOrientationOf(shape, k) {
		return game.PieceView{}, fmt.Errorf("shape %v is not an orientation of %s", p.Shape, k)
	}
	return game.PieceView{
		Kind:  k,
		Shape: shape,
		Pos:   game.Position{Row: p.Row, Col: p.Col},
	}, nil
}

// isOrientationOf reports whether shape is one of the four rotations of k.
// Ragged or empty shapes never match.
func isOrientationOf(shape game.Shape, k game.Kind) bool {
	if len(shape) == 0 {
		return false
	}
	for _, row := range shape {
		if len(row) != len(shape[0]) {
			return false
		}
	}
	want := k.Shape()
	for i := 0; i < 4; i++ {
		if shape.Equal(want) {
			return true
		}
		want = want.Rotate()
	}
	return false
}

// FromSnapshot encodes a session snapshot for the wire.
func FromSnapshot(s game.Snapshot) SnapshotPayload {
	flat := make([]int, s.Rows*s.Cols)
	for y, row := range s.Cells {
		for x, cell := range row {
			if cell.Filled {
				flat[y*s.Cols+x] = int(cell.Color)
			}
		}
	}
	return SnapshotPayload{
		Rows:     s.Rows,
		Cols:     s.Cols,
		Board:    flat,
		Active:   pieceToPayload(s.Active),
		Next:     pieceToPayload(s.Next),
		Score:    s.Score,
		Level:    s.Level,
		Lines:    s.Lines,
		GameOver: s.GameOver,
	}
}

// Snapshot decodes the payload back into a game snapshot.
func (p SnapshotPayload) Snapshot() (game.Snapshot, error) {
	if p.Rows <= 0 || p.Cols <= 0 || len(p.Board) != p.Rows*p.Cols {
		return game.Snapshot{}, fmt.Errorf("board of %d cells does not match %dx%d", len(p.Board), p.Cols, p.Rows)
	}
	active, err := pieceFromPayload(p.Active)
	if err != nil {
		return game.Snapshot{}, fmt.Errorf("active piece: %w", err)
	}
	next, err := pieceFromPayload(p.Next)
	if err != nil {
		return game.Snapshot{}, fmt.Errorf("next piece: %w", err)
	}

	cells := make([][]game.Cell, p.Rows)
	for y := range cells {
		cells[y] = make([]game.Cell, p.Cols)
		for x := range cells[y] {
			c := p.Board[y*p.Cols+x]
			if c == 0 {
				continue
			}
			if c < int(game.Cyan) || c > int(game.Orange) {
				return game.Snapshot{}, fmt.Errorf("cell (%d,%d): invalid color %d", y, x, c)
			}
			cells[y][x] = game.Occupied(game.Color(c))
		}
	}

	return game.Snapshot{
		Rows:     p.Rows,
		Cols:     p.Cols,
		Cells:    cells,
		Active:   active,
		Next:     next,
		Score:    p.Score,
		Level:    p.Level,
		Lines:    p.Lines,
		GameOver: p.GameOver,
	}, nil
}
