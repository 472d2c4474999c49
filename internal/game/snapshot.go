package game

// PieceView is a read-only description of a piece for renderers.
type PieceView struct {
	Kind  Kind
	Shape Shape
	Pos   Position
}

func (v PieceView) Color() Color {
	return v.Kind.Color()
}

// Snapshot is a detached copy of a session's visible state. Mutating it
// never affects the session.
type Snapshot struct {
	Rows     int
	Cols     int
	Cells    [][]Cell
	Active   PieceView
	Next     PieceView
	Score    int
	Level    int
	Lines    int
	GameOver bool
}

func viewOf(p Piece) PieceView {
	return PieceView{Kind: p.Kind, Shape: p.Shape.clone(), Pos: p.Pos}
}

func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Rows:     s.board.Rows(),
		Cols:     s.board.Cols(),
		Cells:    s.board.Cells(),
		Active:   viewOf(s.current),
		Next:     viewOf(s.next),
		Score:    s.score,
		Level:    s.level,
		Lines:    s.lines,
		GameOver: s.over,
	}
}

// Composite returns the settled cells with the active piece drawn on top.
// After game over the active piece is left out.
func (sn Snapshot) Composite() [][]Cell {
	out := make([][]Cell, len(sn.Cells))
	for y := range sn.Cells {
		out[y] = make([]Cell, len(sn.Cells[y]))
		copy(out[y], sn.Cells[y])
	}
	if sn.GameOver {
		return out
	}
	color := sn.Active.Color()
	for _, off := range sn.Active.Shape.Filled() {
		r, c := sn.Active.Pos.Row+off.Row, sn.Active.Pos.Col+off.Col
		if r >= 0 && r < len(out) && c >= 0 && c < len(out[r]) {
			out[r][c] = Occupied(color)
		}
	}
	return out
}
