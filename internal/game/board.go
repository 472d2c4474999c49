package game

// Cell is one board position: either empty or occupied by a settled piece
// of some color.
type Cell struct {
	Filled bool
	Color  Color
}

func Empty() Cell {
	return Cell{}
}

func Occupied(c Color) Cell {
	return Cell{Filled: true, Color: c}
}

// Board holds every settled cell. Its dimensions are fixed at creation.
type Board struct {
	cells  [][]Cell
	width  int
	height int
}

func NewBoard(rows, cols int) *Board {
	cells := make([][]Cell, rows)
	for i := range cells {
		cells[i] = make([]Cell, cols)
	}
	return &Board{
		cells:  cells,
		width:  cols,
		height: rows,
	}
}

func (b *Board) Rows() int { return b.height }
func (b *Board) Cols() int { return b.width }

// At returns the cell at (row, col). Out of range positions read as empty.
func (b *Board) At(row, col int) Cell {
	if !b.inside(row, col) {
		return Empty()
	}
	return b.cells[row][col]
}

func (b *Board) inside(row, col int) bool {
	return row >= 0 && row < b.height && col >= 0 && col < b.width
}

// Collides reports whether shape placed at pos would leave the board or
// overlap a settled cell. Rows above the top edge count as outside.
func (b *Board) Collides(shape Shape, pos Position) bool {
	for y, row := range shape {
		for x, filled := range row {
			if !filled {
				continue
			}
			r, c := pos.Row+y, pos.Col+x
			if c < 0 || c >= b.width || r < 0 || r >= b.height {
				return true
			}
			if b.cells[r][c].Filled {
				return true
			}
		}
	}
	return false
}

// Lock writes the piece into the board. The caller must already have
// checked that the piece does not collide.
func (b *Board) Lock(p Piece) {
	color := p.Color()
	for _, off := range p.Shape.Filled() {
		r, c := p.Pos.Row+off.Row, p.Pos.Col+off.Col
		if b.inside(r, c) {
			b.cells[r][c] = Occupied(color)
		}
	}
}

func (b *Board) rowFull(r int) bool {
	for _, cell := range b.cells[r] {
		if !cell.Filled {
			return false
		}
	}
	return true
}

// ClearLines removes every full row in one pass and drops the rows above
// them, returning how many were removed. Row slots are reused: kept rows
// are partitioned to the bottom in order and the cleared slots are blanked
// and left at the top.
func (b *Board) ClearLines() int {
	w := b.height - 1
	for r := b.height - 1; r >= 0; r-- {
		if b.rowFull(r) {
			continue
		}
		b.cells[w], b.cells[r] = b.cells[r], b.cells[w]
		w--
	}

	cleared := w + 1
	for r := 0; r < cleared; r++ {
		clear(b.cells[r])
	}
	return cleared
}

func (b *Board) clone() *Board {
	return &Board{cells: b.Cells(), width: b.width, height: b.height}
}

// Cells returns a deep copy of the grid.
func (b *Board) Cells() [][]Cell {
	out := make([][]Cell, b.height)
	for y := range b.cells {
		out[y] = make([]Cell, b.width)
		copy(out[y], b.cells[y])
	}
	return out
}
