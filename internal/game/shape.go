package game

// Shape is a row-major occupancy matrix. Shapes are never modified after
// construction; Rotate returns a new one.
type Shape [][]bool

func (s Shape) Rows() int {
	return len(s)
}

func (s Shape) Cols() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// Rotate returns the shape turned 90 degrees clockwise. The cell at (y, x)
// moves to (x, H-1-y) where H is the original height.
func (s Shape) Rotate() Shape {
	h, w := s.Rows(), s.Cols()
	rotated := make(Shape, w)
	for i := range rotated {
		rotated[i] = make([]bool, h)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			rotated[x][h-1-y] = s[y][x]
		}
	}
	return rotated
}

// Equal reports whether s and o have the same dimensions and cells.
func (s Shape) Equal(o Shape) bool {
	if s.Rows() != o.Rows() || s.Cols() != o.Cols() {
		return false
	}
	for y := range s {
		for x := range s[y] {
			if s[y][x] != o[y][x] {
				return false
			}
		}
	}
	return true
}

// Filled returns the offsets of every occupied cell.
func (s Shape) Filled() []Position {
	var cells []Position
	for y, row := range s {
		for x, filled := range row {
			if filled {
				cells = append(cells, Position{Row: y, Col: x})
			}
		}
	}
	return cells
}

func (s Shape) clone() Shape {
	out := make(Shape, len(s))
	for i := range s {
		out[i] = make([]bool, len(s[i]))
		copy(out[i], s[i])
	}
	return out
}
