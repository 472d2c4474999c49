package game

import (
	"math/rand"
	"time"
)

// Color identifies a piece color. The zero value is not a piece color.
type Color uint8

const (
	Cyan Color = iota + 1
	Magenta
	Yellow
	Green
	Red
	Blue
	Orange
)

func (c Color) String() string {
	switch c {
	case Cyan:
		return "cyan"
	case Magenta:
		return "magenta"
	case Yellow:
		return "yellow"
	case Green:
		return "green"
	case Red:
		return "red"
	case Blue:
		return "blue"
	case Orange:
		return "orange"
	}
	return "none"
}

// Kind is one of the seven piece kinds.
type Kind int

const (
	KindI Kind = iota
	KindT
	KindO
	KindS
	KindZ
	KindL
	KindJ
)

type kindDef struct {
	name  string
	shape Shape
	color Color
}

var catalog = [...]kindDef{
	KindI: {"I", Shape{
		{true, true, true, true},
	}, Cyan},
	KindT: {"T", Shape{
		{true, true, true},
		{false, true, false},
	}, Magenta},
	KindO: {"O", Shape{
		{true, true},
		{true, true},
	}, Yellow},
	KindS: {"S", Shape{
		{true, true, false},
		{false, true, true},
	}, Green},
	KindZ: {"Z", Shape{
		{false, true, true},
		{true, true, false},
	}, Red},
	KindL: {"L", Shape{
		{true, true, true},
		{true, false, false},
	}, Blue},
	KindJ: {"J", Shape{
		{true, true, true},
		{false, false, true},
	}, Orange},
}

// Kinds returns every piece kind in catalog order.
func Kinds() []Kind {
	return []Kind{KindI, KindT, KindO, KindS, KindZ, KindL, KindJ}
}

func (k Kind) Valid() bool {
	return k >= KindI && k <= KindJ
}

// Shape returns the canonical orientation. The result is a fresh copy.
func (k Kind) Shape() Shape {
	return catalog[k].shape.clone()
}

func (k Kind) Color() Color {
	return catalog[k].color
}

func (k Kind) String() string {
	if !k.Valid() {
		return "?"
	}
	return catalog[k].name
}

// Position is the offset of a shape's top-left corner on the board.
type Position struct {
	Row, Col int
}

// Piece is a shape placed on the board. Pieces are values: rotating or
// moving one produces a new Piece.
type Piece struct {
	Kind  Kind
	Shape Shape
	Pos   Position
}

func (p Piece) Color() Color {
	return p.Kind.Color()
}

func (p Piece) clone() Piece {
	p.Shape = p.Shape.clone()
	return p
}

// SpawnPiece places the canonical orientation of k at the top center of a
// board that is cols wide.
func SpawnPiece(k Kind, cols int) Piece {
	shape := k.Shape()
	return Piece{
		Kind:  k,
		Shape: shape,
		Pos:   Position{Row: 0, Col: cols/2 - shape.Cols()/2},
	}
}

// Generator picks the kind of each spawned piece.
type Generator interface {
	Next() Kind
}

// RandomGenerator picks kinds uniformly at random with no memory of earlier
// picks, so repeats are allowed.
type RandomGenerator struct {
	rng *rand.Rand
}

// NewRandomGenerator creates a generator with the given seed. Two
// generators with the same seed produce the same sequence.
func NewRandomGenerator(seed int64) *RandomGenerator {
	return &RandomGenerator{rng: rand.New(rand.NewSource(seed))}
}

// NewTimeSeededGenerator seeds from the wall clock.
func NewTimeSeededGenerator() *RandomGenerator {
	return NewRandomGenerator(time.Now().UnixNano())
}

func (g *RandomGenerator) Next() Kind {
	return Kind(g.rng.Intn(len(catalog)))
}

// SequenceGenerator replays a fixed list of kinds, wrapping at the end.
type SequenceGenerator struct {
	kinds []Kind
	i     int
}

func NewSequenceGenerator(kinds ...Kind) *SequenceGenerator {
	if len(kinds) == 0 {
		kinds = Kinds()
	}
	return &SequenceGenerator{kinds: kinds}
}

func (g *SequenceGenerator) Next() Kind {
	k := g.kinds[g.i%len(g.kinds)]
	g.i++
	return k
}
