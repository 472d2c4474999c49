package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogHasSevenKinds(t *testing.T) {
	kinds := Kinds()
	require.Len(t, kinds, 7)

	colors := make(map[Color]Kind)
	for _, k := range kinds {
		assert.True(t, k.Valid())
		assert.NotZero(t, k.Color(), "kind %s", k)
		if other, dup := colors[k.Color()]; dup {
			t.Errorf("kinds %s and %s share color %s", k, other, k.Color())
		}
		colors[k.Color()] = k
	}
}

func TestCanonicalShapes(t *testing.T) {
	assert.True(t, KindO.Shape().Equal(Shape{{true, true}, {true, true}}))
	assert.True(t, KindI.Shape().Equal(Shape{{true, true, true, true}}))
	assert.True(t, KindT.Shape().Equal(Shape{{true, true, true}, {false, true, false}}))

	for _, k := range Kinds() {
		assert.Len(t, k.Shape().Filled(), 4, "kind %s", k)
	}
}

func TestKindShapeReturnsCopy(t *testing.T) {
	s := KindO.Shape()
	s[0][0] = false

	assert.True(t, KindO.Shape()[0][0], "catalog entry was modified through a returned shape")
}

func TestRotateClockwise(t *testing.T) {
	rotated := KindT.Shape().Rotate()

	want := Shape{
		{false, true},
		{true, true},
		{false, true},
	}
	assert.True(t, rotated.Equal(want), "got %v", rotated)
	assert.Equal(t, 3, rotated.Rows())
	assert.Equal(t, 2, rotated.Cols())
}

func TestRotateDoesNotModifyInput(t *testing.T) {
	orig := KindL.Shape()
	before := orig.clone()

	orig.Rotate()

	assert.True(t, orig.Equal(before))
}

func TestRotateFourTimesIsIdentity(t *testing.T) {
	for _, k := range Kinds() {
		t.Run(k.String(), func(t *testing.T) {
			s := k.Shape()
			r := s
			for i := 0; i < 4; i++ {
				r = r.Rotate()
			}
			assert.True(t, s.Equal(r))
		})
	}
}

func TestSpawnPosition(t *testing.T) {
	tests := []struct {
		kind Kind
		col  int
	}{
		{KindI, 3},
		{KindO, 4},
		{KindT, 4},
		{KindS, 4},
		{KindZ, 4},
		{KindL, 4},
		{KindJ, 4},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			p := SpawnPiece(tt.kind, DefaultCols)
			assert.Equal(t, Position{Row: 0, Col: tt.col}, p.Pos)
			assert.Equal(t, tt.kind.Color(), p.Color())
		})
	}
}

func TestRandomGeneratorIsSeeded(t *testing.T) {
	a := NewRandomGenerator(42)
	b := NewRandomGenerator(42)

	seen := make(map[Kind]bool)
	for i := 0; i < 500; i++ {
		ka, kb := a.Next(), b.Next()
		require.Equal(t, ka, kb)
		require.True(t, ka.Valid())
		seen[ka] = true
	}
	assert.Len(t, seen, 7)
}

func TestSequenceGeneratorWraps(t *testing.T) {
	g := NewSequenceGenerator(KindO, KindI)

	got := []Kind{g.Next(), g.Next(), g.Next()}

	assert.Equal(t, []Kind{KindO, KindI, KindO}, got)
}
