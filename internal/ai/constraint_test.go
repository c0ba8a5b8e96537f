package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pssnyder/MinesweeperAI/internal/mines"
)

func TestBuildConstraintsFromNumberedCells(t *testing.T) {
	// |1|?|
	// |?|?|   mine somewhere among the three covered cells
	b := newBoard(mines.GameParams{Width: 2, Height: 2, MineCount: 1}, pt(1, 1))
	b.Player[pt(0, 0).Index(2)] = 1

	k := NewKnowledge()
	require.NoError(t, k.Refresh(b))

	constraints, err := BuildConstraints(b, k)
	require.NoError(t, err)
	require.Len(t, constraints, 1)

	c := constraints[0]
	assert.Equal(t, pt(0, 0), c.Source)
	assert.Equal(t, 1, c.Mines)
	assert.ElementsMatch(t,
		[]mines.Point{pt(1, 0), pt(0, 1), pt(1, 1)},
		c.Cells.Sorted(),
	)
}

func TestBuildConstraintsDiscountsFlags(t *testing.T) {
	b := newBoard(mines.GameParams{Width: 3, Height: 1, MineCount: 1}, pt(1, 0))
	b.Player[pt(0, 0).Index(3)] = 1
	_, err := b.Flag(pt(1, 0))
	require.NoError(t, err)

	k := NewKnowledge()
	require.NoError(t, k.Refresh(b))

	// the flag fully accounts for the "1": no constraint remains
	constraints, err := BuildConstraints(b, k)
	require.NoError(t, err)
	assert.Empty(t, constraints)
}

func TestBuildConstraintsSkipsZeroCells(t *testing.T) {
	b := newBoard(mines.GameParams{Width: 3, Height: 3, MineCount: 1}, pt(2, 2))
	_, err := b.Uncover(pt(0, 0))
	require.NoError(t, err)

	k := NewKnowledge()
	require.NoError(t, k.Refresh(b))

	constraints, err := BuildConstraints(b, k)
	require.NoError(t, err)
	// only the three "1" cells around the corner mine contribute
	require.Len(t, constraints, 3)
	for _, c := range constraints {
		assert.Equal(t, 1, c.Mines)
		assert.True(t, c.Cells.Has(pt(2, 2)))
		assert.Equal(t, 1, c.Cells.Len())
	}
}

func TestBuildConstraintsRowMajorOrder(t *testing.T) {
	b := newBoard(mines.GameParams{Width: 3, Height: 3, MineCount: 1}, pt(2, 2))
	_, err := b.Uncover(pt(0, 0))
	require.NoError(t, err)

	k := NewKnowledge()
	require.NoError(t, k.Refresh(b))

	constraints, err := BuildConstraints(b, k)
	require.NoError(t, err)
	require.Len(t, constraints, 3)
	assert.Equal(t, pt(1, 1), constraints[0].Source)
	assert.Equal(t, pt(2, 1), constraints[1].Source)
	assert.Equal(t, pt(1, 2), constraints[2].Source)
}

func TestBuildConstraintsDetectsOverflagging(t *testing.T) {
	// a "1" with two flagged neighbors and covered cells left cannot
	// be satisfied
	b2 := newBoard(mines.GameParams{Width: 3, Height: 2, MineCount: 1}, pt(1, 1))
	b2.Player[pt(1, 0).Index(3)] = 1
	_, err := b2.Flag(pt(0, 0))
	require.NoError(t, err)
	_, err = b2.Flag(pt(2, 0))
	require.NoError(t, err)

	k := NewKnowledge()
	require.NoError(t, k.Refresh(b2))

	_, err = BuildConstraints(b2, k)
	var ce *ContradictionError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, pt(1, 0), ce.Cell)
}

func TestConstraintSignatureCanonical(t *testing.T) {
	a := constraint(1, pt(0, 0), pt(1, 0))
	b := constraint(1, pt(1, 0), pt(0, 0))
	c := constraint(2, pt(0, 0), pt(1, 0))

	assert.Equal(t, a.signature(), b.signature())
	assert.NotEqual(t, a.signature(), c.signature())
}

func TestConstraintString(t *testing.T) {
	c := constraint(1, pt(0, 0), pt(1, 0))
	assert.Equal(t, "1 mine(s) in {(0, 0) (1, 0)} from (0, 0)", c.String())
}
