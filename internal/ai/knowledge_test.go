package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pssnyder/MinesweeperAI/internal/mines"
)

// newBoard builds a game with a fixed mine layout and a fully covered
// player grid, bypassing random placement.
func newBoard(params mines.GameParams, minePoints ...mines.Point) *mines.GameState {
	s := &mines.GameState{
		GameParams: params,
		Mines:      make([]bool, params.Width*params.Height),
		Player:     make(mines.Grid, params.Width*params.Height),
	}
	for i := range s.Player {
		s.Player[i] = mines.Unknown
	}
	for _, p := range minePoints {
		s.Mines[p.Index(params.Width)] = true
	}
	return s
}

func TestRefreshObservesBoard(t *testing.T) {
	b := newBoard(mines.GameParams{Width: 3, Height: 3, MineCount: 1}, mines.Point{X: 2, Y: 2})
	_, err := b.Uncover(mines.Point{X: 0, Y: 0})
	require.NoError(t, err)
	_, err = b.Flag(mines.Point{X: 2, Y: 2})
	require.NoError(t, err)

	k := NewKnowledge()
	require.NoError(t, k.Refresh(b))

	assert.Equal(t, 8, k.UncoveredCount())
	assert.Equal(t, 1, k.FlagCount())
	assert.True(t, k.IsFlagged(mines.Point{X: 2, Y: 2}))
	assert.True(t, k.IsSafe(mines.Point{X: 0, Y: 0}), "open cells are proven safe")

	value, ok := k.ValueAt(mines.Point{X: 1, Y: 1})
	assert.True(t, ok)
	assert.Equal(t, mines.CellState(1), value)
}

func TestRefreshIsIdempotent(t *testing.T) {
	b := newBoard(mines.GameParams{Width: 3, Height: 3, MineCount: 1}, mines.Point{X: 2, Y: 2})
	_, err := b.Uncover(mines.Point{X: 0, Y: 0})
	require.NoError(t, err)

	k := NewKnowledge()
	require.NoError(t, k.Refresh(b))
	uncovered, flags := k.UncoveredCount(), k.FlagCount()

	require.NoError(t, k.Refresh(b))
	assert.Equal(t, uncovered, k.UncoveredCount())
	assert.Equal(t, flags, k.FlagCount())
}

func TestRefreshDropsRemovedFlags(t *testing.T) {
	b := newBoard(mines.GameParams{Width: 2, Height: 2, MineCount: 1}, mines.Point{X: 1, Y: 1})
	_, err := b.Flag(mines.Point{X: 0, Y: 0})
	require.NoError(t, err)

	k := NewKnowledge()
	require.NoError(t, k.Refresh(b))
	assert.True(t, k.IsFlagged(mines.Point{X: 0, Y: 0}))

	_, err = b.Flag(mines.Point{X: 0, Y: 0})
	require.NoError(t, err)
	require.NoError(t, k.Refresh(b))
	assert.False(t, k.IsFlagged(mines.Point{X: 0, Y: 0}))
}

func TestMarkSafeThenMineContradicts(t *testing.T) {
	k := NewKnowledge()
	p := mines.Point{X: 1, Y: 1}

	require.NoError(t, k.MarkSafe(p, ReasonZero))
	err := k.MarkMine(p, ReasonSaturation)

	var ce *ContradictionError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, p, ce.Cell)
	assert.Equal(t, 1, k.Contradictions())
	assert.True(t, k.IsSafe(p))
	assert.False(t, k.IsMined(p), "sets stay mutually exclusive")
}

func TestRefreshContradictsProvenMine(t *testing.T) {
	b := newBoard(mines.GameParams{Width: 2, Height: 1, MineCount: 0})
	_, err := b.Uncover(mines.Point{X: 0, Y: 0})
	require.NoError(t, err)

	k := NewKnowledge()
	require.NoError(t, k.MarkMine(mines.Point{X: 0, Y: 0}, ReasonSaturation))

	var ce *ContradictionError
	require.ErrorAs(t, k.Refresh(b), &ce)
	assert.Equal(t, mines.Point{X: 0, Y: 0}, ce.Cell)
}

func TestPendingSafeExcludesUncovered(t *testing.T) {
	b := newBoard(mines.GameParams{Width: 3, Height: 1, MineCount: 1}, mines.Point{X: 1, Y: 0})
	_, err := b.Uncover(mines.Point{X: 0, Y: 0})
	require.NoError(t, err)

	k := NewKnowledge()
	require.NoError(t, k.Refresh(b))
	require.NoError(t, k.MarkSafe(mines.Point{X: 2, Y: 0}, ReasonSubset))

	pending := k.PendingSafe()
	assert.Equal(t, 1, pending.Len())
	assert.True(t, pending.Has(mines.Point{X: 2, Y: 0}))
}

func TestUnflaggedMines(t *testing.T) {
	b := newBoard(mines.GameParams{Width: 2, Height: 2, MineCount: 2},
		mines.Point{X: 0, Y: 0}, mines.Point{X: 1, Y: 1})
	_, err := b.Flag(mines.Point{X: 0, Y: 0})
	require.NoError(t, err)

	k := NewKnowledge()
	require.NoError(t, k.Refresh(b))
	require.NoError(t, k.MarkMine(mines.Point{X: 0, Y: 0}, ReasonSaturation))
	require.NoError(t, k.MarkMine(mines.Point{X: 1, Y: 1}, ReasonSaturation))

	unflagged := k.UnflaggedMines()
	assert.Equal(t, 1, unflagged.Len())
	assert.True(t, unflagged.Has(mines.Point{X: 1, Y: 1}))
}
