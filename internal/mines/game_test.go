package mines

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testGame builds a game with a fixed mine layout and a fully covered
// player grid.
func testGame(params GameParams, minePoints ...Point) *GameState {
	s := &GameState{
		GameParams: params,
		Mines:      make([]bool, params.Width*params.Height),
		Player:     make(Grid, params.Width*params.Height),
	}
	for i := range s.Player {
		s.Player[i] = Unknown
	}
	for _, p := range minePoints {
		s.Mines[p.Index(params.Width)] = true
	}
	return s
}

func TestGameParamsValidate(t *testing.T) {
	tests := []struct {
		name   string
		params GameParams
		ok     bool
	}{
		{"beginner", GameParams{9, 9, 10}, true},
		{"no mines", GameParams{3, 3, 0}, true},
		{"zero width", GameParams{0, 3, 1}, false},
		{"negative mines", GameParams{3, 3, -1}, false},
		{"too many mines", GameParams{3, 3, 9}, false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.params.Validate()
			if test.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestParseDifficulty(t *testing.T) {
	params, err := ParseDifficulty("expert")
	require.NoError(t, err)
	assert.Equal(t, GameParams{Width: 30, Height: 16, MineCount: 99}, params)

	_, err = ParseDifficulty("nightmare")
	assert.Error(t, err)
}

func TestNewGameKeepsStartClear(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	start := Point{4, 4}
	s, err := NewGame(GameParams{9, 9, 10}, start, r)
	require.NoError(t, err)

	planted := 0
	for _, mined := range s.Mines {
		if mined {
			planted++
		}
	}
	assert.Equal(t, 10, planted)
	assert.False(t, s.Mines[start.Index(s.Width)])

	value, err := s.VisibleValue(start)
	require.NoError(t, err)
	assert.True(t, value.Open())
	// low density, so the whole neighborhood stays clear
	for _, n := range s.Neighbors(start) {
		assert.False(t, s.Mines[n.Index(s.Width)])
	}
}

func TestFloodFillOpensZeroRegion(t *testing.T) {
	s := testGame(GameParams{3, 3, 1}, Point{2, 2})

	ok, err := s.Uncover(Point{0, 0})
	require.NoError(t, err)
	assert.True(t, ok)

	// every non-mine cell is reachable through the zero region
	expected := Grid{
		0, 0, 0,
		0, 1, 1,
		0, 1, Unknown,
	}
	assert.Equal(t, expected, s.Player)
	assert.True(t, s.Won, "all safe cells open should win the game")
	assert.True(t, s.IsOver())
}

func TestUncoverMineLosesGame(t *testing.T) {
	s := testGame(GameParams{2, 1, 1}, Point{1, 0})

	ok, err := s.Uncover(Point{1, 0})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, s.Dead)
	assert.False(t, s.IsWon())

	value, err := s.VisibleValue(Point{1, 0})
	require.NoError(t, err)
	assert.Equal(t, ExplodedMine, value)
}

func TestFlagToggle(t *testing.T) {
	s := testGame(GameParams{2, 2, 1}, Point{1, 1})

	set, err := s.Flag(Point{0, 0})
	require.NoError(t, err)
	assert.True(t, set)

	set, err = s.Flag(Point{0, 0})
	require.NoError(t, err)
	assert.False(t, set)

	_, err = s.Uncover(Point{0, 0})
	require.NoError(t, err)
	set, err = s.Flag(Point{0, 0})
	require.NoError(t, err)
	assert.False(t, set, "open cells cannot be flagged")
}

func TestUncoverFlaggedCellIsNoop(t *testing.T) {
	s := testGame(GameParams{2, 1, 1}, Point{1, 0})

	_, err := s.Flag(Point{1, 0})
	require.NoError(t, err)

	ok, err := s.Uncover(Point{1, 0})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, s.Dead)
}

func TestOutOfBoundsCell(t *testing.T) {
	s := testGame(GameParams{2, 2, 1}, Point{1, 1})

	_, err := s.Uncover(Point{-1, 0})
	var ice InvalidCellError
	require.ErrorAs(t, err, &ice)
	assert.Equal(t, Point{-1, 0}, ice.Cell)

	_, err = s.VisibleValue(Point{0, 5})
	assert.ErrorAs(t, err, &ice)
}

func TestGameStateRoundTrip(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	s, err := NewGame(GameParams{9, 9, 10}, Point{0, 0}, r)
	require.NoError(t, err)

	buf, err := s.Bytes()
	require.NoError(t, err)
	decoded, err := DecodeGameState(buf)
	require.NoError(t, err)
	assert.Equal(t, s, decoded)
}

func TestRevealAll(t *testing.T) {
	s := testGame(GameParams{2, 2, 1}, Point{1, 1})

	_, err := s.Flag(Point{0, 0}) // wrong flag
	require.NoError(t, err)
	s.RevealAll()

	assert.True(t, s.Dead)
	v, _ := s.VisibleValue(Point{0, 0})
	assert.Equal(t, FalselyFlagged, v)
	v, _ = s.VisibleValue(Point{1, 1})
	assert.Equal(t, UnflaggedMine, v)
	v, _ = s.VisibleValue(Point{1, 0})
	assert.Equal(t, CellState(1), v)
}

func TestNewGameRejectsBadParams(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	_, err := NewGame(GameParams{0, 0, 0}, Point{0, 0}, r)
	assert.Error(t, err)

	_, err = NewGame(GameParams{3, 3, 1}, Point{5, 5}, r)
	var ice InvalidCellError
	assert.True(t, errors.As(err, &ice))
}
