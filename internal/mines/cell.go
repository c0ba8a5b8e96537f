package mines

import (
	"strconv"
	"strings"
)

type CellState int8

const (
	Unknown CellState = -2
	Flagged CellState = -1
	/*
	 * Values 0 to 8 mean the cell is open and carries a surrounding
	 * mine count. The values below only ever appear after the game has
	 * ended and the full board is revealed.
	 */
	ExplodedMine   CellState = 64
	UnflaggedMine  CellState = 65
	FalselyFlagged CellState = 66
)

// Open reports whether the cell is uncovered and carries a mine count.
func (s CellState) Open() bool {
	return 0 <= s && s <= 8
}

func (s CellState) String() string {
	switch {
	case s == Unknown:
		return "."
	case s == Flagged:
		return "F"
	case s == ExplodedMine:
		return "X"
	case s == UnflaggedMine:
		return "*"
	case s == FalselyFlagged:
		return "x"
	case s.Open():
		return strconv.Itoa(int(s))
	default:
		return "!"
	}
}

// Grid is the player-visible view of a board, in row-major order.
type Grid []CellState

func (g Grid) Render(width int) string {
	var b strings.Builder
	for y := 0; y < len(g)/width; y++ {
		for x := 0; x < width; x++ {
			b.WriteString(g[y*width+x].String())
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}
	return b.String()
}
