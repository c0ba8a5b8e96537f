package ai

import "github.com/pssnyder/MinesweeperAI/internal/mines"

// Board is the game collaborator the AI plays against. The AI only
// ever observes player-visible state; the board remains authoritative
// on what is actually uncovered, flagged, or mined.
//
// *mines.GameState satisfies this interface.
type Board interface {
	Size() (width, height int)
	TotalMines() int
	TotalCells() int

	// VisibleValue returns the player-visible state of a cell:
	// mines.Unknown, mines.Flagged, or an open value in [0, 8].
	VisibleValue(p mines.Point) (mines.CellState, error)

	// Neighbors returns the up-to-8 adjacent cells within bounds.
	Neighbors(p mines.Point) []mines.Point

	// Uncover reveals a cell and returns false when it was a mine.
	// Cascade reveals of zero regions are owned by the board.
	Uncover(p mines.Point) (bool, error)

	// Flag toggles a flag marker and reports whether it is now set.
	Flag(p mines.Point) (bool, error)

	IsOver() bool
	IsWon() bool
}
