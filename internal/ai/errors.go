package ai

import (
	"errors"
	"fmt"

	"github.com/pssnyder/MinesweeperAI/internal/mines"
)

// ErrNoMoveAvailable signals that the board holds no cell left to act
// on. It is a normal terminal condition, not a failure: the caller
// should treat it as "the game should already be over".
var ErrNoMoveAvailable = errors.New("no move available")

// ContradictionError reports a knowledge state that proves a cell both
// safe and mined, or a constraint whose mine count left the valid
// range. It is fatal to the game instance: it indicates a board/AI
// desynchronization or a solver bug, never a normal game outcome.
type ContradictionError struct {
	Cell   mines.Point
	Detail string
}

func (e *ContradictionError) Error() string {
	return fmt.Sprintf("contradiction at %s: %s", e.Cell, e.Detail)
}
