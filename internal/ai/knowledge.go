package ai

import "github.com/pssnyder/MinesweeperAI/internal/mines"

// Reason tags why the AI believes a deduction or move is justified.
type Reason string

const (
	ReasonZero          Reason = "logical-zero"
	ReasonSaturation    Reason = "logical-saturation"
	ReasonSubset        Reason = "subset-deduced"
	ReasonPattern       Reason = "pattern"
	ReasonProbabilistic Reason = "probabilistic"
	ReasonRandom        Reason = "random"
)

// Knowledge is the AI's belief state about the board: which cells are
// observed open or flagged, and which covered cells are proven safe or
// proven mines. Proven-safe and proven-mine sets are mutually
// exclusive at all times; a violation is a ContradictionError.
//
// Knowledge never mutates the board. It lives for one game and is
// replaced wholesale on reset.
type Knowledge struct {
	uncovered      map[mines.Point]mines.CellState
	flags          PointSet
	safe           PointSet
	mined          PointSet
	reasons        map[mines.Point]Reason
	contradictions int
}

func NewKnowledge() *Knowledge {
	return &Knowledge{
		uncovered: make(map[mines.Point]mines.CellState),
		flags:     make(PointSet),
		safe:      make(PointSet),
		mined:     make(PointSet),
		reasons:   make(map[mines.Point]Reason),
	}
}

// Refresh synchronizes the observed state with the board. It is
// idempotent: refreshing twice with no intervening board change is a
// no-op. Open cells are also recorded as safe, since the board has
// proven them mine-free.
func (k *Knowledge) Refresh(b Board) error {
	width, height := b.Size()
	flags := make(PointSet)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			p := mines.Point{X: x, Y: y}
			value, err := b.VisibleValue(p)
			if err != nil {
				return err
			}
			switch {
			case value.Open():
				k.uncovered[p] = value
				if k.mined.Has(p) {
					k.contradictions++
					return &ContradictionError{
						Cell:   p,
						Detail: "board uncovered a cell proven to be a mine",
					}
				}
				k.safe.Add(p)
			case value == mines.Flagged:
				flags.Add(p)
			}
		}
	}
	k.flags = flags
	return nil
}

// MarkSafe records a cell as proven mine-free.
func (k *Knowledge) MarkSafe(p mines.Point, reason Reason) error {
	if k.mined.Has(p) {
		k.contradictions++
		return &ContradictionError{
			Cell:   p,
			Detail: "cell proven safe was already proven to be a mine",
		}
	}
	if !k.safe.Has(p) {
		k.safe.Add(p)
		k.reasons[p] = reason
	}
	return nil
}

// MarkMine records a cell as a proven mine.
func (k *Knowledge) MarkMine(p mines.Point, reason Reason) error {
	if k.safe.Has(p) {
		k.contradictions++
		return &ContradictionError{
			Cell:   p,
			Detail: "cell proven to be a mine was already proven safe",
		}
	}
	if !k.mined.Has(p) {
		k.mined.Add(p)
		k.reasons[p] = reason
	}
	return nil
}

// ValueAt returns the observed open value of a cell.
func (k *Knowledge) ValueAt(p mines.Point) (mines.CellState, bool) {
	value, ok := k.uncovered[p]
	return value, ok
}

func (k *Knowledge) IsUncovered(p mines.Point) bool {
	_, ok := k.uncovered[p]
	return ok
}

func (k *Knowledge) IsFlagged(p mines.Point) bool {
	return k.flags.Has(p)
}

func (k *Knowledge) IsSafe(p mines.Point) bool {
	return k.safe.Has(p)
}

func (k *Knowledge) IsMined(p mines.Point) bool {
	return k.mined.Has(p)
}

// Reason returns the deduction tag recorded when a cell was proven
// safe or mined.
func (k *Knowledge) Reason(p mines.Point) Reason {
	return k.reasons[p]
}

func (k *Knowledge) UncoveredCount() int {
	return len(k.uncovered)
}

func (k *Knowledge) FlagCount() int {
	return k.flags.Len()
}

// UnflaggedMines returns proven mines the board does not show as
// flagged yet.
func (k *Knowledge) UnflaggedMines() PointSet {
	return k.mined.Diff(k.flags)
}

// PendingSafe returns proven-safe cells that are still covered and
// unflagged on the board.
func (k *Knowledge) PendingSafe() PointSet {
	pending := make(PointSet)
	for p := range k.safe {
		if !k.IsUncovered(p) && !k.IsFlagged(p) {
			pending.Add(p)
		}
	}
	return pending
}

func (k *Knowledge) Contradictions() int {
	return k.contradictions
}
