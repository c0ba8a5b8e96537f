package ai

import (
	"fmt"
	"strings"

	"github.com/pssnyder/MinesweeperAI/internal/mines"
)

// Constraint is the requirement derived from one open numbered cell:
// exactly Mines of the cells in Cells are mines. Constraints are
// rebuilt from the board's visible state every turn and reduced in
// place during a single solving pass.
type Constraint struct {
	Cells  PointSet
	Mines  int
	Source mines.Point

	// derived marks constraints implied by subset reasoning rather
	// than read directly off a numbered cell.
	derived bool
}

func (c *Constraint) valid() bool {
	return 0 <= c.Mines && c.Mines <= c.Cells.Len()
}

// inert reports whether the constraint has no cells left and can be
// discarded.
func (c *Constraint) inert() bool {
	return c.Cells.Len() == 0
}

// signature is a canonical key used to deduplicate derived
// constraints within one solving pass.
func (c *Constraint) signature() string {
	var b strings.Builder
	for _, p := range c.Cells.Sorted() {
		fmt.Fprintf(&b, "%d.%d;", p.X, p.Y)
	}
	fmt.Fprintf(&b, "=%d", c.Mines)
	return b.String()
}

func (c *Constraint) String() string {
	cells := make([]string, 0, c.Cells.Len())
	for _, p := range c.Cells.Sorted() {
		cells = append(cells, p.String())
	}
	return fmt.Sprintf(
		"%d mine(s) in {%s} from %s",
		c.Mines, strings.Join(cells, " "), c.Source,
	)
}

// BuildConstraints derives one constraint per open numbered cell that
// still has unknown neighbors. For a cell showing n with f flagged
// neighbors, the constraint requires n-f mines among the remaining
// covered unflagged neighbors. Cells showing 0 contribute nothing:
// the board's flood fill has already resolved their neighborhood.
//
// The result is ordered by the source cell's row-major index so runs
// are reproducible.
func BuildConstraints(b Board, k *Knowledge) ([]*Constraint, error) {
	width, height := b.Size()
	constraints := make([]*Constraint, 0)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			source := mines.Point{X: x, Y: y}
			value, ok := k.ValueAt(source)
			if !ok || value == 0 {
				continue
			}

			cells := make(PointSet)
			flagged := 0
			for _, n := range b.Neighbors(source) {
				switch {
				case k.IsFlagged(n):
					flagged++
				case !k.IsUncovered(n):
					cells.Add(n)
				}
			}
			if cells.Len() == 0 {
				continue
			}

			c := &Constraint{
				Cells:  cells,
				Mines:  int(value) - flagged,
				Source: source,
			}
			if !c.valid() {
				return nil, &ContradictionError{
					Cell: source,
					Detail: fmt.Sprintf(
						"cell shows %d but %d neighbors are flagged with %d covered left",
						value, flagged, cells.Len(),
					),
				}
			}
			constraints = append(constraints, c)
		}
	}
	return constraints, nil
}
