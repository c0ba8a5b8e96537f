package ai

import (
	"github.com/gammazero/deque"

	"github.com/pssnyder/MinesweeperAI/internal/mines"
)

// Rule is a pluggable deduction applied after the core solver reaches
// a fixed point. Rules must be pure: they inspect the remaining
// constraints and knowledge and report cells they can prove, without
// mutating either.
type Rule func(constraints []*Constraint, k *Knowledge) (safe, mined []mines.Point)

// Solver drives constraint deduction to a fixed point. Three rules
// fire until none applies:
//
//   - zero: a constraint with no mines left proves all its cells safe
//   - saturation: a constraint with as many mines as cells proves all
//     its cells mined
//   - subset: when one constraint's cells are a strict subset of
//     another's, their difference implies a new constraint carrying
//     the difference of their mine counts
//
// Each rule application strictly shrinks the number of unresolved
// (constraint, cell) memberships, so termination is guaranteed; an
// explicit budget proportional to that count guards against a
// contradiction escaping the eager checks.
type Solver struct {
	rules []Rule
}

func NewSolver() *Solver {
	return &Solver{}
}

// Register adds a pattern rule to run after the core fixed point.
func (s *Solver) Register(rule Rule) {
	s.rules = append(s.rules, rule)
}

// Solve reduces the given constraints against the knowledge base and
// applies the deduction rules to a fixed point. Newly proven cells are
// recorded in k and returned. Constraints are reduced in place and
// inert ones abandoned; callers rebuild them next turn.
func (s *Solver) Solve(constraints []*Constraint, k *Knowledge) (newSafe, newMined PointSet, err error) {
	newSafe = make(PointSet)
	newMined = make(PointSet)

	active := make([]*Constraint, 0, len(constraints))
	seen := make(map[string]bool)
	queued := make(map[*Constraint]bool)
	var queue deque.Deque[*Constraint]

	push := func(c *Constraint) {
		if !queued[c] {
			queued[c] = true
			queue.PushBack(c)
		}
	}
	for _, c := range constraints {
		active = append(active, c)
		seen[c.signature()] = true
		push(c)
	}

	// Hard iteration cap, proportional to the total number of
	// (constraint, cell) memberships. Reaching it means a deduction
	// cycle that the contradiction checks failed to catch.
	budget := 64
	for _, c := range constraints {
		budget += 8 * c.Cells.Len()
	}

	requeueReferencing := func(p mines.Point) {
		for _, c := range active {
			if c.Cells.Has(p) {
				push(c)
			}
		}
	}

	markSafe := func(p mines.Point, reason Reason) error {
		if k.IsSafe(p) {
			return nil
		}
		if err := k.MarkSafe(p, reason); err != nil {
			return err
		}
		newSafe.Add(p)
		requeueReferencing(p)
		return nil
	}

	markMine := func(p mines.Point, reason Reason) error {
		if k.IsMined(p) {
			return nil
		}
		if err := k.MarkMine(p, reason); err != nil {
			return err
		}
		newMined.Add(p)
		requeueReferencing(p)
		return nil
	}

	// reduce drops cells already resolved elsewhere, decrementing the
	// mine count for cells proven mined.
	reduce := func(c *Constraint) error {
		for p := range c.Cells {
			switch {
			case k.IsSafe(p):
				c.Cells.Remove(p)
			case k.IsMined(p):
				c.Cells.Remove(p)
				c.Mines--
			}
		}
		if !c.valid() {
			return &ContradictionError{
				Cell:   c.Source,
				Detail: "constraint reduced to an impossible mine count",
			}
		}
		return nil
	}

	resolve := func(c *Constraint) (bool, error) {
		reason := ReasonZero
		if c.Mines == c.Cells.Len() {
			reason = ReasonSaturation
		}
		if c.derived {
			reason = ReasonSubset
		}
		switch {
		case c.Mines == 0:
			for _, p := range c.Cells.Sorted() {
				if err := markSafe(p, reason); err != nil {
					return false, err
				}
			}
		case c.Mines == c.Cells.Len():
			for _, p := range c.Cells.Sorted() {
				if err := markMine(p, reason); err != nil {
					return false, err
				}
			}
		default:
			return false, nil
		}
		c.Cells = make(PointSet)
		return true, nil
	}

	iterations := 0
	for {
		for queue.Len() > 0 {
			iterations++
			if iterations > budget {
				return nil, nil, &ContradictionError{
					Detail: "fixed-point iteration budget exhausted",
				}
			}

			c := queue.PopFront()
			delete(queued, c)
			if c.inert() {
				continue
			}
			if err := reduce(c); err != nil {
				return nil, nil, err
			}
			if c.inert() {
				continue
			}
			if done, err := resolve(c); err != nil {
				return nil, nil, err
			} else if done {
				continue
			}

			// Pairwise subset reasoning against every other live
			// constraint.
			for _, other := range active {
				if other == c || other.inert() || c.inert() {
					continue
				}
				if err := reduce(other); err != nil {
					return nil, nil, err
				}
				if other.inert() {
					continue
				}

				var small, big *Constraint
				switch {
				case c.Cells.Len() < other.Cells.Len() && c.Cells.SubsetOf(other.Cells):
					small, big = c, other
				case other.Cells.Len() < c.Cells.Len() && other.Cells.SubsetOf(c.Cells):
					small, big = other, c
				default:
					continue
				}

				implied := &Constraint{
					Cells:   big.Cells.Diff(small.Cells),
					Mines:   big.Mines - small.Mines,
					Source:  big.Source,
					derived: true,
				}
				if !implied.valid() {
					return nil, nil, &ContradictionError{
						Cell:   big.Source,
						Detail: "subset difference implies an impossible mine count",
					}
				}
				if sig := implied.signature(); seen[sig] {
					continue
				} else {
					seen[sig] = true
				}

				active = append(active, implied)
				budget += 8 * implied.Cells.Len()
				if done, err := resolve(implied); err != nil {
					return nil, nil, err
				} else if !done {
					push(implied)
				}
			}
		}

		// Registered pattern rules only run once the core rules have
		// nothing left; any progress re-enters the fixed-point loop.
		progress := false
		for _, rule := range s.rules {
			safe, mined := rule(active, k)
			for _, p := range safe {
				if k.IsSafe(p) {
					continue
				}
				if err := markSafe(p, ReasonPattern); err != nil {
					return nil, nil, err
				}
				progress = true
			}
			for _, p := range mined {
				if k.IsMined(p) {
					continue
				}
				if err := markMine(p, ReasonPattern); err != nil {
					return nil, nil, err
				}
				progress = true
			}
		}
		if !progress {
			break
		}
	}

	return newSafe, newMined, nil
}
