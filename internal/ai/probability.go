package ai

import "github.com/pssnyder/MinesweeperAI/internal/mines"

// Estimator assigns each cell an approximate probability of holding a
// mine, used to rank guesses once deduction has stalled.
//
// The estimate for a constrained cell is the arithmetic mean of the
// naive per-constraint rates mines/|cells| across every constraint
// referencing it. This deliberately ignores joint dependencies between
// overlapping constraints: exact joint probabilities are exponential
// in the frontier size and out of scope. The approximation is adequate
// for picking the least risky guess, not for exact odds reporting.
//
// An Estimator snapshots one turn; build a fresh one after any board
// or knowledge change rather than invalidating entries piecemeal.
type Estimator struct {
	board       Board
	know        *Knowledge
	constraints []*Constraint
	cache       map[mines.Point]float64
}

func NewEstimator(b Board, k *Knowledge, constraints []*Constraint) *Estimator {
	return &Estimator{
		board:       b,
		know:        k,
		constraints: constraints,
		cache:       make(map[mines.Point]float64),
	}
}

// Estimate returns the mine probability of a cell, always in [0, 1].
func (e *Estimator) Estimate(p mines.Point) float64 {
	if e.know.IsSafe(p) {
		return 0.0
	}
	if e.know.IsMined(p) || e.know.IsFlagged(p) {
		return 1.0
	}
	if cached, ok := e.cache[p]; ok {
		return cached
	}

	total, count := 0.0, 0
	for _, c := range e.constraints {
		if c.inert() || !c.Cells.Has(p) {
			continue
		}
		total += float64(c.Mines) / float64(c.Cells.Len())
		count++
	}

	var estimate float64
	if count > 0 {
		estimate = total / float64(count)
	} else {
		estimate = e.globalDensity()
	}
	estimate = clamp01(estimate)
	e.cache[p] = estimate
	return estimate
}

// globalDensity estimates the chance that an arbitrary covered,
// unconstrained cell is a mine: remaining mines over remaining covered
// cells.
func (e *Estimator) globalDensity() float64 {
	unknown := e.board.TotalCells() - e.know.UncoveredCount() - e.know.FlagCount()
	if unknown <= 0 {
		return 0.0
	}
	remaining := e.board.TotalMines() - e.know.FlagCount()
	return clamp01(float64(remaining) / float64(unknown))
}

// Best returns the minimum-probability cell among candidates, with
// ties broken by row-major order.
func (e *Estimator) Best(candidates PointSet) (mines.Point, float64, bool) {
	var (
		best     mines.Point
		bestProb float64
		found    bool
	)
	for _, p := range candidates.Sorted() {
		prob := e.Estimate(p)
		if !found || prob < bestProb {
			best, bestProb, found = p, prob, true
		}
	}
	return best, bestProb, found
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
