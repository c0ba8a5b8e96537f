package ai

import (
	"errors"
	"fmt"
	"hash/maphash"
	"math/rand/v2"

	"github.com/sirupsen/logrus"

	"github.com/pssnyder/MinesweeperAI/internal/mines"
)

var Log = logrus.New()

type Action int

const (
	ActionNone Action = iota
	ActionUncover
	ActionFlag
)

func (a Action) String() string {
	switch a {
	case ActionUncover:
		return "uncover"
	case ActionFlag:
		return "flag"
	default:
		return "none"
	}
}

// Move is the outcome of one turn: what was done, where, and why.
// Survived is false only when an uncover hit a mine — a legitimate
// strategic outcome of a wrong guess, not an error.
type Move struct {
	Action   Action      `json:"action"`
	Cell     mines.Point `json:"cell"`
	Reason   Reason      `json:"reason"`
	Risk     float64     `json:"risk"`
	Survived bool        `json:"survived"`
}

type Statistics struct {
	MovesMade              int `json:"moves_made"`
	FlagsPlaced            int `json:"flags_placed"`
	Guesses                int `json:"guesses"`
	ContradictionsDetected int `json:"contradictions_detected"`
}

// Player owns the belief state for one game and turns it into moves.
// One TakeTurn call runs the full pipeline: refresh knowledge, rebuild
// constraints, solve to a fixed point, then act on the best available
// certainty — flag a proven mine, uncover a proven safe cell, guess
// the least risky frontier cell, or fall back to a uniform random
// pick. Exactly one board mutation happens per turn.
type Player struct {
	board  Board
	know   *Knowledge
	solver *Solver
	rnd    *rand.Rand
	last   *Move
	stats  Statistics
}

func NewPlayer(b Board, r *rand.Rand) *Player {
	if r == nil {
		r = rand.New(rand.NewPCG(
			new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
		))
	}
	return &Player{
		board:  b,
		know:   NewKnowledge(),
		solver: NewSolver(),
		rnd:    r,
	}
}

// Solver exposes the solver for pattern rule registration.
func (p *Player) Solver() *Solver {
	return p.solver
}

// Knowledge exposes the current belief state read-only; drivers use it
// for diagnostics.
func (p *Player) Knowledge() *Knowledge {
	return p.know
}

// TakeTurn performs one full move against the board. It returns
// ErrNoMoveAvailable when no covered cell is left to act on, and a
// ContradictionError when deduction produced an impossible state.
func (p *Player) TakeTurn() (*Move, error) {
	if err := p.know.Refresh(p.board); err != nil {
		return nil, p.fail(err)
	}
	constraints, err := BuildConstraints(p.board, p.know)
	if err != nil {
		return nil, p.fail(err)
	}
	newSafe, newMined, err := p.solver.Solve(constraints, p.know)
	if err != nil {
		return nil, p.fail(err)
	}
	if newSafe.Len() > 0 || newMined.Len() > 0 {
		Log.WithFields(logrus.Fields{
			"safe":  newSafe.Len(),
			"mined": newMined.Len(),
		}).Debug("solver deductions")
	}

	if cell, ok := p.know.UnflaggedMines().Min(); ok {
		if _, err := p.board.Flag(cell); err != nil {
			return nil, err
		}
		p.stats.FlagsPlaced++
		return p.record(&Move{
			Action:   ActionFlag,
			Cell:     cell,
			Reason:   p.know.Reason(cell),
			Risk:     1.0,
			Survived: true,
		}), nil
	}

	if cell, ok := p.know.PendingSafe().Min(); ok {
		survived, err := p.board.Uncover(cell)
		if err != nil {
			return nil, err
		}
		return p.record(&Move{
			Action:   ActionUncover,
			Cell:     cell,
			Reason:   p.know.Reason(cell),
			Survived: survived,
		}), nil
	}

	frontier := Frontier(constraints)
	for cell := range frontier {
		if p.know.IsSafe(cell) || p.know.IsMined(cell) {
			frontier.Remove(cell)
		}
	}
	estimator := NewEstimator(p.board, p.know, constraints)

	if cell, risk, ok := estimator.Best(frontier); ok {
		survived, err := p.board.Uncover(cell)
		if err != nil {
			return nil, err
		}
		p.stats.Guesses++
		return p.record(&Move{
			Action:   ActionUncover,
			Cell:     cell,
			Reason:   ReasonProbabilistic,
			Risk:     risk,
			Survived: survived,
		}), nil
	}

	if candidates := p.coveredCells(); len(candidates) > 0 {
		cell := candidates[p.rnd.IntN(len(candidates))]
		risk := estimator.Estimate(cell)
		survived, err := p.board.Uncover(cell)
		if err != nil {
			return nil, err
		}
		p.stats.Guesses++
		return p.record(&Move{
			Action:   ActionUncover,
			Cell:     cell,
			Reason:   ReasonRandom,
			Risk:     risk,
			Survived: survived,
		}), nil
	}

	return nil, ErrNoMoveAvailable
}

// coveredCells lists every cell still showing Unknown, in row-major
// order.
func (p *Player) coveredCells() []mines.Point {
	width, height := p.board.Size()
	cells := make([]mines.Point, 0)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			cell := mines.Point{X: x, Y: y}
			if value, err := p.board.VisibleValue(cell); err == nil && value == mines.Unknown {
				cells = append(cells, cell)
			}
		}
	}
	return cells
}

func (p *Player) record(m *Move) *Move {
	p.last = m
	p.stats.MovesMade++
	Log.WithFields(logrus.Fields{
		"action": m.Action.String(),
		"cell":   m.Cell.String(),
		"reason": string(m.Reason),
		"risk":   m.Risk,
	}).Debug("move")
	return m
}

func (p *Player) fail(err error) error {
	var ce *ContradictionError
	if errors.As(err, &ce) {
		p.stats.ContradictionsDetected++
	}
	return err
}

// ExplainLastMove renders the last move's justification for humans.
func (p *Player) ExplainLastMove() string {
	if p.last == nil {
		return "no moves made yet"
	}
	m := p.last
	switch m.Action {
	case ActionFlag:
		return fmt.Sprintf("flagged %s - proven to be a mine (%s)", m.Cell, m.Reason)
	case ActionUncover:
		switch m.Reason {
		case ReasonProbabilistic:
			return fmt.Sprintf(
				"uncovered %s - lowest estimated mine probability (%.1f%%)",
				m.Cell, m.Risk*100,
			)
		case ReasonRandom:
			return fmt.Sprintf("uncovered %s - random choice, no information available", m.Cell)
		default:
			return fmt.Sprintf("uncovered %s - proven safe (%s)", m.Cell, m.Reason)
		}
	}
	return "no move taken"
}

// Reset binds the player to a fresh board and discards all knowledge
// and statistics.
func (p *Player) Reset(b Board) {
	p.board = b
	p.know = NewKnowledge()
	p.last = nil
	p.stats = Statistics{}
}

func (p *Player) Statistics() Statistics {
	return p.stats
}
