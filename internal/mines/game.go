package mines

import (
	"bytes"
	"encoding/gob"
	"math/rand/v2"
)

// GameState is the authoritative state of one game: the hidden mine
// layout plus the player-visible grid. All cell values the AI may
// observe come from Player; Mines is never exposed through the board
// contract.
type GameState struct {
	GameParams
	Dead   bool
	Won    bool
	Mines  []bool
	Player Grid
}

func DecodeGameState(buf []byte) (*GameState, error) {
	var game GameState
	err := gob.NewDecoder(bytes.NewBuffer(buf)).Decode(&game)
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func (s GameState) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// NewGame places mines randomly and opens the starting cell. The
// starting cell is always kept clear; its neighborhood is also kept
// clear when the mine density allows, so the first move tends to open
// a useful region rather than a lone "8".
func NewGame(params GameParams, start Point, r *rand.Rand) (*GameState, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	s := &GameState{
		GameParams: params,
		Mines:      make([]bool, params.Width*params.Height),
		Player:     make(Grid, params.Width*params.Height),
	}
	for i := range s.Player {
		s.Player[i] = Unknown
	}
	if !s.inBounds(start) {
		return nil, InvalidCellError{start}
	}

	excluded := map[int]bool{start.Index(params.Width): true}
	if params.Width*params.Height-9 >= params.MineCount {
		for _, n := range s.Neighbors(start) {
			excluded[n.Index(params.Width)] = true
		}
	}
	for planted := 0; planted < params.MineCount; {
		i := r.IntN(len(s.Mines))
		if !excluded[i] && !s.Mines[i] {
			s.Mines[i] = true
			planted++
		}
	}

	if ok, err := s.Uncover(start); err != nil {
		return nil, err
	} else if !ok {
		// unreachable: the starting cell is excluded from placement
		return nil, InvalidCellError{start}
	}
	return s, nil
}

func (s GameState) inBounds(p Point) bool {
	return 0 <= p.X && p.X < s.Width && 0 <= p.Y && p.Y < s.Height
}

// Size returns the board dimensions.
func (s GameState) Size() (width, height int) {
	return s.Width, s.Height
}

func (s GameState) TotalMines() int {
	return s.MineCount
}

func (s GameState) TotalCells() int {
	return s.Width * s.Height
}

func (s GameState) IsOver() bool {
	return s.Dead || s.Won
}

func (s GameState) IsWon() bool {
	return s.Won
}

// VisibleValue returns the player-visible state of a cell.
func (s GameState) VisibleValue(p Point) (CellState, error) {
	if !s.inBounds(p) {
		return Unknown, InvalidCellError{p}
	}
	return s.Player[p.Index(s.Width)], nil
}

// Neighbors returns the up-to-8 adjacent cells within bounds.
func (s GameState) Neighbors(p Point) []Point {
	neighbors := make([]Point, 0, 8)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			n := Point{p.X + dx, p.Y + dy}
			if s.inBounds(n) {
				neighbors = append(neighbors, n)
			}
		}
	}
	return neighbors
}

func (s GameState) adjacentMines(p Point) CellState {
	count := CellState(0)
	for _, n := range s.Neighbors(p) {
		if s.Mines[n.Index(s.Width)] {
			count++
		}
	}
	return count
}

// Uncover reveals a cell. It returns false when the cell was a mine
// (the game is lost); zero-valued regions cascade via flood fill.
// Uncovering an already revealed or flagged cell is a no-op.
func (s *GameState) Uncover(p Point) (bool, error) {
	if !s.inBounds(p) {
		return false, InvalidCellError{p}
	}
	if s.IsOver() || s.Player[p.Index(s.Width)] != Unknown {
		return true, nil
	}

	if s.Mines[p.Index(s.Width)] {
		s.Dead = true
		s.Player[p.Index(s.Width)] = ExplodedMine
		return false, nil
	}

	stack := []Point{p}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		i := cur.Index(s.Width)
		if s.Player[i] != Unknown {
			continue
		}
		value := s.adjacentMines(cur)
		s.Player[i] = value
		if value == 0 {
			for _, n := range s.Neighbors(cur) {
				if s.Player[n.Index(s.Width)] == Unknown && !s.Mines[n.Index(s.Width)] {
					stack = append(stack, n)
				}
			}
		}
	}

	s.checkWin()
	return true, nil
}

// Flag toggles a flag marker and reports whether the flag is now set.
// Open cells cannot be flagged.
func (s *GameState) Flag(p Point) (bool, error) {
	if !s.inBounds(p) {
		return false, InvalidCellError{p}
	}
	i := p.Index(s.Width)
	switch s.Player[i] {
	case Unknown:
		s.Player[i] = Flagged
		return true, nil
	case Flagged:
		s.Player[i] = Unknown
		return false, nil
	default:
		return false, nil
	}
}

func (s *GameState) checkWin() {
	covered := 0
	for _, c := range s.Player {
		if c == Unknown || c == Flagged {
			covered++
		}
	}
	if covered == s.MineCount {
		s.Won = true
	}
}

// RevealAll exposes the full board, marking unflagged mines and wrong
// flags. The game counts as lost unless it was already won.
func (s *GameState) RevealAll() {
	if !s.IsOver() {
		s.Dead = true
	}
	for i := range s.Player {
		p := Point{i % s.Width, i / s.Width}
		switch s.Player[i] {
		case Flagged:
			if !s.Mines[i] {
				s.Player[i] = FalselyFlagged
			}
		case Unknown:
			if s.Mines[i] {
				s.Player[i] = UnflaggedMine
			} else {
				s.Player[i] = s.adjacentMines(p)
			}
		}
	}
}

func (s GameState) Render() string {
	return s.Player.Render(s.Width)
}
