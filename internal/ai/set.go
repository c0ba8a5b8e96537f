package ai

import (
	"slices"

	"github.com/pssnyder/MinesweeperAI/internal/mines"
)

type void struct{}

// PointSet is an unordered set of cells.
type PointSet map[mines.Point]void

func NewPointSet(points ...mines.Point) PointSet {
	s := make(PointSet, len(points))
	for _, p := range points {
		s.Add(p)
	}
	return s
}

func (s PointSet) Add(p mines.Point) {
	s[p] = void{}
}

func (s PointSet) Remove(p mines.Point) {
	delete(s, p)
}

func (s PointSet) Has(p mines.Point) bool {
	_, ok := s[p]
	return ok
}

func (s PointSet) Len() int {
	return len(s)
}

func (s PointSet) Clone() PointSet {
	clone := make(PointSet, len(s))
	for p := range s {
		clone.Add(p)
	}
	return clone
}

// SubsetOf reports whether every cell of s is in other.
func (s PointSet) SubsetOf(other PointSet) bool {
	if len(s) > len(other) {
		return false
	}
	for p := range s {
		if !other.Has(p) {
			return false
		}
	}
	return true
}

// Diff returns the cells of s not present in other.
func (s PointSet) Diff(other PointSet) PointSet {
	diff := make(PointSet)
	for p := range s {
		if !other.Has(p) {
			diff.Add(p)
		}
	}
	return diff
}

// Sorted returns the cells in row-major order, the deterministic
// tie-break order used across the AI.
func (s PointSet) Sorted() []mines.Point {
	points := make([]mines.Point, 0, len(s))
	for p := range s {
		points = append(points, p)
	}
	slices.SortFunc(points, mines.ComparePoints)
	return points
}

// Min returns the row-major smallest cell, if any.
func (s PointSet) Min() (mines.Point, bool) {
	var (
		best  mines.Point
		found bool
	)
	for p := range s {
		if !found || mines.ComparePoints(p, best) < 0 {
			best, found = p, true
		}
	}
	return best, found
}
