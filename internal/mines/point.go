package mines

import "fmt"

// Point identifies a single cell by its column (X) and row (Y). It is a
// value type and is used as a map key throughout the AI.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Index returns the row-major index of p on a board of the given width.
func (p Point) Index(width int) int {
	return p.Y*width + p.X
}

// ComparePoints orders points by row-major index. It is the tie-break
// order used whenever the AI must make an arbitrary but deterministic
// choice between cells.
func ComparePoints(a, b Point) int {
	if a.Y != b.Y {
		return a.Y - b.Y
	}
	return a.X - b.X
}
