package mines

import "fmt"

// InvalidCellError reports an operation on a cell outside board bounds.
// The AI never constructs such requests; this only arises from driver
// misuse of the board contract.
type InvalidCellError struct {
	Cell Point
}

func (e InvalidCellError) Error() string {
	return fmt.Sprintf("cell %s is out of bounds", e.Cell)
}
