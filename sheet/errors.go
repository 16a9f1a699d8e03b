package sheet

import "fmt"

// InvalidPositionError is raised when a public operation receives a
// Position failing validity. State is left unchanged.
type InvalidPositionError struct {
	Pos string
}

func (e *InvalidPositionError) Error() string {
	return fmt.Sprintf("invalid position: %s", e.Pos)
}

// CircularDependencyError is raised when a proposed formula would
// introduce a cycle in the reference graph. The cell is left unchanged.
type CircularDependencyError struct {
	Pos string
}

func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("circular dependency introduced at %s", e.Pos)
}
