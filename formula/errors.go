package formula

import "fmt"

// SyntaxError reports that formula source text is not well-formed. It is
// the FormulaException of §7: raised from Parse, never from Evaluate.
type SyntaxError struct {
	Message string
	Offset  int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("formula syntax error at offset %d: %s", e.Offset, e.Message)
}

func syntaxErrorf(offset int, format string, args ...any) *SyntaxError {
	return &SyntaxError{Message: fmt.Sprintf(format, args...), Offset: offset}
}
