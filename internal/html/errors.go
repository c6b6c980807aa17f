package html

import "fmt"

// InvariantError is the panic value raised when the tokenizer's internal
// bookkeeping is misused. It signals a defect in the tokenizer itself and is
// never produced by malformed input.
type InvariantError struct {
	Op     string
	Reason string
}

// Error returns the formatted invariant violation.
func (e *InvariantError) Error() string {
	return fmt.Sprintf("html: invariant violated in %s: %s", e.Op, e.Reason)
}

func invariant(op, reason string) {
	panic(&InvariantError{Op: op, Reason: reason})
}
