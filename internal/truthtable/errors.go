package truthtable

import (
	"errors"
	"fmt"
)

// ErrMalformed is the root of every response shape error.
var ErrMalformed = errors.New("malformed truth table response")

var (
	// ErrMissingOutput means the response has no output column.
	ErrMissingOutput = fmt.Errorf("%w: missing %q column", ErrMalformed, OutputKey)
	// ErrColumnLength means a column's length differs from the output column's.
	ErrColumnLength = fmt.Errorf("%w: column length mismatch", ErrMalformed)
)
