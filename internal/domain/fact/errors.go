package fact

import "errors"

// Domain errors
var (
	ErrNonPositiveClose = errors.New("close price must be positive")
	ErrMissingDimension = errors.New("fact references unresolved dimension")
)
