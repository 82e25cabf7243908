package dimension

import "errors"

// Domain errors
var (
	ErrInvalidHorizon  = errors.New("calendar end date before start date")
	ErrCatalogNotFound = errors.New("catalog file not found")
)
