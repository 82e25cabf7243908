package staging

import "errors"

// ErrBadRow marks a row-scoped coercion failure. Rows failing coercion are
// excluded from the batch, never escalated to a run failure.
var ErrBadRow = errors.New("staged row rejected")
