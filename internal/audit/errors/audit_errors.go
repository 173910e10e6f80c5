package auditerrors

import "errors"

// ErrDuplicateEntry is returned by the repository when an entry for the same request, action and
// resource is already stored.
var ErrDuplicateEntry = errors.New("audit entry already recorded")
