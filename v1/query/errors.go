package query

import "errors"

// ErrNoSearchableFields is returned when a full-text query is compiled but no
// attribute in the registry is full-text eligible. Compilation aborts before
// any network call.
var ErrNoSearchableFields = errors.New("no full-text eligible attributes configured or discovered")
