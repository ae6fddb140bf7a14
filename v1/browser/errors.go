package browser

import "errors"

var (
	// ErrFetchInFlight is returned when a page load is requested while a
	// previous one is still running. The store never runs two backend
	// fetches concurrently.
	ErrFetchInFlight = errors.New("browser: fetch already in flight")

	// ErrNoMutator is returned when a destructive operation is requested
	// on a store wired without a mutation path.
	ErrNoMutator = errors.New("browser: no mutator configured")

	// ErrUnknownPredicate is returned when an update or removal names a
	// predicate ID that is not active.
	ErrUnknownPredicate = errors.New("browser: unknown predicate")
)
