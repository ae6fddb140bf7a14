package executor

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"
)

// Standardized executor errors. Backend adapters funnel their native
// failures through Classify so that the orchestrator and callers can
// branch on these without knowing which backend is wired.
var (
	// ErrNotInitialized is returned when a query runs before the executor
	// is connected and ready.
	ErrNotInitialized = errors.New("executor not initialized")

	// ErrInvalidQuerySyntax is returned when the backend rejects the
	// compiled query as malformed.
	ErrInvalidQuerySyntax = errors.New("invalid query syntax")

	// ErrUnsupportedQuery is returned when the compiled query uses a
	// feature the wired backend cannot express.
	ErrUnsupportedQuery = errors.New("unsupported query")

	// ErrUnauthorized is returned when the backend rejects the credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when the credentials are valid but lack
	// access to the namespace.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound is returned when the namespace or collection does not
	// exist.
	ErrNotFound = errors.New("not found")

	// ErrTimeout is returned when the backend does not answer in time.
	ErrTimeout = errors.New("timeout")

	// ErrBackend is the catch-all for network and server-side failures
	// that match no more specific class.
	ErrBackend = errors.New("backend error")
)

// classified is the closed set Classify resolves into; an error already in
// the set passes through unchanged.
var classified = []error{
	ErrNotInitialized,
	ErrInvalidQuerySyntax,
	ErrUnsupportedQuery,
	ErrUnauthorized,
	ErrForbidden,
	ErrNotFound,
	ErrTimeout,
	ErrBackend,
}

// Classify converts backend-specific errors into the standardized executor
// errors. It inspects typed network and syscall errors first, then falls
// back to message patterns, and finally wraps anything unrecognized in
// ErrBackend so the original message survives.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	for _, sentinel := range classified {
		if errors.Is(err, sentinel) {
			return err
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrTimeout
	}

	var syscallErr syscall.Errno
	if errors.As(err, &syscallErr) {
		return classifySyscall(syscallErr)
	}

	return classifyByMessage(strings.ToLower(err.Error()), err)
}

func classifySyscall(errno syscall.Errno) error {
	switch errno {
	case syscall.ETIMEDOUT:
		return ErrTimeout
	case syscall.EACCES, syscall.EPERM:
		return ErrForbidden
	default:
		return ErrBackend
	}
}

// classifyByMessage matches common backend failure phrasings. More
// specific patterns come first; the catch-all wraps the original error so
// its message is preserved.
func classifyByMessage(msg string, original error) error {
	switch {
	// Authentication and authorization
	case strings.Contains(msg, "unauthorized"),
		strings.Contains(msg, "unauthenticated"),
		strings.Contains(msg, "invalid api key"),
		strings.Contains(msg, "invalid credentials"),
		strings.Contains(msg, "authentication failed"):
		return ErrUnauthorized
	case strings.Contains(msg, "forbidden"),
		strings.Contains(msg, "permission denied"),
		strings.Contains(msg, "access denied"):
		return ErrForbidden

	// Missing namespace or collection
	case strings.Contains(msg, "not found"),
		strings.Contains(msg, "doesn't exist"),
		strings.Contains(msg, "does not exist"):
		return ErrNotFound

	// Query shape rejected by the backend
	case strings.Contains(msg, "syntax"),
		strings.Contains(msg, "malformed"),
		strings.Contains(msg, "invalid query"),
		strings.Contains(msg, "parse error"),
		strings.Contains(msg, "unable to parse"):
		return ErrInvalidQuerySyntax

	// Timeouts
	case strings.Contains(msg, "timeout"),
		strings.Contains(msg, "timed out"),
		strings.Contains(msg, "deadline exceeded"):
		return ErrTimeout

	default:
		return fmt.Errorf("%w: %v", ErrBackend, original)
	}
}
