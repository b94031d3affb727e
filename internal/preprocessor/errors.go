package preprocessor

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Sentinel errors for the failure classes expansion can hit. Callers match
// them with errors.Is; the structured types below carry diagnostics and are
// reachable via errors.As.
var (
	// ErrFileNotFound indicates a resolved include target that does not
	// exist, is not a regular file, or escapes the base directory sandbox.
	ErrFileNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates an include target that exists but is
	// not readable by the current process.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrCircularDependency indicates an include target that is already on
	// the active include chain.
	ErrCircularDependency = errors.New("circular dependency detected")

	// ErrMaxDepthExceeded indicates an include that would nest deeper than
	// the configured maximum depth.
	ErrMaxDepthExceeded = errors.New("maximum include depth exceeded")
)

// CircularDependencyError reports an include of a file that is already being
// expanded. Chain holds the full cycle, outermost file first, ending with the
// repeated path.
type CircularDependencyError struct {
	Path  string
	Chain []string
}

// Error implements the error interface for CircularDependencyError.
func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("circular dependency detected: %s (include chain: %s)",
		e.Path, strings.Join(e.Chain, " -> "))
}

// Unwrap lets errors.Is match against ErrCircularDependency.
func (e *CircularDependencyError) Unwrap() error {
	return ErrCircularDependency
}

// MaxDepthError reports an include that would push the include stack past
// the configured limit.
type MaxDepthError struct {
	Path     string
	MaxDepth int
}

// Error implements the error interface for MaxDepthError.
func (e *MaxDepthError) Error() string {
	return fmt.Sprintf("maximum include depth (%d) exceeded at: %s", e.MaxDepth, e.Path)
}

// Unwrap lets errors.Is match against ErrMaxDepthExceeded.
func (e *MaxDepthError) Unwrap() error {
	return ErrMaxDepthExceeded
}

// classifyPathError maps a filesystem error for path onto the preprocessor
// taxonomy. Not-found and permission failures collapse to their sentinels;
// anything else stays wrapped so the underlying os error remains inspectable.
func classifyPathError(path string, err error) error {
	switch {
	case os.IsNotExist(err):
		return fmt.Errorf("%w: %s", ErrFileNotFound, path)
	case os.IsPermission(err):
		return fmt.Errorf("%w: %s", ErrPermissionDenied, path)
	default:
		return fmt.Errorf("%s: %w", path, err)
	}
}
