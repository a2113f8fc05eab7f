package service

import (
	"errors"
	"fmt"

	"github.com/mpoulsen/strata/internal/repository"
)

var (
	// ErrNotFound covers a missing, inactive, or out-of-scope project, item,
	// parent, or item type.
	ErrNotFound = errors.New("not found")
	// ErrForbidden means the caller's organization does not own the
	// referenced project or item.
	ErrForbidden = errors.New("forbidden")
)

// ValidationError is a caller-correctable structural violation, such as a
// cyclic move or an import file without hierarchy columns.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// notFoundf wraps ErrNotFound with context about what was missing.
func notFoundf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotFound)
}

// asServiceErr converts repository sentinel errors to the service taxonomy,
// leaving store failures wrapped as-is.
func asServiceErr(err error, what string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return notFoundf("%s", what)
	}
	return err
}
