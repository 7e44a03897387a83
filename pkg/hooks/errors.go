package hooks

import (
	"github.com/caroline-insar/caroline-download/pkg/errors"
)

// Re-exported so callers of this package need not import pkg/errors.
var (
	ErrHookTypeEmpty = errors.ErrHookTypeEmpty
	ErrHookExecution = errors.ErrHookExecution
	ErrHookScript    = errors.ErrHookScript
	ErrHookLoad      = errors.ErrHookLoad
)

// ErrUnsupportedHookEvent is returned when an unsupported hook event is used.
func ErrUnsupportedHookEvent(event string) error {
	return errors.Wrapf(ErrHookExecution, "unsupported hook event: %s", event)
}
