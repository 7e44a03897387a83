package errors

import (
	stderrors "errors"
	"fmt"
)

// Common error types.
var (
	// Product errors.
	ErrInvalidMetadata           = fmt.Errorf("invalid product metadata")
	ErrUnexpectedMultipleMatches = fmt.Errorf("product search returned more than one product")
	ErrVerificationFailed        = fmt.Errorf("checksum verification failed")
	ErrArchiveInvalid            = fmt.Errorf("invalid product archive")

	// Filesystem and transport errors.
	ErrIO             = fmt.Errorf("i/o error")
	ErrDownloadFailed = fmt.Errorf("download failed")
	ErrSearchFailed   = fmt.Errorf("search failed")

	// Region of interest errors.
	ErrInvalidROI = fmt.Errorf("invalid region of interest")

	// Config errors.
	ErrEmptyConfigPath     = fmt.Errorf("config file path cannot be empty")
	ErrNoConfig            = fmt.Errorf("no configuration specified")
	ErrConfigNotFound      = fmt.Errorf("config file not found")
	ErrConfigParse         = fmt.Errorf("failed to parse config")
	ErrConfigValidation    = fmt.Errorf("invalid configuration")
	ErrNoSearch            = fmt.Errorf("either a geo search or a product search is required")
	ErrRunFailed           = fmt.Errorf("run finished with failures")
	ErrVersionConstraint   = fmt.Errorf("configuration requires a different program version")
	ErrInvalidCredentials  = fmt.Errorf("invalid archive credentials")
	ErrUnsupportedChecksum = fmt.Errorf("unsupported checksum algorithm")

	// Hook errors.
	ErrHookTypeEmpty = fmt.Errorf("hook type cannot be empty")
	ErrHookExecution = fmt.Errorf("error executing hook")
	ErrHookScript    = fmt.Errorf("hook script error")
	ErrHookLoad      = fmt.Errorf("failed to load hook")
)

// Wrap wraps an error with additional context.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with additional formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool { return stderrors.Is(err, target) }

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool { return stderrors.As(err, target) }
