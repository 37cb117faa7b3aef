// Package errors holds the sentinel errors shared across ccpack and helpers to wrap them.
package errors

import "fmt"

// Common error types.
var (
	// Config errors.
	ErrEmptyConfigPath  = fmt.Errorf("config file path cannot be empty")
	ErrConfigNotFound   = fmt.Errorf("config file not found")
	ErrConfigParse      = fmt.Errorf("failed to parse config")
	ErrConfigValidation = fmt.Errorf("invalid configuration")

	// Layout errors.
	ErrLayoutParse      = fmt.Errorf("failed to parse layout")
	ErrLayoutValidation = fmt.Errorf("invalid layout")

	// Archive writer errors.
	ErrSourceNotFound      = fmt.Errorf("source path not found")
	ErrSourceChanged       = fmt.Errorf("source file changed while archiving")
	ErrUnsupportedFileType = fmt.Errorf("unsupported file type")
	ErrInvalidEntryName    = fmt.Errorf("invalid archive entry name")
	ErrWriterClosed        = fmt.Errorf("archive writer is closed")
	ErrUnsupportedFormat   = fmt.Errorf("unsupported archive format")

	// Verification errors.
	ErrArchiveInvalid = fmt.Errorf("archive verification failed")
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
