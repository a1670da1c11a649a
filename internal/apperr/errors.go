// Package apperr defines the error kinds surfaced at the request boundary.
package apperr

import "errors"

// ValidationError reports bad or unsupported user input. Message is shown to
// the end user as-is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidation returns a ValidationError with the given user-facing message.
func NewValidation(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

// ConfigurationError reports a missing or invalid operator setting.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// NewConfiguration returns a ConfigurationError with the given message.
func NewConfiguration(msg string) *ConfigurationError {
	return &ConfigurationError{Message: msg}
}

// StoreError wraps a failure reading from or writing to the audit store.
type StoreError struct {
	Err error
}

func (e *StoreError) Error() string {
	return e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStore wraps err as a StoreError. A nil err yields nil.
func NewStore(err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Err: err}
}

// IsValidation reports whether err (or any error in its chain) is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsConfiguration reports whether err (or any error in its chain) is a ConfigurationError.
func IsConfiguration(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// IsStore reports whether err (or any error in its chain) is a StoreError.
func IsStore(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}
