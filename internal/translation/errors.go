package translation

import (
	"errors"
	"fmt"
)

// ConfigurationError means the language policy cannot drive a provider call,
// e.g. no API key or an unknown service.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "translation not configured: " + e.Reason
}

// ServiceError is a failed provider call. Err is a *provider.Error or a context error.
type ServiceError struct {
	Provider string
	Err      error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("translation service %s failed: %v", e.Provider, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ErrEmptySource is returned when there is nothing to translate.
var ErrEmptySource error = &ValidationError{Field: "text", Reason: "source text is empty"}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsConfiguration(err error) bool {
	var c *ConfigurationError
	return errors.As(err, &c)
}

func IsService(err error) bool {
	var s *ServiceError
	return errors.As(err, &s)
}
