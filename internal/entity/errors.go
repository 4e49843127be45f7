package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized is returned when no caller identity is present.
	ErrUnauthorized     = errors.New("unauthorized")
	ErrUnknownSource    = errors.New("unknown source")
	ErrJobNotFound      = errors.New("scrape job not found")
	ErrJobTerminal      = errors.New("scrape job already reached a terminal state")
	ErrIndustryNotFound = errors.New("industry not found")
)

// ValidationError reports a missing or malformed request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s is required", e.Field)
}

// Required builds the ValidationError for an empty required field.
func Required(field, label string) *ValidationError {
	return &ValidationError{Field: field, Message: label + " is required"}
}

// ConfigError reports a provider credential absent from configuration.
type ConfigError struct {
	Source Source
	Key    string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s is not configured", e.Key)
}

// ProviderErrorType categorizes failures talking to a provider.
type ProviderErrorType string

const (
	ProviderErrorTransport ProviderErrorType = "transport"
	ProviderErrorStatus    ProviderErrorType = "status"
	ProviderErrorDecode    ProviderErrorType = "decode"
	ProviderErrorUpstream  ProviderErrorType = "upstream"
)

// ProviderError is a failed outbound call. StatusCode is 0 for transport failures.
type ProviderError struct {
	Provider   string
	Type       ProviderErrorType
	StatusCode int
	Body       string
	Cause      error
}

func (e *ProviderError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Body != "":
		return fmt.Sprintf("%s API Error: %d - %s", e.Provider, e.StatusCode, e.Body)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s API returned status: %d", e.Provider, e.StatusCode)
	case e.Cause != nil:
		return fmt.Sprintf("%s API %s error: %v", e.Provider, e.Type, e.Cause)
	default:
		return fmt.Sprintf("%s API %s error: %s", e.Provider, e.Type, e.Body)
	}
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// PersistenceError wraps a storage failure. It is never retried.
type PersistenceError struct {
	Op    string
	Cause error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

func (e *PersistenceError) Unwrap() error {
	return e.Cause
}

// Persistence wraps err unless it is nil or already a PersistenceError.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	var pe *PersistenceError
	if errors.As(err, &pe) {
		return err
	}
	return &PersistenceError{Op: op, Cause: err}
}
