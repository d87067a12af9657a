package helpers

import "fmt"

// -----------------------------------------------------------------------------
// Custom Error Types
// -----------------------------------------------------------------------------

type StockMonitorError struct {
	Message string
	Cause   error
}

func (e *StockMonitorError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *StockMonitorError) Unwrap() error {
	return e.Cause
}

// Helper to define distinct error types for type assertions if needed
type ConfigurationError struct{ StockMonitorError }
type ValidationError struct{ StockMonitorError }

// -----------------------------------------------------------------------------

// NewConfigurationError builds a ConfigurationError naming the offending setting.
func NewConfigurationError(format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{StockMonitorError{Message: fmt.Sprintf(format, args...)}}
}

// -----------------------------------------------------------------------------

// NewValidationError builds a ValidationError for malformed input values.
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{StockMonitorError{Message: fmt.Sprintf(format, args...)}}
}
