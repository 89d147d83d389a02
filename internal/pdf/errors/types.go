// Package errors provides the structured error types used by the PDF scan
// components: typed scan errors with severity, and a collection that turns
// per-page failures into result warnings instead of aborting the whole scan.
package errors

import (
	"fmt"
	"sync"
)

// ErrorType represents different categories of scan errors
type ErrorType int

const (
	ErrorTypeUnknown ErrorType = iota
	ErrorTypeInvalidFile
	ErrorTypeMalformedPage
	ErrorTypeInvalidStream
	ErrorTypeRenderFailed
	ErrorTypeTruncatedScan
	ErrorTypePanic
)

// String returns a string representation of the ErrorType
func (et ErrorType) String() string {
	switch et {
	case ErrorTypeInvalidFile:
		return "INVALID_FILE"
	case ErrorTypeMalformedPage:
		return "MALFORMED_PAGE"
	case ErrorTypeInvalidStream:
		return "INVALID_STREAM"
	case ErrorTypeRenderFailed:
		return "RENDER_FAILED"
	case ErrorTypeTruncatedScan:
		return "TRUNCATED_SCAN"
	case ErrorTypePanic:
		return "PANIC"
	default:
		return "UNKNOWN"
	}
}

// ErrorSeverity indicates how critical an error is
type ErrorSeverity int

const (
	SeverityWarning ErrorSeverity = iota
	SeverityError
	SeverityFatal
)

// ScanError represents a PDF scan error with page context
type ScanError struct {
	Type     ErrorType     `json:"type"`
	Severity ErrorSeverity `json:"-"`
	Message  string        `json:"message"`
	Page     int           `json:"page,omitempty"`
	Cause    error         `json:"-"`
}

// Error implements the error interface
func (e *ScanError) Error() string {
	if e.Page > 0 {
		return fmt.Sprintf("[%s] page %d: %s", e.Type.String(), e.Page, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Type.String(), e.Message)
}

// Unwrap returns the underlying cause
func (e *ScanError) Unwrap() error {
	return e.Cause
}

// NewScanError creates a scan error without page context
func NewScanError(errType ErrorType, severity ErrorSeverity, message string, cause error) *ScanError {
	return &ScanError{
		Type:     errType,
		Severity: severity,
		Message:  message,
		Cause:    cause,
	}
}

// NewPageError creates a warning-level scan error attributed to a specific page
func NewPageError(errType ErrorType, page int, message string, cause error) *ScanError {
	return &ScanError{
		Type:     errType,
		Severity: SeverityWarning,
		Message:  message,
		Page:     page,
		Cause:    cause,
	}
}

// ErrorCollection accumulates non-fatal errors during a scan
type ErrorCollection struct {
	mu     sync.Mutex
	errors []*ScanError
}

// NewErrorCollection creates an empty error collection
func NewErrorCollection() *ErrorCollection {
	return &ErrorCollection{}
}

// Add appends an error to the collection
func (c *ErrorCollection) Add(err *ScanError) {
	if err == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errors = append(c.errors, err)
}

// HasFatal reports whether any collected error is fatal
func (c *ErrorCollection) HasFatal() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, err := range c.errors {
		if err.Severity == SeverityFatal {
			return true
		}
	}
	return false
}

// Len returns the number of collected errors
func (c *ErrorCollection) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.errors)
}

// Warnings returns the collected errors formatted as warning strings
func (c *ErrorCollection) Warnings() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.errors) == 0 {
		return nil
	}
	warnings := make([]string, len(c.errors))
	for i, err := range c.errors {
		warnings[i] = err.Error()
	}
	return warnings
}
