// Package error defines domain-specific errors for the sales report application.
package error

import "errors"

// Report domain errors.
var (
	// ErrInvalidPage is returned when the requested page is lower than 1.
	ErrInvalidPage = errors.New("page must be greater than or equal to 1")

	// ErrInvalidPageSize is returned when the requested page size is not positive.
	ErrInvalidPageSize = errors.New("page size must be greater than 0")

	// ErrStoreUnavailable is returned when the record store cannot serve a query.
	ErrStoreUnavailable = errors.New("record store unavailable")
)

// ReportErrorCode defines error codes for report errors.
// Format: RPT-XXYYYY where XX is category and YYYY is specific error.
type ReportErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidPage     ReportErrorCode = "RPT-010001"
	ErrCodeInvalidPageSize ReportErrorCode = "RPT-010002"

	// Internal errors (99XXXX)
	ErrCodeReportStoreFailure ReportErrorCode = "RPT-990001"
)

// ReportError represents a report error with code and message.
type ReportError struct {
	Code    ReportErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ReportError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ReportError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether the error was caused by bad query input.
func (e *ReportError) IsValidation() bool {
	return e.Code == ErrCodeInvalidPage || e.Code == ErrCodeInvalidPageSize
}

// NewReportError creates a new ReportError with the given code and message.
func NewReportError(code ReportErrorCode, message string, err error) *ReportError {
	return &ReportError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
