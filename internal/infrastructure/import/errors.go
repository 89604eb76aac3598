package csvimport

import (
	"errors"
	"fmt"
	"strings"
)

// Import error codes
const (
	ErrCodeImportInvalidFile     = "ERR_IMPORT_INVALID_FILE"
	ErrCodeImportEmptyFile       = "ERR_IMPORT_EMPTY_FILE"
	ErrCodeImportInvalidEncoding = "ERR_IMPORT_INVALID_ENCODING"
	ErrCodeImportCSVParsing      = "ERR_IMPORT_CSV_PARSING"
	ErrCodeImportMissingHeader   = "ERR_IMPORT_MISSING_HEADER"
	ErrCodeImportRequiredField   = "ERR_IMPORT_REQUIRED_FIELD"
	ErrCodeImportInvalidType     = "ERR_IMPORT_INVALID_TYPE"
	ErrCodeImportInvalidLength   = "ERR_IMPORT_INVALID_LENGTH"
	ErrCodeImportInvalidRange    = "ERR_IMPORT_INVALID_RANGE"
	ErrCodeImportPatternMismatch = "ERR_IMPORT_PATTERN_MISMATCH"
	ErrCodeImportDuplicateInFile = "ERR_IMPORT_DUPLICATE_IN_FILE"
	ErrCodeImportValidation      = "ERR_IMPORT_VALIDATION"
)

// Common import errors
var (
	// ErrEmptyFile is returned when the CSV file is empty
	ErrEmptyFile = errors.New("CSV file is empty")

	// ErrInvalidEncoding is returned when the file is not valid UTF-8
	ErrInvalidEncoding = errors.New("invalid file encoding")

	// ErrMissingHeader is returned when the CSV file has no header row
	ErrMissingHeader = errors.New("CSV file missing header row")

	// ErrNoDataRows is returned when the CSV file has no data rows
	ErrNoDataRows = errors.New("CSV file contains no data rows")
)

// RowError represents an error in a specific row
type RowError struct {
	Row     int    `json:"row"`
	Column  string `json:"column"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

// Error implements the error interface
func (e RowError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("row %d, column '%s': %s", e.Row, e.Column, e.Message)
	}
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// NewRowError creates a new RowError
func NewRowError(row int, column, code, message string) RowError {
	return RowError{
		Row:     row,
		Column:  column,
		Code:    code,
		Message: message,
	}
}

// NewRowErrorWithValue creates a new RowError with the invalid value
func NewRowErrorWithValue(row int, column, code, message, value string) RowError {
	return RowError{
		Row:     row,
		Column:  column,
		Code:    code,
		Message: message,
		Value:   value,
	}
}

// ErrorCollection accumulates row errors up to a cap, counting the rest
type ErrorCollection struct {
	errors     []RowError
	maxErrors  int
	totalCount int
}

// NewErrorCollection creates a new ErrorCollection with a maximum error limit
func NewErrorCollection(maxErrors int) *ErrorCollection {
	if maxErrors <= 0 {
		maxErrors = 100
	}
	return &ErrorCollection{
		errors:    make([]RowError, 0, maxErrors),
		maxErrors: maxErrors,
	}
}

// Add adds an error to the collection
func (ec *ErrorCollection) Add(err RowError) {
	ec.totalCount++
	if len(ec.errors) < ec.maxErrors {
		ec.errors = append(ec.errors, err)
	}
}

// AddRequiredError adds a required field error
func (ec *ErrorCollection) AddRequiredError(row int, column string) {
	ec.Add(NewRowError(row, column, ErrCodeImportRequiredField, fmt.Sprintf("field '%s' is required", column)))
}

// AddTypeError adds a type validation error
func (ec *ErrorCollection) AddTypeError(row int, column, expectedType, value string) {
	ec.Add(NewRowErrorWithValue(row, column, ErrCodeImportInvalidType,
		fmt.Sprintf("expected %s", expectedType), value))
}

// AddLengthError adds a length validation error
func (ec *ErrorCollection) AddLengthError(row int, column string, maxLen int) {
	ec.Add(NewRowError(row, column, ErrCodeImportInvalidLength,
		fmt.Sprintf("length must be at most %d", maxLen)))
}

// AddRangeError adds a range validation error
func (ec *ErrorCollection) AddRangeError(row int, column, constraint string) {
	ec.Add(NewRowError(row, column, ErrCodeImportInvalidRange, constraint))
}

// Errors returns the collected errors
func (ec *ErrorCollection) Errors() []RowError {
	return ec.errors
}

// Count returns the number of collected errors (up to the cap)
func (ec *ErrorCollection) Count() int {
	return len(ec.errors)
}

// TotalCount returns the total number of errors including those not collected
func (ec *ErrorCollection) TotalCount() int {
	return ec.totalCount
}

// HasErrors returns true if there are any errors
func (ec *ErrorCollection) HasErrors() bool {
	return ec.totalCount > 0
}

// IsTruncated returns true if some errors were dropped due to the cap
func (ec *ErrorCollection) IsTruncated() bool {
	return ec.totalCount > ec.maxErrors
}

// String returns a string representation of all errors
func (ec *ErrorCollection) String() string {
	if !ec.HasErrors() {
		return "no errors"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d error(s) found", ec.totalCount))
	if ec.IsTruncated() {
		sb.WriteString(fmt.Sprintf(" (showing first %d)", ec.maxErrors))
	}
	sb.WriteString(":\n")
	for _, err := range ec.errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}
