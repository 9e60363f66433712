package domain

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	ErrInternal   ErrorCode = "INTERNAL_ERROR"
	ErrValidation ErrorCode = "VALIDATION_ERROR"

	// Acquisition errors
	ErrInvalidFile          ErrorCode = "INVALID_FILE"
	ErrUnsupportedInputKind ErrorCode = "UNSUPPORTED_INPUT_KIND"
	ErrUnsupportedFileType  ErrorCode = "UNSUPPORTED_FILE_TYPE"
	ErrSearchUnavailable    ErrorCode = "SEARCH_UNAVAILABLE"
	ErrExtractionFailed     ErrorCode = "EXTRACTION_FAILED"

	// Generation errors
	ErrGenerationFailed ErrorCode = "GENERATION_FAILED"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Helper constructors for the acquisition and generation error taxonomy

func NewInvalidFileError(path string) *DomainError {
	return NewError(ErrInvalidFile, fmt.Sprintf("Invalid file: %s", path), nil)
}

func NewUnsupportedInputKindError(kind string) *DomainError {
	return NewError(ErrUnsupportedInputKind, fmt.Sprintf("Unknown input type: %s", kind), nil)
}

func NewUnsupportedFileTypeError(extension string) *DomainError {
	return NewError(ErrUnsupportedFileType, fmt.Sprintf("Unsupported file type: %s", extension), nil)
}

func NewSearchUnavailableError() *DomainError {
	return NewError(ErrSearchUnavailable, "Web search not available (Tavily API key missing)", nil)
}

func NewExtractionFailedError(err error) *DomainError {
	return NewError(ErrExtractionFailed, "Content extraction failed", err)
}

func NewGenerationFailedError(err error) *DomainError {
	return NewError(ErrGenerationFailed, "Failed to process with LLM service", err)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(ErrInternal, message, err)
}
