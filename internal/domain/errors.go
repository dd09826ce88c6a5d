package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Application error codes
const (
	EINVALID     = "invalid"     // Invalid input or validation failure
	ENOTFOUND    = "not_found"   // Resource not found
	ERATELIMIT   = "rate_limit"  // Rate limit exceeded
	EUNAVAILABLE = "unavailable" // Site documents could not be loaded
	EINTERNAL    = "internal"    // Internal server error
)

const genericMessage = "Une erreur interne est survenue. Veuillez réessayer plus tard."

// Error represents an application error with structured information.
type Error struct {
	Code    string // Machine-readable error code
	Op      string // Operation that failed (e.g., "quote.export")
	Message string // Human-readable message
	Err     error  // Underlying error
}

func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf creates a new Error with the given code, operation, and formatted message.
func Errorf(code, op, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Op:      op,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an existing error with additional context.
func Wrap(err error, code, op, message string) *Error {
	return &Error{
		Code:    code,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// ErrorCode returns the code of the root error, or EINTERNAL if none.
// Load and export failures carry their own codes.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return EINVALID
	}
	var xe *ExportError
	if errors.As(err, &xe) {
		return EINVALID
	}
	var le *LoadError
	if errors.As(err, &le) {
		return EUNAVAILABLE
	}
	return EINTERNAL
}

// ErrorMessage returns the human-readable message of the error.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		if e.Code == EINTERNAL {
			return genericMessage
		}
		return e.Message
	}
	var xe *ExportError
	if errors.As(err, &xe) {
		return "Le devis n'a pas pu être exporté."
	}
	var le *LoadError
	if errors.As(err, &le) {
		return "Impossible de charger les données du site."
	}
	return genericMessage
}

// ErrorOp returns the operation of the root error, if any.
func ErrorOp(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Op
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Op
	}
	return ""
}

// NotFound creates a not found error.
func NotFound(op, resource, id string) *Error {
	return &Error{
		Code:    ENOTFOUND,
		Op:      op,
		Message: fmt.Sprintf("%s %q introuvable", resource, id),
	}
}

// Invalid creates a validation error.
func Invalid(op, message string) *Error {
	return &Error{
		Code:    EINVALID,
		Op:      op,
		Message: message,
	}
}

// Internal creates an internal error, wrapping the underlying error.
func Internal(err error, op, message string) *Error {
	return &Error{
		Code:    EINTERNAL,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// RateLimit creates a rate limit error.
func RateLimit(op string) *Error {
	return &Error{
		Code:    ERATELIMIT,
		Op:      op,
		Message: "Trop de demandes. Veuillez réessayer plus tard.",
	}
}

// Banner is a form-level message that is not tied to a single input.
// Target names the element the banner is shown above.
type Banner struct {
	Target  string
	Message string
}

// ValidationError represents field-level validation errors plus form banners.
// It is never fatal: the form is re-rendered with the messages.
type ValidationError struct {
	Op      string
	Fields  map[string]string
	Banners []Banner
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: validation failed", e.Op)
}

// HasErrors reports whether any field or banner message was recorded.
func (e *ValidationError) HasErrors() bool {
	return e != nil && (len(e.Fields) > 0 || len(e.Banners) > 0)
}

// Field returns the message recorded for a field, or "".
func (e *ValidationError) Field(name string) string {
	if e == nil {
		return ""
	}
	return e.Fields[name]
}

// NewValidationError creates a new validation error with the first field error.
func NewValidationError(op, field, message string) *ValidationError {
	return &ValidationError{
		Op: op,
		Fields: map[string]string{
			field: message,
		},
	}
}

// AddFieldError adds a field error to an existing validation error.
// If err is not a ValidationError, returns a new one.
// The first message recorded for a field wins.
func AddFieldError(err error, field, message string) *ValidationError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		if ve.Fields == nil {
			ve.Fields = make(map[string]string)
		}
		if _, exists := ve.Fields[field]; !exists {
			ve.Fields[field] = message
		}
		return ve
	}
	return NewValidationError("", field, message)
}

// AddBanner appends a form-level message.
func (e *ValidationError) AddBanner(target, message string) {
	e.Banners = append(e.Banners, Banner{Target: target, Message: message})
}

// LoadError reports a document that could not be fetched or decoded.
// Status follows HTTP semantics: 404 missing, 403 denied, 422 undecodable,
// 502 for any other source failure.
type LoadError struct {
	Document string
	Status   int
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %d %s: %v", e.Document, e.Status, http.StatusText(e.Status), e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// LoadErrors extracts every LoadError from a possibly joined error.
func LoadErrors(err error) []*LoadError {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []*LoadError
		for _, e := range joined.Unwrap() {
			out = append(out, LoadErrors(e)...)
		}
		return out
	}
	var le *LoadError
	if errors.As(err, &le) {
		return []*LoadError{le}
	}
	return nil
}

// ExportError reports a quote snapshot that could not be exported.
type ExportError struct {
	Format string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export %s: %v", e.Format, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
