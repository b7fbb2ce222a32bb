package errors

import (
	"fmt"
)

var (
	ErrValidation    = fmt.Errorf("parallelweb: validation failed")
	ErrConfiguration = fmt.Errorf("parallelweb: invalid configuration")
	ErrTransport     = fmt.Errorf("parallelweb: transport failure")
	ErrHTTPStatus    = fmt.Errorf("parallelweb: unexpected http status")
	ErrParse         = fmt.Errorf("parallelweb: malformed response")
)

type (
	// ValidationError reports caller input rejected before any network activity.
	ValidationError struct {
		Field   string
		Message string
	}

	// TransportError reports a failure to reach the search endpoint.
	TransportError struct {
		URL string
		Err error
	}

	// HTTPStatusError reports a non-2xx reply. Body is kept raw for diagnostics.
	HTTPStatusError struct {
		StatusCode int
		Status     string
		Detail     string
		Body       []byte
	}

	// ParseError reports a reply body that is not JSON or lacks required fields.
	ParseError struct {
		StatusCode int
		Reason     string
		Err        error
	}
)

func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func (e *TransportError) Error() string {
	return fmt.Sprintf("Parallel API request to %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }

func (e *HTTPStatusError) Error() string {
	detail := e.Detail
	if detail == "" {
		detail = e.Status
	}
	return fmt.Sprintf("Parallel API request failed (%d): %s", e.StatusCode, detail)
}

func (e *HTTPStatusError) Is(target error) bool { return target == ErrHTTPStatus }

func (e *ParseError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("Parallel API returned an invalid response (status %d): %s", e.StatusCode, e.Reason)
	}
	return fmt.Sprintf("Parallel API returned non-JSON (status %d).", e.StatusCode)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }
