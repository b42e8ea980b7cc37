package blockpalettes

import (
	"errors"
	"fmt"
)

// Sentinel errors, match them with errors.Is.
var (
	// ErrApi means the upstream answered with a well formed body whose
	// `success` field was false.
	ErrApi = errors.New("blockpalettes: api reported failure")
	// ErrMalformedResponse means the body did not have the expected shape.
	ErrMalformedResponse = errors.New("blockpalettes: malformed response")
	// ErrUnexpectedStatus means the upstream answered with a non-2xx status
	// and a body that could not be used.
	ErrUnexpectedStatus = errors.New("blockpalettes: unexpected status")
	// ErrInvalidSelector means a CSS selector used for scraping did not
	// compile. This is a configuration mistake, not a property of the page.
	ErrInvalidSelector   = errors.New("blockpalettes: invalid selector")
	ErrInvalidDateFormat = errors.New("blockpalettes: invalid date format")
	ErrInvalidArgument   = errors.New("blockpalettes: invalid argument")
)

// Error wraps an underlying error with the operation that produced it.
type Error struct {
	Op  string // "search-blocks", "palettes", "scrape-palette-page", ...
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("blockpalettes %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func wrapError(op string, err error) error {
	return &Error{Op: op, Err: err}
}

// ApiError is returned when the upstream reports `success: false`.
type ApiError struct {
	Op      string
	Message string
}

func (e *ApiError) Error() string {
	return fmt.Sprintf("blockpalettes %s: api error: %s", e.Op, e.Message)
}

func (e *ApiError) Is(target error) bool {
	return target == ErrApi
}

// StatusError is returned for non-2xx responses whose body was not usable.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("blockpalettes: unexpected status: %s", e.Status)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrUnexpectedStatus
}

// SelectorError is returned when a scraping selector does not compile.
type SelectorError struct {
	Selector string
	Err      error
}

func (e *SelectorError) Error() string {
	return fmt.Sprintf("blockpalettes: invalid selector %q: %v", e.Selector, e.Err)
}

func (e *SelectorError) Unwrap() error {
	return e.Err
}

func (e *SelectorError) Is(target error) bool {
	return target == ErrInvalidSelector
}
