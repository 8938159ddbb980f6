package apperr

import "fmt"

// FetchError means a remote source could not be fetched: transport failure,
// timeout, or an empty response body. It always names the offending URL.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("could not fetch '%s': %v", e.URL, e.Err)
	}
	return fmt.Sprintf("could not fetch '%s'", e.URL)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func NewFetch(url string, err error) *FetchError {
	return &FetchError{URL: url, Err: err}
}

// ParseError means a fetched document violated a structural expectation:
// malformed bytes, wrong root element, wrong namespace, or a missing
// required element. Message names the expectation violated.
type ParseError struct {
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func NewParse(msg string) *ParseError {
	return &ParseError{Message: msg}
}

func NewParseWrap(msg string, err error) *ParseError {
	return &ParseError{Message: msg, Err: err}
}

// IngestError is the umbrella error for a single source's sync: it wraps the
// fetch or parse failure that aborted the pass.
type IngestError struct {
	SourceLabel string
	Err         error
}

func (e *IngestError) Error() string {
	return fmt.Sprintf("sync failed for source %s: %v", e.SourceLabel, e.Err)
}

func (e *IngestError) Unwrap() error {
	return e.Err
}

func NewIngest(sourceLabel string, err error) *IngestError {
	return &IngestError{SourceLabel: sourceLabel, Err: err}
}

// ValidationError signals a bad request from an API caller.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidation(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}
