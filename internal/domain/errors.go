package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies relay failures so the HTTP layer can pick a status code
type ErrorKind int

const (
	// KindValidation is a missing or malformed client input. No network call was made.
	KindValidation ErrorKind = iota
	// KindUpstream is a non-2xx status or transport failure from an external API.
	KindUpstream
	// KindImageFetch is a failure to download the uploaded image.
	KindImageFetch
	// KindSemantic is a 2xx response that still reports an error or carries no output.
	KindSemantic
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUpstream:
		return "upstream"
	case KindImageFetch:
		return "image_fetch"
	case KindSemantic:
		return "semantic"
	default:
		return "unknown"
	}
}

// RelayError is the uniform failure produced by the relays
type RelayError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *RelayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *RelayError) Unwrap() error {
	return e.Err
}

// NewValidationError reports a missing or malformed input
func NewValidationError(message string) *RelayError {
	return &RelayError{Kind: KindValidation, Message: message}
}

// NewUpstreamError reports a failed call to an external API
func NewUpstreamError(message string, err error) *RelayError {
	return &RelayError{Kind: KindUpstream, Message: message, Err: err}
}

// NewImageFetchError reports a failed download of the uploaded image
func NewImageFetchError(message string, err error) *RelayError {
	return &RelayError{Kind: KindImageFetch, Message: message, Err: err}
}

// NewSemanticError reports an application-level failure inside a 2xx response
func NewSemanticError(message string) *RelayError {
	return &RelayError{Kind: KindSemantic, Message: message}
}

// KindOf returns the kind of the first RelayError in err's chain.
// Errors that are not relay errors are treated as upstream failures.
func KindOf(err error) ErrorKind {
	var relayErr *RelayError
	if errors.As(err, &relayErr) {
		return relayErr.Kind
	}
	return KindUpstream
}
