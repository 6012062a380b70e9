package domain

import (
	"errors"
	"fmt"
)

// FetchKind classifies why a weather fetch failed.
type FetchKind int

const (
	MissingCredential FetchKind = iota + 1
	NotFound
	Unauthorized
	HTTPError
	ConnectionFailure
	Timeout
	UnknownRequestError
)

var fetchKindNames = map[FetchKind]string{
	MissingCredential:   "missing credential",
	NotFound:            "location not found",
	Unauthorized:        "unauthorized",
	HTTPError:           "http error",
	ConnectionFailure:   "connection failure",
	Timeout:             "timeout",
	UnknownRequestError: "request error",
}

func (k FetchKind) String() string {
	if name, ok := fetchKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("FetchKind(%d)", int(k))
}

// Sentinel errors for use with errors.Is.
var (
	ErrMissingCredential   = &FetchError{Kind: MissingCredential}
	ErrNotFound            = &FetchError{Kind: NotFound}
	ErrUnauthorized        = &FetchError{Kind: Unauthorized}
	ErrHTTP                = &FetchError{Kind: HTTPError}
	ErrConnectionFailure   = &FetchError{Kind: ConnectionFailure}
	ErrTimeout             = &FetchError{Kind: Timeout}
	ErrUnknownRequestError = &FetchError{Kind: UnknownRequestError}
)

// FetchError is returned by the fetcher for every failed run.
type FetchError struct {
	Kind       FetchKind
	Location   string
	StatusCode int    // set for NotFound, Unauthorized and HTTPError
	Detail     string // status text or underlying message
	Err        error
}

func (e *FetchError) Error() string {
	msg := "weather: " + e.Kind.String()
	if e.Location != "" {
		msg += fmt.Sprintf(" (%s)", e.Location)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *FetchError) Unwrap() error { return e.Err }

// Is matches any FetchError of the same kind.
func (e *FetchError) Is(target error) bool {
	t, ok := target.(*FetchError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// DisplayKind classifies why a report could not be rendered.
type DisplayKind int

const (
	MissingField DisplayKind = iota + 1
	Unexpected
)

func (k DisplayKind) String() string {
	switch k {
	case MissingField:
		return "missing field"
	case Unexpected:
		return "unexpected data"
	default:
		return fmt.Sprintf("DisplayKind(%d)", int(k))
	}
}

var (
	ErrMissingField = &DisplayError{Kind: MissingField}
	ErrUnexpected   = &DisplayError{Kind: Unexpected}
)

// DisplayError is returned when a response lacks a required field
// or has one of the wrong shape.
type DisplayError struct {
	Kind   DisplayKind
	Field  string
	Detail string
}

func (e *DisplayError) Error() string {
	if e.Kind == MissingField {
		return fmt.Sprintf("weather: missing field %q", e.Field)
	}
	return "weather: " + e.Kind.String() + ": " + e.Detail
}

func (e *DisplayError) Is(target error) bool {
	t, ok := target.(*DisplayError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// FetchKindOf returns the kind of the first FetchError in err's chain, or 0.
func FetchKindOf(err error) FetchKind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return 0
}
