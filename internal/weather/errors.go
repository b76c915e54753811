package weather

import (
	"errors"
	"fmt"
)

// Kind classifies why a lookup failed.
type Kind int

const (
	KindUnknown Kind = iota
	KindGeocodingFailure
	KindNoData
	KindNetwork
	KindMalformedResponse
	KindMisconfigured
)

func (k Kind) String() string {
	switch k {
	case KindGeocodingFailure:
		return "geocoding failure"
	case KindNoData:
		return "no data"
	case KindNetwork:
		return "network error"
	case KindMalformedResponse:
		return "malformed response"
	case KindMisconfigured:
		return "misconfigured"
	default:
		return "unknown"
	}
}

var (
	// ErrMissingField is returned by adapters when the expected top-level field is absent or empty.
	ErrMissingField = errors.New("expected field missing from provider response")
	// ErrMissingAPIKey is returned before any network call when no key is configured.
	ErrMissingAPIKey = errors.New("api key is not configured")
	// ErrNoMatch is returned by adapters when geocoding yields zero candidates.
	ErrNoMatch = errors.New("no matching location")
)

// Error is the failure type returned by every Client operation.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf reports the Kind of err, or KindUnknown when err is not an *Error.
func KindOf(err error) Kind {
	var we *Error
	if errors.As(err, &we) {
		return we.Kind
	}
	return KindUnknown
}

func newError(op string, kind Kind, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// MalformedError wraps a decode or field-parse failure inside an adapter.
func MalformedError(err error) error {
	return newError("decode", KindMalformedResponse, err)
}

// classifyMapping turns an adapter mapping error into a client error.
func classifyMapping(op string, err error) *Error {
	if errors.Is(err, ErrMissingField) {
		return newError(op, KindNoData, err)
	}
	var we *Error
	if errors.As(err, &we) {
		return newError(op, we.Kind, we.Err)
	}
	return newError(op, KindMalformedResponse, err)
}
