package gaggiuino

import (
	"errors"
	"fmt"
)

var (

	// ErrInvalidConfig denotes an invalid client configuration (e.g. a base
	// address that cannot form a valid request URL)
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrConnectionFailed denotes a failed connection to the machine, either on
	// the transport level or due to an unexpected HTTP status
	ErrConnectionFailed = errors.New("connection failed")

	// ErrTimeout denotes a request that exceeded its configured timeout
	ErrTimeout = errors.New("request timed out")

	// ErrNotFound denotes a resource that does not exist on the machine (HTTP 404)
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidResponse denotes a successful response whose body does not match
	// the expected shape (e.g. an empty single-element array)
	ErrInvalidResponse = errors.New("invalid response shape")

	// ErrDecodingFailed denotes a response body that could not be decoded into
	// its target entity
	ErrDecodingFailed = errors.New("decoding failed")
)

// DecodeError denotes a failure to decode a single field of an API payload,
// carrying the field name and the offending raw value (if any)
type DecodeError struct {
	Field string // Name of the offending field
	Value string // Raw value that failed to parse (empty if the field was missing)
	Err   error  // Underlying parse error (if any)
}

// Error returns a string representation of the decode error
func (e *DecodeError) Error() string {
	msg := fmt.Sprintf("cannot parse value `%s`", e.Value)
	if e.Value == "" && e.Err == nil {
		msg = "missing required field"
	}
	if e.Field != "" {
		msg = fmt.Sprintf("field `%s`: %s", e.Field, msg)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

// Unwrap returns the underlying parse error (if any)
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is provides support for matching against ErrDecodingFailed via errors.Is()
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecodingFailed
}
