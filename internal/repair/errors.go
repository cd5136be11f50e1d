package repair

import (
	"errors"
	"fmt"
)

// ErrMalformedResponse means no JSON object could be located in the
// generator's output at all.
var ErrMalformedResponse = errors.New("no JSON object found in generator response")

// InvalidJSONError carries the decode position and a context window around it
// so generator failures are diagnosable from logs alone.
type InvalidJSONError struct {
	Offset  int64
	Context string
	Err     error
}

func (e *InvalidJSONError) Error() string {
	return fmt.Sprintf("invalid JSON in generator response at offset %d (near %q): %v", e.Offset, e.Context, e.Err)
}

func (e *InvalidJSONError) Unwrap() error { return e.Err }

// MissingFieldError means the payload parsed but a required field was absent
// or empty.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("generator response is missing required field %q", e.Field)
}

// CoercionError means one question entry could not be coerced into a valid
// question. The whole decode fails; partial question sets are never returned.
type CoercionError struct {
	Index int
	Err   error
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("question %d could not be decoded: %v", e.Index+1, e.Err)
}

func (e *CoercionError) Unwrap() error { return e.Err }

// IsDecodeError reports whether err is any of the repair/decode failures,
// i.e. the generator produced unusable output.
func IsDecodeError(err error) bool {
	var invalid *InvalidJSONError
	var missing *MissingFieldError
	var coercion *CoercionError
	return errors.Is(err, ErrMalformedResponse) ||
		errors.As(err, &invalid) ||
		errors.As(err, &missing) ||
		errors.As(err, &coercion)
}
