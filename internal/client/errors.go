package client

import (
	"errors"
	"fmt"

	"dmath-truthtable/internal/truthtable"
)

// Kind classifies why a fetch failed.
type Kind int

const (
	KindUnknown Kind = iota
	// KindTransport means the backend could not be reached.
	KindTransport
	// KindTimeout means the configured request timeout elapsed.
	KindTimeout
	// KindStatus means the backend answered with a non-2xx status.
	KindStatus
	// KindMalformed means the body was not a usable truth table.
	KindMalformed
	// KindCanceled means the caller gave up on the request.
	KindCanceled
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindTimeout:
		return "timeout"
	case KindStatus:
		return "status"
	case KindMalformed:
		return "malformed"
	case KindCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Error is returned by Client.Fetch for every failure.
type Error struct {
	Kind       Kind
	StatusCode int    // set for KindStatus
	Body       string // leading bytes of the body for KindStatus
	Err        error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindStatus:
		if e.Body != "" {
			return fmt.Sprintf("truth table service returned status %d: %s", e.StatusCode, e.Body)
		}
		return fmt.Sprintf("truth table service returned status %d", e.StatusCode)
	default:
		return fmt.Sprintf("truth table request failed (%s): %v", e.Kind, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf reports the Kind of err. Shape errors from the truthtable package
// are KindMalformed even when they did not come from Fetch.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}

	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	if errors.Is(err, truthtable.ErrMalformed) {
		return KindMalformed
	}
	return KindUnknown
}
