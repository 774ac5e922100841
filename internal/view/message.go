package view

import (
	"errors"
	"fmt"

	"dmath-truthtable/internal/client"
)

// Message maps a submission error to the text shown to the user. The raw
// error is never shown verbatim.
func Message(err error) string {
	if err == nil {
		return ""
	}

	switch client.KindOf(err) {
	case client.KindTransport:
		return "could not reach server"
	case client.KindTimeout:
		return "request timed out"
	case client.KindStatus:
		var ce *client.Error
		errors.As(err, &ce)
		return fmt.Sprintf("server returned status %d", ce.StatusCode)
	case client.KindMalformed:
		return "invalid response from server"
	case client.KindCanceled:
		return "request canceled"
	}

	if errors.Is(err, ErrSuperseded) {
		return "request canceled"
	}
	return "request failed"
}
