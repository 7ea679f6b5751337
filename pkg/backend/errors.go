package backend

import (
	"errors"
	"fmt"
)

// Error is a failure reported by the remote service. It is propagated
// to callers unchanged; the HTTP adapter decides how to present it.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend: remote service returned status %d", e.Status)
	}
	return fmt.Sprintf("backend: %s (status %d)", e.Message, e.Status)
}

// IsStatus reports whether err is a remote service error with the given
// HTTP status.
func IsStatus(err error, status int) bool {
	var be *Error
	return errors.As(err, &be) && be.Status == status
}

// errorBody covers the message shapes the service uses across its auth
// and REST surfaces.
type errorBody struct {
	Message          string `json:"message"`
	Msg              string `json:"msg"`
	ErrorDescription string `json:"error_description"`
	ErrorField       string `json:"error"`
}

func (b errorBody) text() string {
	switch {
	case b.Message != "":
		return b.Message
	case b.Msg != "":
		return b.Msg
	case b.ErrorDescription != "":
		return b.ErrorDescription
	default:
		return b.ErrorField
	}
}
