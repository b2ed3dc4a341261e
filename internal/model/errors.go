package model

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidEncoding   = errors.New("form data is not valid UTF-8")
	ErrUnsupportedScheme = errors.New("unsupported protocol scheme")
)

// StatusError is the failure of an exchange that completed with a status
// other than 200. Message is the localized text shown to users.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server returned HTTP status %d", e.Code)
}
