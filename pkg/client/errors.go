package client

import (
	"errors"
	"fmt"
)

// ErrSessionExpired is returned when a silent refresh fails and the local
// session state has been torn down. The caller should send the user back to
// the login entry point.
var ErrSessionExpired = errors.New("session expired")

// APIError carries a non-success response of the server unchanged.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api responded with status %d: %s", e.StatusCode, e.Message)
}
