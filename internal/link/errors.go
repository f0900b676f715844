package link

import (
	"errors"
	"fmt"
)

var (
	// ErrTimeout is returned when a request receives no reply before its
	// deadline. Recoverable; the caller decides retry vs abort.
	ErrTimeout = errors.New("request timed out")

	// ErrConnectionLost is returned for every request pending when the
	// connection drops. Terminal for the current build.
	ErrConnectionLost = errors.New("connection lost")

	// ErrClosed is returned when submitting on a deliberately closed
	// connection.
	ErrClosed = errors.New("connection closed")
)

// RemoteError is a rejection by the server: a schema or semantic error in
// the request. Never retried blindly, since resending an invalid value
// cannot succeed.
type RemoteError struct {
	Code    string
	Message string
}

func (e *RemoteError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("remote rejected (%s): %s", e.Code, e.Message)
	}
	return fmt.Sprintf("remote rejected: %s", e.Message)
}
