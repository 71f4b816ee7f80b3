package client

import "fmt"

// GenericErrorMessage is shown when the server gives no detail to surface.
const GenericErrorMessage = "An error occurred!"

// NetworkError wraps a transport-level failure: the request never produced a
// server response.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return "network error: " + e.Err.Error() }
func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError is a non-success response carrying the server's detail message
// when it provided one.
type ServerError struct {
	Status int
	Detail string
}

func (e *ServerError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("server error (%d): %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("server error (%d)", e.Status)
}

// Message returns the user-facing text for the error notification.
func (e *ServerError) Message() string {
	if e.Detail != "" {
		return e.Detail
	}
	return GenericErrorMessage
}

// ValidationErrors maps submitted field names to rejection messages.
type ValidationErrors map[string]string

func (e ValidationErrors) Error() string {
	return fmt.Sprintf("validation failed for %d field(s)", len(e))
}

// ErrStaleSnapshot marks a fetch completion that arrived after a newer
// request for the same date was issued; its snapshot must be discarded.
var ErrStaleSnapshot = fmt.Errorf("availability snapshot superseded by a newer fetch")

// ErrNotConfirmed marks a gated mutation the user declined at the
// confirmation step; no request was made.
var ErrNotConfirmed = fmt.Errorf("confirmation declined")
