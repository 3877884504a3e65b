package catalog

import "fmt"

// NetworkError reports that a request never produced an HTTP response: the
// transport failed, the context ended, or the circuit breaker refused the call.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// RemoteError reports a non-success HTTP status from the catalog API.
type RemoteError struct {
	Path   string
	Status int
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("api %s returned status %d", e.Path, e.Status)
}

// Server reports whether the status is a 5xx.
func (e *RemoteError) Server() bool {
	return e.Status >= 500
}

// MissingParameterError is returned before any request is made when a
// required parameter is empty.
type MissingParameterError struct {
	Name string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("missing required parameter %q", e.Name)
}
