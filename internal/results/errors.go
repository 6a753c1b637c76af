package results

import "fmt"

// ErrorKind classifies why a fetch failed. Users see one message for all of
// them; the kind is for logs and tests.
type ErrorKind string

const (
	KindNetwork ErrorKind = "network"
	KindStatus  ErrorKind = "status"
	KindDecode  ErrorKind = "decode"
)

// FetchError is returned by Client.Fetch.
type FetchError struct {
	Kind       ErrorKind
	StatusCode int // set for KindStatus
	Err        error
}

func (e *FetchError) Error() string {
	if e.Kind == KindStatus {
		return fmt.Sprintf("fetch results: status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch results: %s: %v", e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
