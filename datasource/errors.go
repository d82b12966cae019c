package datasource

import "fmt"

// UnavailableError reports a connection or read failure against the store.
type UnavailableError struct {
	Op    string
	Cause error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("data source unavailable (%s): %v", e.Op, e.Cause)
}

func (e *UnavailableError) Unwrap() error { return e.Cause }
