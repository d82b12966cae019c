package estimator

import "fmt"

// InvalidRequestError rejects a request whose matching fields are missing
// or out of domain.
type InvalidRequestError struct {
	Field  string
	Reason string
}

func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("invalid prediction request: %s %s", e.Field, e.Reason)
}
