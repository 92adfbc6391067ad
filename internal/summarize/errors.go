package summarize

import (
	"errors"
	"fmt"
)

// ErrEmptyResponse indicates the backend answered without usable text.
var ErrEmptyResponse = errors.New("summarize: empty response from backend")

// EnrichmentError records a failed summary for one node. It never aborts a
// file; the node is left without a summary.
type EnrichmentError struct {
	Kind string // Content kind: file, function, class, method
	Name string // Declaration or file name
	Err  error
}

func (e *EnrichmentError) Error() string {
	return fmt.Sprintf("summarize %s %s: %v", e.Kind, e.Name, e.Err)
}

func (e *EnrichmentError) Unwrap() error {
	return e.Err
}
