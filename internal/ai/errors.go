package ai

import "fmt"

// FailureReason classifies why a backend call produced no usable result.
// Callers branch on the reason only for logging; every reason triggers the
// same deterministic fallback substitution.
type FailureReason string

const (
	// ReasonNoCredential means no API key was configured at construction.
	ReasonNoCredential FailureReason = "no-credential"
	// ReasonTransport covers connection errors and non-success responses.
	ReasonTransport FailureReason = "transport-error"
	// ReasonTimeout means the per-operation deadline elapsed.
	ReasonTimeout FailureReason = "timeout"
	// ReasonEmptyResponse means the backend replied with no usable text.
	ReasonEmptyResponse FailureReason = "empty-response"
)

// BackendError is the typed failure carried back to the orchestrator in
// place of an exception-style signal. It never reaches a candidate.
type BackendError struct {
	Reason FailureReason
	Op     string
	Err    error
}

func (e *BackendError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("backend %s failed (%s): %v", e.Op, e.Reason, e.Err)
	}
	return fmt.Sprintf("backend %s failed (%s)", e.Op, e.Reason)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}
