package dom

import "fmt"

// SnapshotError represents a failure to enumerate page fields.
type SnapshotError struct {
	Message string
	Cause   error
}

func (e *SnapshotError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("snapshot error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("snapshot error: %s", e.Message)
}

func (e *SnapshotError) Unwrap() error {
	return e.Cause
}

// WriteError represents a failure to mutate an element. The writer
// catches these and converts them to non-fills; they never abort a pass.
type WriteError struct {
	Ref     Ref
	Message string
	Cause   error
}

func (e *WriteError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("write error on %s: %s: %v", e.Ref, e.Message, e.Cause)
	}
	return fmt.Sprintf("write error on %s: %s", e.Ref, e.Message)
}

func (e *WriteError) Unwrap() error {
	return e.Cause
}
