package content

import (
	"errors"
	"fmt"
)

// ErrNoMedia is returned by WorkItem.Media for kinds outside the built-in set.
var ErrNoMedia = errors.New("content: kind has no built-in media payload")

// SourceError reports a failed repository call: transport, storage, parse or
// validation failure.
type SourceError struct {
	Op     string // e.g. "fetch work items"
	Source string // adapter name, e.g. "sqlite", "blob:work-items"
	Err    error
}

func (e *SourceError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s from %s: %v", e.Op, e.Source, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// ValidationError reports fetched data that violates the entity shape.
// Adapters never return it bare; it is always wrapped in a SourceError.
type ValidationError struct {
	Index  int // position in the fetched sequence, -1 for singletons
	ID     string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	switch {
	case e.Index < 0:
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	case e.ID == "":
		return fmt.Sprintf("invalid work item at index %d: %s %s", e.Index, e.Field, e.Reason)
	default:
		return fmt.Sprintf("invalid work item %q at index %d: %s %s", e.ID, e.Index, e.Field, e.Reason)
	}
}

// NewSourceError wraps err for op. A nil err yields nil.
func NewSourceError(op, source string, err error) error {
	if err == nil {
		return nil
	}
	var se *SourceError
	if errors.As(err, &se) {
		return err
	}
	return &SourceError{Op: op, Source: source, Err: err}
}
