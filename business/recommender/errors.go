package recommender

import "fmt"

// ValidationError reports a required field that is absent or malformed on a
// program or student record.
type ValidationError struct {
	Record  string
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error in %s.%s: %s", e.Record, e.Field, e.Message)
	}
	return fmt.Sprintf("validation error in %s: %s", e.Record, e.Message)
}

// ConflictError reports a program identifier seen twice in one catalog.
type ConflictError struct {
	ID string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: duplicate program id %q", e.ID)
}

// InvalidArgumentError reports an out-of-range call argument such as top_k.
type InvalidArgumentError struct {
	Argument string
	Message  string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %s: %s", e.Argument, e.Message)
}
