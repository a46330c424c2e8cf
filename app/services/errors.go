package services

import (
	"errors"
	"strings"
)

// ValidationError accumulates user-visible input problems. It marks the
// re-render path: the originating form is shown again with the messages,
// and no state has been mutated.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "; ")
}

func (e *ValidationError) Add(problem string) {
	e.Problems = append(e.Problems, problem)
}

func (e *ValidationError) HasProblems() bool {
	return len(e.Problems) > 0
}

// AsValidation unwraps err into a ValidationError when it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
