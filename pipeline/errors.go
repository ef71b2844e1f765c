// SPDX-License-Identifier: EPL-2.0

package pipeline

import (
	"errors"
	"fmt"
)

var (
	// ErrFatal marks a failure that aborted the conversion. No output is
	// produced when it is returned.
	ErrFatal = errors.New("conversion failed")

	// ErrInvalidConfig is returned by Config.Validate.
	ErrInvalidConfig = errors.New("invalid pipeline configuration")

	// ErrNonFinite reports a stage that produced NaN or infinite samples.
	ErrNonFinite = errors.New("stage produced non-finite samples")
)

// StageError is returned by Run when a stage fails. It matches both
// ErrFatal and the underlying error with errors.Is.
type StageError struct {
	Stage State
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s at %s: %v", ErrFatal, e.Stage, e.Err)
}

func (e *StageError) Unwrap() []error {
	return []error{ErrFatal, e.Err}
}
