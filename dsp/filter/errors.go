// SPDX-License-Identifier: EPL-2.0

package filter

import (
	"errors"
	"fmt"
)

var (
	// ErrFilterDesign is the root of every design failure.
	ErrFilterDesign = errors.New("filter design failed")

	ErrInvalidCutoff     = fmt.Errorf("%w: cutoff must lie strictly between 0 and Nyquist", ErrFilterDesign)
	ErrInvalidOrder      = fmt.Errorf("%w: order out of range", ErrFilterDesign)
	ErrInvalidQ          = fmt.Errorf("%w: quality factor must be positive", ErrFilterDesign)
	ErrInvalidSampleRate = fmt.Errorf("%w: sample rate must be positive", ErrFilterDesign)
	ErrUnstable          = fmt.Errorf("%w: coefficients are unstable or not finite", ErrFilterDesign)
	ErrUnknownKind       = fmt.Errorf("%w: unknown filter kind", ErrFilterDesign)
)
