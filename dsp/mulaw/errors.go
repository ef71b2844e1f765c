// SPDX-License-Identifier: EPL-2.0

package mulaw

import "errors"

var (
	ErrInvalidBitDepth = errors.New("bit depth must be between 1 and 16")
	ErrInvalidLevels   = errors.New("quantization levels must be an even number of at least 2")
)
