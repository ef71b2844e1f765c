// SPDX-License-Identifier: EPL-2.0

package retrocrush

import "errors"

// ErrInvalidMix is returned for a dry/wet amount outside [0, 1].
var ErrInvalidMix = errors.New("mix must be between 0 and 1")
