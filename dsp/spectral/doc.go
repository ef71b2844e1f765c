// SPDX-License-Identifier: EPL-2.0

// Package spectral provides a short-time Fourier transform and a spectral
// subtraction noise gate built on it.
package spectral
