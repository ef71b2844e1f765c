// SPDX-License-Identifier: EPL-2.0

// Package waveform holds the mono floating-point signal that flows through
// the retrocrush pipeline, plus the conversions at its two ends: integer PCM
// in (Normalize) and signed 8-bit PCM out (Pack8).
//
// A Waveform is built once at the boundary by whoever decoded the input and
// is then owned by a single pipeline run.
package waveform
