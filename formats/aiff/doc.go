// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files into integer PCM.
//
// This package uses github.com/go-audio/aiff. 8, 16, 24 and 32-bit PCM are
// accepted; the returned audio.Source reports the file's own bit depth so
// the core can normalize against the right full-scale value.
//
// go-audio needs an io.ReadSeeker. Plain readers are buffered in memory
// first, which is fine for the short clips retrocrush targets.
package aiff
