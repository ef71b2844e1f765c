// SPDX-License-Identifier: EPL-2.0

// Package mulaw implements mu-law companding, a dithered uniform quantizer
// that runs between encode and decode, and the short smoothing filter
// applied after decoding.
package mulaw
