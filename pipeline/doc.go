// SPDX-License-Identifier: EPL-2.0

// Package pipeline sequences the retro conversion: resample to the internal
// rate, high-pass, notch out mains hum, spectral noise gate, anti-alias
// low-pass, resample to the output rate, then mu-law encode, dithered
// quantization, decode, smoothing, clipping and packing to 8-bit PCM.
//
// Run is synchronous and holds the whole signal in memory. Independent
// calls share no state and may run concurrently. Progress is reported
// through an optional Notifier and a logrus logger.
package pipeline
