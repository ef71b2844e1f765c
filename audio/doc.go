// SPDX-License-Identifier: EPL-2.0

// Package audio provides the decoder-facing side of retrocrush.
//
// This package contains the building blocks that sit between a file decoder
// and the DSP core:
//   - Source interface for decoded integer PCM
//   - MonoMixer for folding channels down to one
//   - ReadAll for buffering a whole clip in memory
//   - Format registry for decoder registration
//
// # Source Interface
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    BitDepth() int
//	    ReadSamples(dst []int) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Sources deliver signed integer PCM together with the bit width it was
// decoded at. The core normalizes by that width, so decoders must report it
// truthfully (an 8-bit WAV reports 8, an MP3 reports 16).
//
// # Channel Mixing
//
// The DSP core is mono only. MonoMixer averages each frame:
//
//	mono := audio.NewMonoMixer(source)
//	samples, err := audio.ReadAll(mono)
//
// # Format Registry
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, _ := registry.Get("wav")
//
// # Error Handling
//
// ReadSamples returns io.EOF when no more data is available. ReadAll treats
// io.EOF as normal termination and returns ErrEmptySource if nothing at all
// was read.
package audio
