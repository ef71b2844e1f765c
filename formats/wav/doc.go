// SPDX-License-Identifier: EPL-2.0

// Package wav reads PCM WAV input and writes the retro output.
//
// Decoding uses github.com/go-audio/wav and accepts 8, 16, 24 and 32-bit
// integer PCM. The returned audio.Source reports the file's bit depth;
// 8-bit data (stored unsigned in WAV) is re-centred to signed values.
//
//	src, err := wav.Decoder{}.Decode(file)
//
// Writing is done by hand so output can go to any io.Writer (go-audio's
// encoder needs an io.WriteSeeker):
//
//	err := wav.WriteWAV8(out, 11025, packed) // []int8 from the pipeline
//	err := wav.WriteWAV16(out, 11025, pcm16)
//
// Both writers emit the canonical 44-byte header: RIFF, a 16-byte fmt chunk
// (PCM, 1 channel) and a single data chunk.
package wav
