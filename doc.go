// SPDX-License-Identifier: EPL-2.0

// Package retrocrush turns ordinary recordings into clean low-fidelity
// "retro" audio: a lower sample rate, a few bits of mu-law companded
// resolution, a band-limited spectrum and suppressed mains hum, without the
// aliasing and harsh quantization noise of naive bit crushing.
//
// # Supported Formats
//
// Input is decoded by the subpackages under formats:
//   - WAV (8, 16, 24 and 32-bit PCM) via formats/wav
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//   - AIFF (8, 16, 24 and 32-bit PCM) via formats/aiff
//
// # Quick Start
//
//	file, _ := os.Open("voice.wav")
//	src, _ := wav.Decoder{}.Decode(file)
//
//	res, err := retrocrush.ConvertToRetro(src, pipeline.DefaultConfig(), 1)
//	if err != nil {
//	    return err
//	}
//
//	out, _ := os.Create("voice-retro.wav")
//	wav.WriteWAV8(out, res.SampleRate, res.Samples)
//
// # Processing Chain
//
// The pipeline package does the work on a fully buffered mono signal:
//
//  1. resample to the internal rate (44.1 kHz by default)
//  2. zero-phase Butterworth high-pass
//  3. notch filters at the mains hum candidates (50 and 60 Hz)
//  4. spectral subtraction noise gate
//  5. anti-alias low-pass and resample to the output rate
//  6. mu-law encode, dithered quantization to 2^bits levels, decode
//  7. 3-tap smoothing, clipping to ±0.99 and packing to signed 8-bit PCM
//
// Notch candidates and the noise gate are best effort: when they fail the
// signal passes through unchanged and the skip is reported. Any other
// failure aborts the conversion with a *pipeline.StageError.
//
// Everything runs synchronously and in memory, so very long inputs need
// proportionally large buffers.
package retrocrush
