// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis files into integer PCM.
//
// This package uses github.com/jfreymuth/oggvorbis. Vorbis decodes to
// floating point; samples are converted to 16-bit PCM (utils.Float32ToInt16)
// so every decoder in retrocrush hands the core the same kind of data.
//
//	decoder := vorbis.Decoder{}
//	file, _ := os.Open("loop.ogg")
//	src, err := decoder.Decode(file)
package vorbis
