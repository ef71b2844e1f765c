// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 files into integer PCM.
//
// This package uses github.com/hajimehoshi/go-mp3. go-mp3 always produces
// 16-bit little-endian stereo, so the returned audio.Source reports two
// channels and a bit depth of 16 regardless of how the file was encoded.
//
//	decoder := mp3.Decoder{}
//	file, _ := os.Open("song.mp3")
//	src, err := decoder.Decode(file)
//	mono := audio.NewMonoMixer(src)
package mp3
