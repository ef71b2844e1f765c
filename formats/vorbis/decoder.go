// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"
	"io"

	"github.com/ik5/retrocrush/audio"
	"github.com/ik5/retrocrush/utils"
	"github.com/jfreymuth/oggvorbis"
)

const bitDepth = 16

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type source struct {
	dec        oggReader
	sampleRate int
	channels   int
	frameBuf   []float32
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) BitDepth() int   { return bitDepth }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return cap(s.frameBuf) }

func (s *source) ReadSamples(dst []int) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	// keep the request frame aligned
	want := len(dst) - len(dst)%s.channels
	if want == 0 {
		return 0, audio.ErrInvalidDstSize
	}

	if cap(s.frameBuf) < want {
		s.frameBuf = make([]float32, want)
	}
	s.frameBuf = s.frameBuf[:want]

	// oggvorbis.Reader.Read returns the number of interleaved values read
	n, err := s.dec.Read(s.frameBuf)
	if n == 0 {
		return 0, err
	}

	for i := range n {
		dst[i] = int(utils.Float32ToInt16(s.frameBuf[i]))
	}

	return n, err
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening ogg vorbis stream: %w", err)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   dec.Channels(),
		frameBuf:   make([]float32, 4096),
	}, nil
}
