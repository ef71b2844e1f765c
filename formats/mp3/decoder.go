// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/retrocrush/audio"
)

// go-mp3 output is fixed at 16-bit stereo.
const (
	bitDepth = 16
	channels = 2
)

// maxEmptyReads bounds consecutive (0, nil) reads from the decoder.
const maxEmptyReads = 100

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec        mp3Reader
	sampleRate int
	buf        []byte
	carry      []byte // odd byte left over from a short read
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return channels }
func (s *source) BitDepth() int   { return bitDepth }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return cap(s.buf) / 2 } // sample capacity, not bytes

func (s *source) ReadSamples(dst []int) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	bytesNeeded := len(dst) * 2
	if cap(s.buf) < bytesNeeded {
		s.buf = make([]byte, bytesNeeded)
	}
	s.buf = s.buf[:bytesNeeded]

	pending := copy(s.buf, s.carry)
	s.carry = s.carry[:0]

	// keep reading until a whole sample is available
	n := pending
	var err error
	for empty := 0; n < 2 && err == nil; {
		var m int
		m, err = s.dec.Read(s.buf[n:])
		n += m
		if m > 0 {
			empty = 0
			continue
		}
		if empty++; empty >= maxEmptyReads {
			err = io.ErrNoProgress
		}
	}
	if n < 2 {
		if n == 1 {
			s.carry = append(s.carry, s.buf[0])
		}
		return 0, err
	}

	samples := n / 2
	if n%2 == 1 {
		s.carry = append(s.carry, s.buf[n-1])
	}

	for i := range samples {
		dst[i] = int(int16(binary.LittleEndian.Uint16(s.buf[2*i : 2*i+2])))
	}

	return samples, err
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("opening mp3 stream: %w", err)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		buf:        make([]byte, 8192),
	}, nil
}
