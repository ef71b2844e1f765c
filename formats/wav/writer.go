// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"
)

const headerSize = 44

// writeHeader emits the canonical 44-byte RIFF/WAVE header for mono PCM.
func writeHeader(w io.Writer, sampleRate, bitsPerSample, numSamples int) error {
	if sampleRate <= 0 {
		return ErrInvalidSampleRate
	}

	numChannels := uint16(1)
	bytesPerSample := uint16(bitsPerSample / 8)
	byteRate := uint32(sampleRate) * uint32(numChannels) * uint32(bytesPerSample)
	blockAlign := numChannels * bytesPerSample
	dataSize := uint32(numSamples) * uint32(bytesPerSample)
	riffSize := 36 + dataSize + dataSize%2 // pad byte counts toward the RIFF size

	header := make([]byte, headerSize)

	// RIFF header (12 bytes)
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], riffSize)
	copy(header[8:12], "WAVE")

	// fmt chunk (24 bytes)
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16) // PCM fmt chunk size
	binary.LittleEndian.PutUint16(header[20:22], formatPCM)
	binary.LittleEndian.PutUint16(header[22:24], numChannels)
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], byteRate)
	binary.LittleEndian.PutUint16(header[32:34], blockAlign)
	binary.LittleEndian.PutUint16(header[34:36], uint16(bitsPerSample))

	// data chunk header (8 bytes)
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("writing wav header: %w", err)
	}
	return nil
}

// WriteWAV8 writes a mono 8-bit PCM WAV at sampleRate. samples are signed;
// they are stored offset-binary as the WAV format requires for 8-bit data.
// Data is padded to an even length as RIFF chunks must be word aligned.
func WriteWAV8(w io.Writer, sampleRate int, samples []int8) error {
	if err := writeHeader(w, sampleRate, 8, len(samples)); err != nil {
		return err
	}

	const chunkSize = 8192
	buf := make([]byte, min(len(samples), chunkSize)+1)

	for i := 0; i < len(samples); i += chunkSize {
		chunk := samples[i:min(i+chunkSize, len(samples))]
		out := buf[:len(chunk)]
		for j, s := range chunk {
			out[j] = byte(int(s) + 128)
		}
		if _, err := w.Write(out); err != nil {
			return fmt.Errorf("writing wav data: %w", err)
		}
	}

	if len(samples)%2 == 1 {
		if _, err := w.Write([]byte{0}); err != nil {
			return fmt.Errorf("writing wav pad byte: %w", err)
		}
	}

	return nil
}

// WriteWAV16 writes a mono 16-bit PCM WAV at sampleRate. samples must be int16 PCM.
func WriteWAV16(w io.Writer, sampleRate int, samples []int16) error {
	if err := writeHeader(w, sampleRate, 16, len(samples)); err != nil {
		return err
	}

	// Write in chunks to bound the scratch buffer
	const chunkSize = 8192
	if len(samples) == 0 {
		return nil
	}

	buf := make([]byte, min(len(samples), chunkSize)*2)

	for i := 0; i < len(samples); i += chunkSize {
		chunk := samples[i:min(i+chunkSize, len(samples))]
		out := buf[:len(chunk)*2]

		for j, s := range chunk {
			binary.LittleEndian.PutUint16(out[j*2:j*2+2], uint16(s))
		}

		if _, err := w.Write(out); err != nil {
			return fmt.Errorf("writing wav data: %w", err)
		}
	}

	return nil
}
