// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/go-audio/riff"
	"github.com/go-audio/wav"

	"github.com/ik5/wavkit/pcm"
)

// WAVE format tags accepted by Decode.
const (
	formatPCM        = 1
	formatExtensible = 0xFFFE
)

// Decoder decodes RIFF/WAVE integer PCM into a pcm.Buffer.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (*pcm.Buffer, error) {
	return Decode(r)
}

// Decode reads a whole WAV stream. A trailing partial frame is dropped.
func Decode(r io.Reader) (*pcm.Buffer, error) {
	// go-audio requires io.ReadSeeker
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading wav data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	if err := checkHeader(rs); err != nil {
		return nil, err
	}

	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}

	switch dec.WavAudioFormat {
	case formatPCM, formatExtensible:
	default:
		return nil, fmt.Errorf("%w: format tag %#x", ErrNotPCM, dec.WavAudioFormat)
	}

	depth := int(dec.BitDepth)
	if !slices.Contains(pcm.SupportedBitDepths, depth) {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, depth)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("reading wav samples: %w", err)
	}
	if buf == nil {
		return nil, fmt.Errorf("reading wav samples: %w", io.ErrUnexpectedEOF)
	}

	samples := buf.Data
	if depth == 8 {
		// 8-bit WAV is unsigned with silence at 128
		for i := range samples {
			samples[i] -= 128
		}
	}

	channels := int(dec.NumChans)
	samples = samples[:len(samples)-len(samples)%channels]

	return pcm.New(int(dec.SampleRate), depth, channels, samples)
}

// checkHeader verifies the RIFF/WAVE preamble and rewinds rs.
func checkHeader(rs io.ReadSeeker) error {
	p := riff.New(rs)
	if err := p.ParseHeaders(); err != nil {
		return fmt.Errorf("%w: %w", ErrNotWavFile, err)
	}
	if p.Format != riff.WavFormatID {
		return ErrNotWavFile
	}

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewinding wav data: %w", err)
	}

	return nil
}
