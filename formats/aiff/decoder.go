// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/ik5/wavkit/pcm"
)

// chunkSize is the number of samples pulled from the decoder per read.
const chunkSize = 4096

// aiffReader is an interface for aiff.Decoder to allow testing
type aiffReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Decoder decodes AIFF integer PCM into a pcm.Buffer.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (*pcm.Buffer, error) {
	return Decode(r)
}

// Decode reads a whole AIFF stream.
func Decode(r io.Reader) (*pcm.Buffer, error) {
	// go-audio requires io.ReadSeeker
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading aiff data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}

	dec.ReadInfo()

	depth := int(dec.BitDepth)
	if !slices.Contains(pcm.SupportedBitDepths, depth) {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, depth)
	}

	return readAll(dec, depth)
}

// readAll drains dec into a Buffer. A trailing partial frame is dropped.
func readAll(dec aiffReader, bitDepth int) (*pcm.Buffer, error) {
	format := dec.Format()
	if format == nil || format.NumChannels < 1 {
		return nil, ErrUnsupportedAiffLayout
	}

	chunk := &goaudio.IntBuffer{
		Data:   make([]int, chunkSize),
		Format: format,
	}

	var samples []int
	for {
		n, err := dec.PCMBuffer(chunk)
		samples = append(samples, chunk.Data[:n]...)

		if errors.Is(err, io.EOF) || (err == nil && n < len(chunk.Data)) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading aiff samples: %w", err)
		}
	}

	samples = samples[:len(samples)-len(samples)%format.NumChannels]
	if samples == nil {
		samples = []int{}
	}

	return pcm.New(format.SampleRate, bitDepth, format.NumChannels, samples)
}
