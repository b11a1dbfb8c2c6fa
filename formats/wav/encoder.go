// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/wavkit/pcm"
)

// Encode writes b as a canonical 44-byte-header PCM WAV.
// w must be seekable so the chunk sizes can be patched once the data is out.
func Encode(w io.WriteSeeker, b *pcm.Buffer) error {
	if err := b.Validate(); err != nil {
		return err
	}

	data := b.Samples
	if b.BitDepth == 8 {
		data = make([]int, len(b.Samples))
		for i, s := range b.Samples {
			data[i] = s + 128
		}
	}

	enc := wav.NewEncoder(w, b.SampleRate, b.BitDepth, b.NumChannels, formatPCM)

	// Write is called even for an empty buffer: it emits the header.
	err := enc.Write(&audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: b.NumChannels,
			SampleRate:  b.SampleRate,
		},
		Data:           data,
		SourceBitDepth: b.BitDepth,
	})
	if err != nil {
		return fmt.Errorf("writing wav samples: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalizing wav header: %w", err)
	}

	return nil
}

// Marshal returns the WAV encoding of b.
func Marshal(b *pcm.Buffer) ([]byte, error) {
	var f memFile
	if err := Encode(&f, b); err != nil {
		return nil, err
	}

	return f.data, nil
}

// memFile is an in-memory io.WriteSeeker.
type memFile struct {
	data   []byte
	offset int64
}

func (f *memFile) Write(p []byte) (int, error) {
	end := f.offset + int64(len(p))
	if grow := end - int64(len(f.data)); grow > 0 {
		f.data = append(f.data, make([]byte, grow)...)
	}

	copy(f.data[f.offset:end], p)
	f.offset = end

	return len(p), nil
}

func (f *memFile) Seek(offset int64, whence int) (int64, error) {
	var next int64
	switch whence {
	case io.SeekStart:
		next = offset
	case io.SeekCurrent:
		next = f.offset + offset
	case io.SeekEnd:
		next = int64(len(f.data)) + offset
	default:
		return 0, fmt.Errorf("invalid whence: %d", whence)
	}

	if next < 0 {
		return 0, fmt.Errorf("negative position")
	}

	f.offset = next
	return next, nil
}
