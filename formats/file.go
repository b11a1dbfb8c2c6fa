// SPDX-License-Identifier: EPL-2.0

package formats

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ik5/wavkit/formats/wav"
	"github.com/ik5/wavkit/pcm"
)

var defaultRegistry = NewDefaultRegistry()

// ReadFile decodes path with the default registry.
func ReadFile(path string) (*pcm.Buffer, error) {
	return defaultRegistry.ReadFile(path)
}

// WriteFile encodes b as WAV at path and returns the number of bytes written.
func WriteFile(path string, b *pcm.Buffer) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrWrite, err)
	}

	if err := wav.Encode(f, b); err != nil {
		return 0, errors.Join(fmt.Errorf("%w: %s: %w", ErrWrite, path, err), f.Close())
	}

	size, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, errors.Join(fmt.Errorf("%w: %w", ErrWrite, err), f.Close())
	}

	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrWrite, err)
	}

	return size, nil
}

// Decode picks a decoder by format, falling back to content sniffing when
// format is empty or not registered.
func (r *Registry) Decode(rs io.ReadSeeker, format string) (*pcm.Buffer, error) {
	dec, ok := r.Get(format)
	if !ok {
		detected, err := Detect(rs)
		if err != nil {
			return nil, err
		}

		if dec, ok = r.Get(detected); !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, detected)
		}
	}

	return dec.Decode(rs)
}

// ReadFile opens and decodes path. The extension selects the decoder.
func (r *Registry) ReadFile(path string) (*pcm.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileRead, err)
	}
	defer f.Close()

	b, err := r.Decode(f, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFileRead, path, err)
	}

	return b, nil
}
