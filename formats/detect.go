// SPDX-License-Identifier: EPL-2.0

package formats

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-audio/riff"
)

// Detect sniffs the container of rs from its first bytes and returns its
// format key ("wav" or "aiff"). rs is rewound before returning.
func Detect(rs io.ReadSeeker) (string, error) {
	p := riff.New(rs)
	riffErr := p.ParseHeaders()
	if riffErr == nil && p.Format == riff.WavFormatID {
		return "wav", rewind(rs)
	}

	if err := rewind(rs); err != nil {
		return "", err
	}

	var header [12]byte
	if _, err := io.ReadFull(rs, header[:]); err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnknownFormat, err)
	}
	if err := rewind(rs); err != nil {
		return "", err
	}

	if bytes.Equal(header[0:4], []byte("FORM")) {
		switch string(header[8:12]) {
		case "AIFF", "AIFC":
			return "aiff", nil
		}
	}

	return "", ErrUnknownFormat
}

func rewind(rs io.ReadSeeker) error {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewinding input: %w", err)
	}

	return nil
}
