// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	// ErrNotWavFile indicates the input is not a RIFF/WAVE stream
	ErrNotWavFile = errors.New("not a WAV file")

	// ErrNotPCM indicates a WAV file whose format tag is not integer PCM
	ErrNotPCM = errors.New("WAV file is not integer PCM")

	// ErrUnsupportedBitDepth indicates a PCM width other than 8, 16, 24 or 32 bits
	ErrUnsupportedBitDepth = errors.New("unsupported WAV bit depth")
)
