// SPDX-License-Identifier: EPL-2.0

package pcm

import "errors"

var (
	// ErrEmptyInput is returned by Concatenate and Mix when called without buffers.
	ErrEmptyInput = errors.New("no audio buffers provided")

	ErrUnsupportedBitDepth = errors.New("unsupported bit depth")
	ErrInvalidSampleRate   = errors.New("sample rate must be positive")
	ErrInvalidChannels     = errors.New("channel count must be positive")
	ErrFrameAlignment      = errors.New("sample count is not a multiple of the channel count")
	ErrSampleOutOfRange    = errors.New("sample outside the range of its bit depth")
	ErrInvalidChannelIndex = errors.New("channel index out of range")
	ErrInvalidAmplitude    = errors.New("amplitude must be within [0, 1]")
	ErrVolumeCount         = errors.New("volume count does not match buffer count")
	ErrInvalidVolume       = errors.New("volume must be a finite number")
)
