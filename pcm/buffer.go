// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"fmt"
	"slices"
)

// SupportedBitDepths lists the integer PCM widths a Buffer may carry.
var SupportedBitDepths = []int{8, 16, 24, 32}

// Buffer is an in-memory block of interleaved integer PCM.
//
// Samples holds NumChannels values per frame, so for stereo even indices are
// the left channel and odd indices the right one. Every transform in this
// package returns a new Buffer and leaves its input untouched.
type Buffer struct {
	SampleRate  int
	BitDepth    int
	NumChannels int
	Samples     []int
}

// New builds a Buffer from samples after checking every invariant.
// The returned Buffer takes ownership of samples.
func New(sampleRate, bitDepth, numChannels int, samples []int) (*Buffer, error) {
	b := &Buffer{
		SampleRate:  sampleRate,
		BitDepth:    bitDepth,
		NumChannels: numChannels,
		Samples:     samples,
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}

	return b, nil
}

// Validate reports the first broken invariant of b, if any.
func (b *Buffer) Validate() error {
	if err := validateFormat(b.SampleRate, b.BitDepth, b.NumChannels); err != nil {
		return err
	}

	if len(b.Samples)%b.NumChannels != 0 {
		return fmt.Errorf("%w: %d samples, %d channels", ErrFrameAlignment, len(b.Samples), b.NumChannels)
	}

	lo, hi := SampleRange(b.BitDepth)
	for i, s := range b.Samples {
		if s < lo || s > hi {
			return fmt.Errorf("%w: sample %d = %d at %d-bit", ErrSampleOutOfRange, i, s, b.BitDepth)
		}
	}

	return nil
}

func validateFormat(sampleRate, bitDepth, numChannels int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSampleRate, sampleRate)
	}
	if !slices.Contains(SupportedBitDepths, bitDepth) {
		return fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}
	if numChannels <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidChannels, numChannels)
	}

	return nil
}

// Clone returns a deep copy of b.
func (b *Buffer) Clone() *Buffer {
	return b.withSamples(slices.Clone(b.Samples))
}

// withSamples returns a Buffer in b's format holding samples.
func (b *Buffer) withSamples(samples []int) *Buffer {
	if samples == nil {
		samples = []int{}
	}

	return &Buffer{
		SampleRate:  b.SampleRate,
		BitDepth:    b.BitDepth,
		NumChannels: b.NumChannels,
		Samples:     samples,
	}
}

// Frames returns the number of frames (one sample per channel) in b.
func (b *Buffer) Frames() int {
	return len(b.Samples) / b.NumChannels
}

// Duration returns the playback length of b in seconds.
func (b *Buffer) Duration() float64 {
	return float64(b.Frames()) / float64(b.SampleRate)
}

// SameFormat reports whether b and o agree on rate, depth and channels.
func (b *Buffer) SameFormat(o *Buffer) bool {
	return b.SampleRate == o.SampleRate && b.BitDepth == o.BitDepth && b.NumChannels == o.NumChannels
}

// EncodedSize is the size in bytes of b written as a canonical WAV file.
func (b *Buffer) EncodedSize() int64 {
	return 44 + int64(len(b.Samples))*int64(b.BitDepth/8)
}

func (b *Buffer) String() string {
	return fmt.Sprintf("%d Hz, %d-bit, %d ch, %.3fs", b.SampleRate, b.BitDepth, b.NumChannels, b.Duration())
}

// MaxValue is the largest positive sample at bitDepth: 2^(bitDepth-1) - 1.
func MaxValue(bitDepth int) int {
	return 1<<(bitDepth-1) - 1
}

// SampleRange returns the inclusive signed range of bitDepth.
func SampleRange(bitDepth int) (lo, hi int) {
	return -(1 << (bitDepth - 1)), MaxValue(bitDepth)
}
