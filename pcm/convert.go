// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"fmt"
	"math"
	"slices"

	"github.com/ik5/wavkit/audio"
	"github.com/ik5/wavkit/utils"
)

// Resample reproduces b at sampleRate using cubic interpolation. The output
// holds round(frames·sampleRate/b.SampleRate) frames so the duration in
// seconds is preserved within one frame.
func Resample(b *Buffer, sampleRate int) (*Buffer, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSampleRate, sampleRate)
	}
	if sampleRate == b.SampleRate {
		return b.Clone(), nil
	}

	ch := b.NumChannels
	target := int(math.Round(float64(b.Frames()) * float64(sampleRate) / float64(b.SampleRate)))

	var samples []int
	if b.Frames() > 0 {
		var err error
		samples, err = collect(audio.NewResampler(newBufferSource(b), sampleRate), b.BitDepth, target*ch)
		if err != nil {
			return nil, fmt.Errorf("resampling to %d Hz: %w", sampleRate, err)
		}
	}

	out := b.withSamples(fitFrames(samples, target, ch))
	out.SampleRate = sampleRate

	return out, nil
}

// fitFrames truncates samples to frames frames, or pads it by holding the
// last frame (silence when there is none).
func fitFrames(samples []int, frames, ch int) []int {
	want := frames * ch
	if len(samples) >= want {
		return samples[:want]
	}

	last := make([]int, ch)
	if len(samples) >= ch {
		copy(last, samples[len(samples)-ch:])
	}
	for len(samples) < want {
		samples = append(samples, last...)
	}

	return samples
}

// ChangeBitDepth rescales every sample from b's signed range into the range
// of bitDepth. Widening by a power of two is exact and reversible.
func ChangeBitDepth(b *Buffer, bitDepth int) (*Buffer, error) {
	if !slices.Contains(SupportedBitDepths, bitDepth) {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}
	if bitDepth == b.BitDepth {
		return b.Clone(), nil
	}

	samples := make([]int, len(b.Samples))
	for i, s := range b.Samples {
		samples[i] = utils.FloatToInt(utils.IntToFloat(s, b.BitDepth), bitDepth)
	}

	out := b.withSamples(samples)
	out.BitDepth = bitDepth

	return out, nil
}

// ConvertChannels changes the channel layout of b.
//
// Mono input is duplicated to every output channel. Multi-channel input
// going to mono is folded by averaging each frame. Any other change folds to
// mono first and then duplicates.
func ConvertChannels(b *Buffer, channels int) (*Buffer, error) {
	if channels <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannels, channels)
	}
	if channels == b.NumChannels {
		return b.Clone(), nil
	}

	mono := b
	if b.NumChannels > 1 {
		samples, err := collect(audio.NewMonoMixer(newBufferSource(b)), b.BitDepth, b.Frames())
		if err != nil {
			return nil, fmt.Errorf("folding to mono: %w", err)
		}
		mono = b.withSamples(samples)
		mono.NumChannels = 1
	}

	if channels == 1 {
		return mono, nil
	}

	samples := make([]int, 0, len(mono.Samples)*channels)
	for _, s := range mono.Samples {
		for range channels {
			samples = append(samples, s)
		}
	}

	out := mono.withSamples(samples)
	out.NumChannels = channels

	return out, nil
}

// Coerce converts b to ref's sample rate, bit depth and channel count, in
// that order. Multi-buffer operations call it instead of rejecting
// mismatched inputs.
func Coerce(b, ref *Buffer) (*Buffer, error) {
	out := b
	var err error

	if out.SampleRate != ref.SampleRate {
		if out, err = Resample(out, ref.SampleRate); err != nil {
			return nil, err
		}
	}
	if out.BitDepth != ref.BitDepth {
		if out, err = ChangeBitDepth(out, ref.BitDepth); err != nil {
			return nil, err
		}
	}
	if out.NumChannels != ref.NumChannels {
		if out, err = ConvertChannels(out, ref.NumChannels); err != nil {
			return nil, err
		}
	}

	return out, nil
}
