// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"fmt"
	"math"
	"slices"
)

// Trim returns the frames of b between start and end seconds.
//
// Bounds are not validated: values outside [0, Duration] are clamped and an
// inverted range yields an empty buffer.
func Trim(b *Buffer, start, end float64) *Buffer {
	from := clampIndex(frameIndex(start, b.SampleRate)*b.NumChannels, len(b.Samples))
	to := clampIndex(frameIndex(end, b.SampleRate)*b.NumChannels, len(b.Samples))
	if to < from {
		to = from
	}

	return b.withSamples(slices.Clone(b.Samples[from:to]))
}

// frameIndex is floor(seconds·sampleRate), allowing negative results.
func frameIndex(seconds float64, sampleRate int) int {
	v := math.Floor(seconds * float64(sampleRate))
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > math.MaxInt32:
		return math.MaxInt32
	}

	return int(v)
}

func clampIndex(i, n int) int {
	return max(0, min(i, n))
}

// Concatenate appends buffers in order. Every buffer is first coerced to the
// format of the first one.
func Concatenate(buffers ...*Buffer) (*Buffer, error) {
	if len(buffers) == 0 {
		return nil, ErrEmptyInput
	}

	ref := buffers[0]
	total := 0
	coerced := make([]*Buffer, len(buffers))

	for i, b := range buffers {
		c, err := Coerce(b, ref)
		if err != nil {
			return nil, fmt.Errorf("buffer %d: %w", i, err)
		}
		coerced[i] = c
		total += len(c.Samples)
	}

	samples := make([]int, 0, total)
	for _, c := range coerced {
		samples = append(samples, c.Samples...)
	}

	return ref.withSamples(samples), nil
}

// Mix overlays buffers, weighting buffer k by volumes[k]. A nil volumes
// slice weights each buffer by 1/N.
//
// The result is as long as the longest input; shorter inputs contribute
// silence past their end. If the summed peak exceeds MaxValue the whole
// result is scaled down by MaxValue/peak.
func Mix(buffers []*Buffer, volumes []float64) (*Buffer, error) {
	if len(buffers) == 0 {
		return nil, ErrEmptyInput
	}
	if volumes == nil {
		volumes = make([]float64, len(buffers))
		for i := range volumes {
			volumes[i] = 1 / float64(len(buffers))
		}
	}
	if len(volumes) != len(buffers) {
		return nil, fmt.Errorf("%w: %d volumes for %d buffers", ErrVolumeCount, len(volumes), len(buffers))
	}
	for i, v := range volumes {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: volume %d is %v", ErrInvalidVolume, i, v)
		}
	}

	ref := buffers[0]
	coerced := make([]*Buffer, len(buffers))
	length := 0

	for i, b := range buffers {
		c, err := Coerce(b, ref)
		if err != nil {
			return nil, fmt.Errorf("buffer %d: %w", i, err)
		}
		coerced[i] = c
		length = max(length, len(c.Samples))
	}

	mixed := make([]float64, length)
	for k, c := range coerced {
		for i, s := range c.Samples {
			mixed[i] += float64(s) * volumes[k]
		}
	}

	peak := 0.0
	for _, v := range mixed {
		peak = max(peak, math.Abs(v))
	}

	limit := float64(MaxValue(ref.BitDepth))
	scale := 1.0
	if peak > limit {
		scale = limit / peak
	}

	samples := make([]int, length)
	for i, v := range mixed {
		samples[i] = int(math.Round(v * scale))
	}

	return ref.withSamples(samples), nil
}

// fadeLength is floor(duration·sampleRate·numChannels) samples.
func fadeLength(b *Buffer, duration float64) int {
	v := math.Floor(duration * float64(b.SampleRate) * float64(b.NumChannels))
	if math.IsNaN(v) || v <= 0 {
		return 0
	}

	return int(min(v, math.MaxInt32))
}

// FadeIn ramps the first duration seconds of b linearly from 0 to 1.
// Sample i of the ramp is scaled by i/fadeLength.
func FadeIn(b *Buffer, duration float64) *Buffer {
	out := b.Clone()
	length := fadeLength(b, duration)

	for i := 0; i < length && i < len(out.Samples); i++ {
		out.Samples[i] = int(math.Round(float64(out.Samples[i]) * float64(i) / float64(length)))
	}

	return out
}

// FadeOut ramps the last duration seconds of b linearly from 1 down to
// 1/fadeLength. A fade longer than b covers all of it.
func FadeOut(b *Buffer, duration float64) *Buffer {
	out := b.Clone()
	length := fadeLength(b, duration)
	if length == 0 {
		return out
	}

	total := len(out.Samples)
	for i := max(0, total-length); i < total; i++ {
		out.Samples[i] = int(math.Round(float64(out.Samples[i]) * float64(total-i) / float64(length)))
	}

	return out
}

// ChangeVolume multiplies every sample by gain and hard-clips the result to
// [-MaxValue, MaxValue]. Unlike Mix this never rescales: clipping is the
// caller's choice.
func ChangeVolume(b *Buffer, gain float64) *Buffer {
	limit := float64(MaxValue(b.BitDepth))
	samples := make([]int, len(b.Samples))

	for i, s := range b.Samples {
		v := math.Round(float64(s) * gain)
		switch {
		case math.IsNaN(v):
			v = 0
		case v > limit:
			v = limit
		case v < -limit:
			v = -limit
		}
		samples[i] = int(v)
	}

	return b.withSamples(samples)
}

// Reverse reverses the order of frames. Channel order inside a frame is kept.
func Reverse(b *Buffer) *Buffer {
	ch := b.NumChannels
	samples := make([]int, len(b.Samples))

	for f, n := 0, b.Frames(); f < n; f++ {
		copy(samples[f*ch:(f+1)*ch], b.Samples[(n-1-f)*ch:(n-f)*ch])
	}

	return b.withSamples(samples)
}

// ExtractChannel returns channel as a mono buffer.
func ExtractChannel(b *Buffer, channel int) (*Buffer, error) {
	if channel < 0 || channel >= b.NumChannels {
		return nil, fmt.Errorf("%w: %d of %d", ErrInvalidChannelIndex, channel, b.NumChannels)
	}

	samples := make([]int, 0, b.Frames())
	for i := channel; i < len(b.Samples); i += b.NumChannels {
		samples = append(samples, b.Samples[i])
	}

	out := b.withSamples(samples)
	out.NumChannels = 1

	return out, nil
}

// Crossfade joins a and b: a is faded out and cut to its first
// Duration(a)-duration seconds, b is faded in, and the two are concatenated.
// The fades are not summed over a shared region.
func Crossfade(a, b *Buffer, duration float64) (*Buffer, error) {
	out := FadeOut(a, duration)
	in := FadeIn(b, duration)
	head := Trim(out, 0, max(0, out.Duration()-duration))

	return Concatenate(head, in)
}
