// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"slices"
	"testing"
)

// mustBuffer builds a Buffer or fails the test.
func mustBuffer(t testing.TB, sampleRate, bitDepth, channels int, samples ...int) *Buffer {
	t.Helper()

	b, err := New(sampleRate, bitDepth, channels, samples)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return b
}

// constant returns frames frames of value on every channel.
func constant(t testing.TB, sampleRate, bitDepth, channels, frames, value int) *Buffer {
	t.Helper()

	samples := make([]int, frames*channels)
	for i := range samples {
		samples[i] = value
	}
	return mustBuffer(t, sampleRate, bitDepth, channels, samples...)
}

func mustTone(t testing.TB, freq, duration float64, cfg ToneConfig) *Buffer {
	t.Helper()

	b, err := GenerateTone(freq, duration, cfg)
	if err != nil {
		t.Fatalf("GenerateTone() error = %v", err)
	}
	return b
}

func assertSamples(t *testing.T, got *Buffer, want ...int) {
	t.Helper()

	if !slices.Equal(got.Samples, want) {
		t.Errorf("samples = %v, want %v", got.Samples, want)
	}
}
