// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"errors"
	"testing"
)

func TestGenerateTone_Scenario(t *testing.T) {
	t.Parallel()

	tone := mustTone(t, 440, 1.0, DefaultToneConfig())

	if tone.SampleRate != 44100 || tone.BitDepth != 16 || tone.NumChannels != 1 {
		t.Fatalf("format = %s, want 44100 Hz, 16-bit, mono", tone)
	}
	if tone.Frames() != 44100 {
		t.Errorf("Frames() = %d, want 44100", tone.Frames())
	}

	peak := Analyze(tone).PeakLevel
	if peak < 16382 || peak > 16384 {
		t.Errorf("PeakLevel = %d, want ≈16383", peak)
	}
	if tone.Samples[0] != 0 {
		t.Errorf("first sample = %d, want 0", tone.Samples[0])
	}
}

func TestGenerateTone_BroadcastsChannels(t *testing.T) {
	t.Parallel()

	tone := mustTone(t, 1000, 0.01, ToneConfig{SampleRate: 8000, BitDepth: 24, NumChannels: 2, Amplitude: 1})

	if tone.Frames() != 80 {
		t.Fatalf("Frames() = %d, want 80", tone.Frames())
	}
	for f := range tone.Frames() {
		if tone.Samples[2*f] != tone.Samples[2*f+1] {
			t.Fatalf("frame %d: left %d != right %d", f, tone.Samples[2*f], tone.Samples[2*f+1])
		}
	}
	// 1kHz at 8kHz: frame 2 sits on the crest
	if tone.Samples[4] != MaxValue(24) {
		t.Errorf("crest = %d, want %d", tone.Samples[4], MaxValue(24))
	}
	if err := tone.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestGenerateTone_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     ToneConfig
		wantErr error
	}{
		{"amplitude too high", ToneConfig{Amplitude: 1.5}, ErrInvalidAmplitude},
		{"negative amplitude", ToneConfig{Amplitude: -0.1}, ErrInvalidAmplitude},
		{"bad bit depth", ToneConfig{BitDepth: 20, Amplitude: 0.5}, ErrUnsupportedBitDepth},
		{"negative rate", ToneConfig{SampleRate: -1, Amplitude: 0.5}, ErrInvalidSampleRate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := GenerateTone(440, 1, tt.cfg); !errors.Is(err, tt.wantErr) {
				t.Errorf("GenerateTone() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestGenerateSilence(t *testing.T) {
	t.Parallel()

	silence, err := GenerateSilence(0.5, ToneConfig{NumChannels: 2})
	if err != nil {
		t.Fatalf("GenerateSilence() error = %v", err)
	}

	if silence.SampleRate != 44100 || silence.BitDepth != 16 {
		t.Errorf("defaults not applied: %s", silence)
	}
	if len(silence.Samples) != 22050*2 {
		t.Errorf("len(Samples) = %d, want %d", len(silence.Samples), 22050*2)
	}
	for i, s := range silence.Samples {
		if s != 0 {
			t.Fatalf("Samples[%d] = %d, want 0", i, s)
		}
	}
}

func TestGenerateSilence_NegativeDuration(t *testing.T) {
	t.Parallel()

	silence, err := GenerateSilence(-1, DefaultToneConfig())
	if err != nil {
		t.Fatalf("GenerateSilence() error = %v", err)
	}
	if len(silence.Samples) != 0 {
		t.Errorf("len(Samples) = %d, want 0", len(silence.Samples))
	}
}

func BenchmarkGenerateTone(b *testing.B) {
	cfg := DefaultToneConfig()

	b.ReportAllocs()

	for b.Loop() {
		_, _ = GenerateTone(440, 1, cfg)
	}
}
