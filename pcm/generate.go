// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"fmt"
	"math"
)

// ToneConfig describes the format of generated audio.
//
// Zero SampleRate, BitDepth or NumChannels fall back to 44100 Hz, 16-bit
// and mono. Amplitude is used as given, so start from DefaultToneConfig
// unless silence is intended.
type ToneConfig struct {
	SampleRate  int
	BitDepth    int
	NumChannels int
	Amplitude   float64 // fraction of full scale, within [0, 1]
}

// DefaultToneConfig returns 44100 Hz, 16-bit, mono at half amplitude.
func DefaultToneConfig() ToneConfig {
	return ToneConfig{
		SampleRate:  44100,
		BitDepth:    16,
		NumChannels: 1,
		Amplitude:   0.5,
	}
}

func (c ToneConfig) withDefaults() ToneConfig {
	def := DefaultToneConfig()
	if c.SampleRate == 0 {
		c.SampleRate = def.SampleRate
	}
	if c.BitDepth == 0 {
		c.BitDepth = def.BitDepth
	}
	if c.NumChannels == 0 {
		c.NumChannels = def.NumChannels
	}

	return c
}

// GenerateTone synthesizes a sine wave of frequency Hz lasting duration
// seconds. Frame i holds round(sin(2π·f·i/rate)·amplitude·MaxValue) on
// every channel.
func GenerateTone(frequency, duration float64, cfg ToneConfig) (*Buffer, error) {
	cfg = cfg.withDefaults()
	if err := validateFormat(cfg.SampleRate, cfg.BitDepth, cfg.NumChannels); err != nil {
		return nil, err
	}
	if cfg.Amplitude < 0 || cfg.Amplitude > 1 || math.IsNaN(cfg.Amplitude) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAmplitude, cfg.Amplitude)
	}

	frames := frameCount(duration, cfg.SampleRate)
	peak := cfg.Amplitude * float64(MaxValue(cfg.BitDepth))
	samples := make([]int, 0, frames*cfg.NumChannels)

	for i := range frames {
		t := float64(i) / float64(cfg.SampleRate)
		v := int(math.Round(math.Sin(2*math.Pi*frequency*t) * peak))
		for range cfg.NumChannels {
			samples = append(samples, v)
		}
	}

	return &Buffer{
		SampleRate:  cfg.SampleRate,
		BitDepth:    cfg.BitDepth,
		NumChannels: cfg.NumChannels,
		Samples:     samples,
	}, nil
}

// GenerateSilence returns duration seconds of zero samples in cfg's format.
// Amplitude is ignored.
func GenerateSilence(duration float64, cfg ToneConfig) (*Buffer, error) {
	cfg = cfg.withDefaults()
	if err := validateFormat(cfg.SampleRate, cfg.BitDepth, cfg.NumChannels); err != nil {
		return nil, err
	}

	return &Buffer{
		SampleRate:  cfg.SampleRate,
		BitDepth:    cfg.BitDepth,
		NumChannels: cfg.NumChannels,
		Samples:     make([]int, frameCount(duration, cfg.SampleRate)*cfg.NumChannels),
	}, nil
}

// frameCount is floor(duration·sampleRate), never negative.
func frameCount(duration float64, sampleRate int) int {
	n := math.Floor(duration * float64(sampleRate))
	if n <= 0 || math.IsNaN(n) {
		return 0
	}

	return int(n)
}
