// SPDX-License-Identifier: EPL-2.0

package pcm

import "math"

// clippingThreshold is the clipped-sample percentage above which a buffer is
// reported as clipping.
const clippingThreshold = 0.1

// Report is a snapshot of a Buffer's level statistics.
type Report struct {
	Duration           float64 `json:"duration"`
	SampleRate         int     `json:"sampleRate"`
	BitDepth           int     `json:"bitDepth"`
	NumChannels        int     `json:"numChannels"`
	RMSLevel           float64 `json:"rmsLevel"`
	PeakLevel          int     `json:"peakLevel"`
	DynamicRange       float64 `json:"dynamicRange"`
	ClippingPercentage float64 `json:"clippingPercentage"`
	IsClipping         bool    `json:"isClipping"`
	ByteSize           int64   `json:"byteSize"`
}

// Analyze measures b. An empty buffer reports zero levels.
func Analyze(b *Buffer) Report {
	limit := MaxValue(b.BitDepth)

	var sumSquares float64
	peak, clipped := 0, 0
	for _, s := range b.Samples {
		sumSquares += float64(s) * float64(s)

		a := s
		if a < 0 {
			a = -a
		}
		peak = max(peak, a)
		if a >= limit {
			clipped++
		}
	}

	var rms, clipping float64
	if n := len(b.Samples); n > 0 {
		rms = math.Sqrt(sumSquares / float64(n))
		clipping = 100 * float64(clipped) / float64(n)
	}

	return Report{
		Duration:           b.Duration(),
		SampleRate:         b.SampleRate,
		BitDepth:           b.BitDepth,
		NumChannels:        b.NumChannels,
		RMSLevel:           rms,
		PeakLevel:          peak,
		DynamicRange:       float64(limit) / max(rms, 1),
		ClippingPercentage: clipping,
		IsClipping:         clipping > clippingThreshold,
		ByteSize:           b.EncodedSize(),
	}
}
