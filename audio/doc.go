// SPDX-License-Identifier: EPL-2.0

// Package audio provides the streaming primitives the buffer engine builds on.
//
//   - Source: a pull-based stream of interleaved float64 samples in [-1, 1]
//   - Resampler: sample rate conversion with Catmull-Rom cubic interpolation
//   - MonoMixer: folds any channel count into mono by averaging each frame
//
// # Resampling
//
//	resampler := audio.NewResampler(source, 16000)
//	buf := make([]float64, 4096)
//	n, err := resampler.ReadSamples(buf)
//
// When downsampling a one-pole low-pass filter runs in front of the
// interpolator to tame aliasing. It is deliberately simple.
//
// # Channel Mixing
//
//	mono := audio.NewMonoMixer(source)
//
// # Sample Format
//
// Samples are float64 so that 32-bit integer PCM survives the trip through
// a Source without losing precision. The pcm package converts between its
// integer buffers and this representation.
//
// # Error Handling
//
// ReadSamples returns io.EOF when no more data is available, possibly together
// with the final samples:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    process(buf[:n])
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
package audio
