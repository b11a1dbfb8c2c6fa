// SPDX-License-Identifier: EPL-2.0

// Package pcm is the in-memory buffer engine: a Buffer of interleaved
// integer PCM plus pure, deterministic transforms over it.
//
// # Buffers
//
// A Buffer carries its sample rate, bit depth (8, 16, 24 or 32) and channel
// count next to the samples. len(Samples) is always a multiple of
// NumChannels and every sample fits the signed range of the bit depth:
//
//	b, err := pcm.New(44100, 16, 2, samples)
//
// Transforms never modify their input; each one returns a new Buffer.
//
// # Generating Audio
//
//	tone, _ := pcm.GenerateTone(440, 1.0, pcm.DefaultToneConfig())
//	gap, _ := pcm.GenerateSilence(0.5, pcm.DefaultToneConfig())
//
// # Combining Buffers
//
// Concatenate and Mix accept buffers in any format. Inputs are coerced to
// the first buffer's sample rate, bit depth and channel count before they
// are combined, so a mismatch is never an error:
//
//	joined, err := pcm.Concatenate(tone, gap, tone)
//	mixed, err := pcm.Mix([]*pcm.Buffer{a, b}, []float64{0.7, 0.3})
//
// Mix prevents clipping by scaling the whole result once when the summed
// peak exceeds the bit depth's maximum. ChangeVolume instead clips each
// sample, which is audible and intentional.
//
// # Errors
//
// Concatenate and Mix return ErrEmptyInput when called without buffers.
// Out of range Trim bounds and fades longer than the buffer are not errors.
package pcm
