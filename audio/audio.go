// SPDX-License-Identifier: EPL-2.0

package audio

// Source is a pull based stream of interleaved float64 samples in [-1, 1].
//
// The pcm package adapts a Buffer into a Source so that Resampler and
// MonoMixer can be chained over it.
type Source interface {
	// SampleRate in Hz.
	SampleRate() int
	Channels() int

	// ReadSamples fills dst with whole frames and returns the number of
	// samples written, not frames. io.EOF marks the end of the stream and
	// may come together with the last samples.
	ReadSamples(dst []float64) (n int, err error)

	// BufSize hints how many samples a caller should request per read.
	BufSize() int

	Close() error
}
