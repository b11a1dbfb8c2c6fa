// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"io"

	"github.com/ik5/wavkit/audio"
	"github.com/ik5/wavkit/utils"
)

// bufferSource streams a Buffer as an audio.Source.
type bufferSource struct {
	buf *Buffer
	pos int
}

var _ audio.Source = (*bufferSource)(nil)

func newBufferSource(b *Buffer) *bufferSource {
	return &bufferSource{buf: b}
}

func (s *bufferSource) SampleRate() int { return s.buf.SampleRate }
func (s *bufferSource) Channels() int   { return s.buf.NumChannels }
func (s *bufferSource) BufSize() int    { return len(s.buf.Samples) }
func (s *bufferSource) Close() error    { return nil }

func (s *bufferSource) ReadSamples(dst []float64) (int, error) {
	ch := s.buf.NumChannels
	n := min(len(dst)/ch*ch, len(s.buf.Samples)-s.pos)
	if n <= 0 {
		return 0, io.EOF
	}

	for i, v := range s.buf.Samples[s.pos : s.pos+n] {
		dst[i] = utils.IntToFloat(v, s.buf.BitDepth)
	}
	s.pos += n

	if s.pos >= len(s.buf.Samples) {
		return n, io.EOF
	}

	return n, nil
}

// collect drains src into integer samples at bitDepth, stopping once limit
// samples have been gathered.
func collect(src audio.Source, bitDepth, limit int) ([]int, error) {
	out := make([]int, 0, limit)
	buf := make([]float64, 4096*src.Channels())

	for len(out) < limit {
		n, err := src.ReadSamples(buf)
		for _, v := range buf[:n] {
			out = append(out, utils.FloatToInt(v, bitDepth))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	return out, nil
}
