// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/wavkit/utils"
)

// Resampler streams from src to target sample rate using cubic interpolation.
// Works on interleaved samples; preserves channel count.
// Includes basic anti-aliasing filtering when downsampling.
type Resampler struct {
	src      Source
	dstRate  int
	step     float64 // source frames advanced per output frame
	channels int

	// window holds 4 frames for cubic interpolation:
	// window[0] = t-1, window[1] = t0, window[2] = t+1, window[3] = t+2
	window [4][]float64
	filled [4]bool
	primed bool

	// Fractional position between window[1] and window[2]
	pos float64

	frame []float64
	eof   bool

	// One-pole low-pass state, only used when downsampling
	lowpass []float64
	alpha   float64
}

// NewResampler wraps src so that it is read back at dstRate.
func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	step := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:      src,
		dstRate:  dstRate,
		step:     step,
		channels: channels,
		frame:    make([]float64, channels),
	}

	if step > 1.0 {
		// Cutoff near the destination Nyquist; cheap, not a proper FIR
		r.alpha = 0.5
		r.lowpass = make([]float64, channels)
	}

	for i := range r.window {
		r.window[i] = make([]float64, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	err := r.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// readFrame pulls one frame from src into r.frame, applying the low-pass
// filter when active. ok is false once the source holds no more frames.
func (r *Resampler) readFrame() (ok bool, err error) {
	if r.eof {
		return false, nil
	}

	n, err := r.src.ReadSamples(r.frame)
	if err == io.EOF {
		r.eof = true
		err = nil
	} else if err != nil {
		return false, fmt.Errorf("%w", err)
	}
	if n < r.channels {
		r.eof = true
		return false, nil
	}

	if r.lowpass != nil {
		for c := range r.channels {
			// y[n] = alpha * x[n] + (1-alpha) * y[n-1]
			r.frame[c] = r.alpha*r.frame[c] + (1-r.alpha)*r.lowpass[c]
			r.lowpass[c] = r.frame[c]
		}
	}

	return true, nil
}

// prime fills the interpolation window starting at the first source frame.
// The history slot mirrors that frame until the window advances.
func (r *Resampler) prime() error {
	r.primed = true

	n, err := r.src.ReadSamples(r.frame)
	if err == io.EOF {
		r.eof = true
	} else if err != nil {
		return fmt.Errorf("%w", err)
	}
	if n < r.channels {
		r.eof = true
		return io.EOF
	}

	if r.lowpass != nil {
		// Seed the filter with the first frame to avoid a warm-up ramp
		copy(r.lowpass, r.frame)
	}
	copy(r.window[0], r.frame)
	copy(r.window[1], r.frame)
	r.filled[1] = true

	for i := 2; i < len(r.window); i++ {
		ok, err := r.readFrame()
		if err != nil {
			return err
		}
		if !ok {
			if i == 2 {
				// Single-frame source: hold it
				copy(r.window[2], r.window[1])
				r.filled[2] = true
			}
			break
		}
		copy(r.window[i], r.frame)
		r.filled[i] = true
	}

	return nil
}

// advance shifts the window by one source frame.
func (r *Resampler) advance() error {
	copy(r.window[0], r.window[1])
	copy(r.window[1], r.window[2])
	copy(r.window[2], r.window[3])
	r.filled[0], r.filled[1], r.filled[2] = r.filled[1], r.filled[2], r.filled[3]

	ok, err := r.readFrame()
	if err != nil {
		return err
	}
	if ok {
		copy(r.window[3], r.frame)
	}
	r.filled[3] = ok

	if !r.filled[2] {
		return io.EOF
	}

	return nil
}

// ReadSamples produces dst samples at r.dstRate.
// dst length should be a multiple of r.channels.
func (r *Resampler) ReadSamples(dst []float64) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	written := 0
	framesNeeded := len(dst) / r.channels

	for written < framesNeeded {
		for r.pos >= 1.0 {
			r.pos -= 1.0
			if err := r.advance(); err != nil {
				if err == io.EOF {
					return written * r.channels, io.EOF
				}
				return written * r.channels, err
			}
		}

		if !r.filled[1] || !r.filled[2] {
			return written * r.channels, io.EOF
		}

		for c := range r.channels {
			y0 := r.window[1][c]
			if r.filled[0] {
				y0 = r.window[0][c]
			}
			y3 := r.window[2][c]
			if r.filled[3] {
				y3 = r.window[3][c]
			}

			dst[written*r.channels+c] = utils.CubicInterpolate(y0, r.window[1][c], r.window[2][c], y3, r.pos)
		}

		written++
		r.pos += r.step
	}

	return written * r.channels, nil
}
