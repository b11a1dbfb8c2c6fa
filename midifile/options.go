// SPDX-License-Identifier: EPL-2.0

package midifile

import (
	"fmt"
	"math/bits"
)

// Options controls the header and channel data of an encoded file.
type Options struct {
	BPM         float64
	Numerator   uint8
	Denominator uint8 // note value of one beat; a power of two
	Channel     uint8
	Velocity    uint8 // used by steps that leave Velocity at zero
	Resolution  uint16
	Name        string // optional track name
}

// DefaultOptions is 120 BPM in 4/4 on channel 0 at velocity 64, with 960
// ticks per quarter note.
func DefaultOptions() Options {
	return Options{
		BPM:         120,
		Numerator:   4,
		Denominator: 4,
		Channel:     0,
		Velocity:    64,
		Resolution:  960,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.BPM == 0 {
		o.BPM = d.BPM
	}
	if o.Numerator == 0 {
		o.Numerator = d.Numerator
	}
	if o.Denominator == 0 {
		o.Denominator = d.Denominator
	}
	if o.Velocity == 0 {
		o.Velocity = d.Velocity
	}
	if o.Resolution == 0 {
		o.Resolution = d.Resolution
	}
	return o
}

// Validate reports the first invalid field.
func (o Options) Validate() error {
	if !(o.BPM > 0) || o.BPM > 60_000_000 {
		return fmt.Errorf("%w: %v", ErrInvalidTempo, o.BPM)
	}
	if o.Numerator == 0 || o.Denominator == 0 || bits.OnesCount8(o.Denominator) != 1 {
		return fmt.Errorf("%w: %d/%d", ErrInvalidMeter, o.Numerator, o.Denominator)
	}
	if o.Channel > 15 {
		return fmt.Errorf("%w: %d", ErrInvalidChannel, o.Channel)
	}
	if o.Velocity == 0 || o.Velocity > 127 {
		return fmt.Errorf("%w: %d", ErrInvalidVelocity, o.Velocity)
	}
	return nil
}
