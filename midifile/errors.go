// SPDX-License-Identifier: EPL-2.0

package midifile

import "errors"

var (
	ErrInvalidTempo    = errors.New("tempo must be positive")
	ErrInvalidMeter    = errors.New("invalid time signature")
	ErrInvalidChannel  = errors.New("MIDI channel must be 0-15")
	ErrInvalidVelocity = errors.New("velocity must be 1-127")
	ErrInvalidPitch    = errors.New("pitch must be 0-127")
	ErrInvalidDuration = errors.New("step duration must be positive")
	ErrWrite           = errors.New("error writing MIDI file")
)
