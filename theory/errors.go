// SPDX-License-Identifier: EPL-2.0

package theory

import "errors"

var (
	ErrInvalidNote        = errors.New("invalid note name")
	ErrUnknownScale       = errors.New("unknown scale")
	ErrUnknownChord       = errors.New("unknown chord quality")
	ErrUnknownProgression = errors.New("unknown progression")
	ErrInvalidNumeral     = errors.New("invalid roman numeral")

	// ErrNotHeptatonic is returned when diatonic chords are requested for a
	// scale that does not have seven degrees.
	ErrNotHeptatonic = errors.New("scale does not have seven degrees")
)
