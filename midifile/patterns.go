// SPDX-License-Identifier: EPL-2.0

package midifile

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ik5/wavkit/theory"
)

// DrumChannel is General MIDI channel 10, counted from zero.
const DrumChannel = 9

// General MIDI percussion keys.
var drums = map[string]uint8{
	"kick":      36,
	"snare":     38,
	"hihat":     42,
	"openhihat": 46,
	"crash":     49,
	"ride":      51,
	"tom1":      48,
	"tom2":      45,
	"tom3":      43,
}

// DrumKey returns the General MIDI key of a drum name such as "kick" or
// "openHihat".
func DrumKey(name string) (uint8, bool) {
	k, ok := drums[strings.ToLower(name)]
	return k, ok
}

// DrumStep hits the named drums together. Play the result with
// Options.Channel set to DrumChannel.
func DrumStep(beats float64, names ...string) (Step, error) {
	s := Step{Beats: beats, Pitches: make([]uint8, len(names))}
	for i, n := range names {
		k, ok := DrumKey(n)
		if !ok {
			return Step{}, fmt.Errorf("%w: unknown drum %q", ErrInvalidPitch, n)
		}
		s.Pitches[i] = k
	}
	return s, nil
}

// Arpeggio patterns.
const (
	Up     = "up"
	Down   = "down"
	UpDown = "updown"
)

// Arpeggio plays notes one at a time in the given pattern, repeats times.
// UpDown climbs and descends without repeating the top and bottom notes.
func Arpeggio(notes []theory.Note, pattern string, repeats int, beats float64) ([]Step, error) {
	var seq []theory.Note
	switch pattern {
	case Up:
		seq = notes
	case Down:
		seq = slices.Clone(notes)
		slices.Reverse(seq)
	case UpDown:
		seq = slices.Clone(notes)
		for i := len(notes) - 2; i > 0; i-- {
			seq = append(seq, notes[i])
		}
	default:
		return nil, fmt.Errorf("unknown arpeggio pattern %q", pattern)
	}

	one, err := NoteSteps(seq, beats)
	if err != nil {
		return nil, err
	}

	steps := make([]Step, 0, len(one)*max(repeats, 0))
	for range repeats {
		steps = append(steps, one...)
	}
	return steps, nil
}
