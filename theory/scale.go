// SPDX-License-Identifier: EPL-2.0

package theory

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// scales maps a scale name to its semitone offsets from the tonic.
var scales = map[string][]int{
	"major":            {0, 2, 4, 5, 7, 9, 11},
	"minor":            {0, 2, 3, 5, 7, 8, 10},
	"ionian":           {0, 2, 4, 5, 7, 9, 11},
	"dorian":           {0, 2, 3, 5, 7, 9, 10},
	"phrygian":         {0, 1, 3, 5, 7, 8, 10},
	"lydian":           {0, 2, 4, 6, 7, 9, 11},
	"mixolydian":       {0, 2, 4, 5, 7, 9, 10},
	"aeolian":          {0, 2, 3, 5, 7, 8, 10},
	"locrian":          {0, 1, 3, 5, 6, 8, 10},
	"harmonic minor":   {0, 2, 3, 5, 7, 8, 11},
	"melodic minor":    {0, 2, 3, 5, 7, 9, 11},
	"major pentatonic": {0, 2, 4, 7, 9},
	"minor pentatonic": {0, 3, 5, 7, 10},
	"blues":            {0, 3, 5, 6, 7, 10},
	"chromatic":        {0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11},
}

var modes = []string{"ionian", "dorian", "phrygian", "lydian", "mixolydian", "aeolian", "locrian"}

// Modes returns the seven church modes, starting from ionian.
func Modes() []string {
	return slices.Clone(modes)
}

// ScaleNames returns every scale name Scale accepts, sorted.
func ScaleNames() []string {
	return slices.Sorted(maps.Keys(scales))
}

func normalizeScale(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	return strings.Join(strings.Fields(name), " ")
}

func scaleIntervals(name string) ([]int, error) {
	iv, ok := scales[normalizeScale(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScale, name)
	}
	return iv, nil
}

// Scale returns one ascending octave of the named scale starting at tonic.
//
// Seven note scales are spelled with one note per letter, so F major has
// Bb and not A#. Other scales use sharps, or flats when the tonic is
// flat or is F.
func Scale(tonic Note, name string) ([]Note, error) {
	iv, err := scaleIntervals(name)
	if err != nil {
		return nil, err
	}

	root := tonic.MIDI()
	notes := make([]Note, len(iv))

	if len(iv) == 7 {
		li := tonic.letterIndex()
		for i, semis := range iv {
			notes[i] = spell(li+i, tonic.Octave, root+semis)
		}
		return notes, nil
	}

	flats := tonic.Accidental < 0 || (tonic.Letter == 'F' && tonic.Accidental == 0)
	for i, semis := range iv {
		notes[i] = FromMIDI(root+semis, flats)
	}
	notes[0] = tonic

	return notes, nil
}

// ScaleOf parses tonic and calls Scale.
func ScaleOf(tonic, name string) ([]Note, error) {
	n, err := ParseNote(tonic)
	if err != nil {
		return nil, err
	}
	return Scale(n, name)
}

// Names strips octaves from notes.
func Names(notes []Note) []string {
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.Name()
	}
	return out
}
