// SPDX-License-Identifier: EPL-2.0

package theory

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

var progressions = map[string][]string{
	"pop":   {"I", "V", "vi", "IV"},
	"jazz":  {"ii", "V", "I", "vi"},
	"blues": {"I", "I", "I", "I", "IV", "IV", "I", "I", "V", "IV", "I", "V"},
	"50s":   {"I", "vi", "IV", "V"},
	"rock":  {"I", "bVII", "IV", "I"},
	"edm":   {"vi", "IV", "I", "V"},
}

var numerals = []string{"I", "II", "III", "IV", "V", "VI", "VII"}

// ProgressionNames returns the names Progression accepts, sorted.
func ProgressionNames() []string {
	return slices.Sorted(maps.Keys(progressions))
}

// Degree is a chord placed in a key.
type Degree struct {
	Numeral string // e.g. "ii", "bVII", "vii°"
	Chord   Chord
}

// numeral writes the roman numeral of a triad on the zero based degree.
func numeral(degree int, q Quality) string {
	n := numerals[degree]
	switch q {
	case Minor:
		return strings.ToLower(n)
	case Diminished:
		return strings.ToLower(n) + "°"
	case Augmented:
		return n + "+"
	}
	return n
}

// ChordsInKey returns the diatonic triad on every degree of a seven note
// scale.
func ChordsInKey(tonic Note, scale string) ([]Degree, error) {
	notes, err := Scale(tonic, scale)
	if err != nil {
		return nil, err
	}
	if len(notes) != 7 {
		return nil, fmt.Errorf("%w: %q", ErrNotHeptatonic, scale)
	}

	out := make([]Degree, 7)
	for i, root := range notes {
		third := notes[(i+2)%7].MIDI() - root.MIDI()
		fifth := notes[(i+4)%7].MIDI() - root.MIDI()
		third = (third + 12) % 12
		fifth = (fifth + 12) % 12

		q, ok := triadQuality(third, fifth)
		if !ok {
			return nil, fmt.Errorf("%w: degree %d of %q", ErrUnknownChord, i+1, scale)
		}

		c, err := NewChord(root, q)
		if err != nil {
			return nil, err
		}
		out[i] = Degree{Numeral: numeral(i, q), Chord: c}
	}

	return out, nil
}

// parseNumeral splits a numeral such as "bVII" or "vii°" into its zero
// based degree, chromatic shift and chord quality. Upper case numerals are
// major and lower case ones are minor.
func parseNumeral(s string) (degree, shift int, q Quality, err error) {
	rest := s
	for rest != "" && (rest[0] == 'b' || rest[0] == '#') {
		if rest[0] == 'b' {
			shift--
		} else {
			shift++
		}
		rest = rest[1:]
	}

	suffix := ""
	switch {
	case strings.HasSuffix(rest, "°"):
		suffix, rest = "°", strings.TrimSuffix(rest, "°")
	case strings.HasSuffix(rest, "+"):
		suffix, rest = "+", strings.TrimSuffix(rest, "+")
	}

	upper := strings.ToUpper(rest)
	degree = slices.Index(numerals, upper)
	if degree < 0 || (rest != upper && rest != strings.ToLower(rest)) {
		return 0, 0, "", fmt.Errorf("%w: %q", ErrInvalidNumeral, s)
	}

	switch {
	case suffix == "°":
		q = Diminished
	case suffix == "+":
		q = Augmented
	case rest == upper:
		q = Major
	default:
		q = Minor
	}

	return degree, shift, q, nil
}

// Resolve builds the chord a roman numeral names in the key of tonic.
// Borrowed chords such as "bVII" lower the diatonic root by a semitone.
func Resolve(tonic Note, scale, num string) (Degree, error) {
	notes, err := Scale(tonic, scale)
	if err != nil {
		return Degree{}, err
	}
	if len(notes) != 7 {
		return Degree{}, fmt.Errorf("%w: %q", ErrNotHeptatonic, scale)
	}

	degree, shift, q, err := parseNumeral(num)
	if err != nil {
		return Degree{}, err
	}

	root := notes[degree]
	root.Accidental += shift

	c, err := NewChord(root, q)
	if err != nil {
		return Degree{}, err
	}

	return Degree{Numeral: num, Chord: c}, nil
}

// Progression returns the named progression (see ProgressionNames) in
// the key of tonic.
func Progression(tonic Note, scale, name string) ([]Degree, error) {
	nums, ok := progressions[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProgression, name)
	}

	return ProgressionOf(tonic, scale, nums...)
}

// ProgressionOf resolves a custom list of roman numerals.
func ProgressionOf(tonic Note, scale string, nums ...string) ([]Degree, error) {
	out := make([]Degree, 0, len(nums))
	for _, n := range nums {
		d, err := Resolve(tonic, scale, n)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}

	return out, nil
}
