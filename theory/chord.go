// SPDX-License-Identifier: EPL-2.0

package theory

import (
	"fmt"
	"strconv"
	"strings"
)

// tone is a chord member: its scale degree (1 = root, 3 = third) and its
// distance from the root in semitones.
type tone struct {
	degree, semitones int
}

// Quality names a chord type by its canonical suffix ("" is a major triad).
type Quality string

const (
	Major      Quality = ""
	Minor      Quality = "m"
	Diminished Quality = "dim"
	Augmented  Quality = "aug"
	Dominant7  Quality = "7"
	Major7     Quality = "maj7"
	Minor7     Quality = "m7"
	HalfDim7   Quality = "m7b5"
	Dim7       Quality = "dim7"
	Sus2       Quality = "sus2"
	Sus4       Quality = "sus4"
)

var qualities = map[Quality][]tone{
	Major:      {{1, 0}, {3, 4}, {5, 7}},
	Minor:      {{1, 0}, {3, 3}, {5, 7}},
	Diminished: {{1, 0}, {3, 3}, {5, 6}},
	Augmented:  {{1, 0}, {3, 4}, {5, 8}},
	Dominant7:  {{1, 0}, {3, 4}, {5, 7}, {7, 10}},
	Major7:     {{1, 0}, {3, 4}, {5, 7}, {7, 11}},
	Minor7:     {{1, 0}, {3, 3}, {5, 7}, {7, 10}},
	HalfDim7:   {{1, 0}, {3, 3}, {5, 6}, {7, 10}},
	Dim7:       {{1, 0}, {3, 3}, {5, 6}, {7, 9}},
	Sus2:       {{1, 0}, {2, 2}, {5, 7}},
	Sus4:       {{1, 0}, {4, 5}, {5, 7}},
}

var qualityAliases = map[string]Quality{
	"":     Major,
	"maj":  Major,
	"M":    Major,
	"m":    Minor,
	"min":  Minor,
	"-":    Minor,
	"dim":  Diminished,
	"°":    Diminished,
	"aug":  Augmented,
	"+":    Augmented,
	"7":    Dominant7,
	"dom7": Dominant7,
	"maj7": Major7,
	"M7":   Major7,
	"m7":   Minor7,
	"min7": Minor7,
	"m7b5": HalfDim7,
	"ø":    HalfDim7,
	"dim7": Dim7,
	"°7":   Dim7,
	"sus2": Sus2,
	"sus4": Sus4,
	"sus":  Sus4,
}

// Chord is a spelled chord in root position.
type Chord struct {
	Root    Note
	Quality Quality
	Notes   []Note
}

// Symbol is the root name followed by the quality, e.g. "F#m7".
func (c Chord) Symbol() string {
	if c.Root.Letter == 0 {
		return ""
	}
	return c.Root.Name() + string(c.Quality)
}

func (c Chord) String() string {
	return c.Symbol()
}

// NewChord builds the chord of quality q on root.
func NewChord(root Note, q Quality) (Chord, error) {
	tones, ok := qualities[q]
	if !ok {
		return Chord{}, fmt.Errorf("%w: %q", ErrUnknownChord, string(q))
	}

	li := root.letterIndex()
	base := root.MIDI()
	notes := make([]Note, len(tones))
	for i, t := range tones {
		notes[i] = spell(li+t.degree-1, root.Octave, base+t.semitones)
	}

	return Chord{Root: root, Quality: q, Notes: notes}, nil
}

// Octave range accepted inside chord symbols.
const (
	MinChordOctave = -1
	MaxChordOctave = 9
)

// ParseChord reads a chord symbol such as "C", "Am", "Bb7", "F#dim" or
// "Gsus4". The root may carry an octave before the quality ("C3maj7");
// digits are read as the quality first, so "G7" is a seventh chord.
func ParseChord(symbol string) (Chord, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return Chord{}, fmt.Errorf("%w: empty", ErrInvalidNote)
	}

	// A "b" right after the letter is always read as a flat.
	end := 1
	for end < len(symbol) && (symbol[end] == '#' || symbol[end] == 'b') {
		end++
	}

	root, err := ParseNote(symbol[:end])
	if err != nil {
		return Chord{}, err
	}

	rest := symbol[end:]
	if q, ok := qualityAliases[rest]; ok {
		return NewChord(root, q)
	}

	// shortest octave prefix that leaves a known quality
	digits := 0
	if strings.HasPrefix(rest, "-") {
		digits = 1
	}
	for i := digits + 1; i <= len(rest) && isDigit(rest[i-1]); i++ {
		q, ok := qualityAliases[rest[i:]]
		if !ok {
			continue
		}

		octave, err := strconv.Atoi(rest[:i])
		if err != nil || octave < MinChordOctave || octave > MaxChordOctave {
			return Chord{}, fmt.Errorf("%w: octave %q in %q", ErrInvalidNote, rest[:i], symbol)
		}
		root.Octave = octave
		return NewChord(root, q)
	}

	return Chord{}, fmt.Errorf("%w: %q", ErrUnknownChord, rest)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// triadQuality classifies a triad by the semitones of its third and fifth.
func triadQuality(third, fifth int) (Quality, bool) {
	switch {
	case third == 4 && fifth == 7:
		return Major, true
	case third == 3 && fifth == 7:
		return Minor, true
	case third == 3 && fifth == 6:
		return Diminished, true
	case third == 4 && fifth == 8:
		return Augmented, true
	}
	return "", false
}
