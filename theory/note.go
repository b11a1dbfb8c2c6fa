// SPDX-License-Identifier: EPL-2.0

package theory

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DefaultOctave is used by ParseNote when the name carries no octave.
const DefaultOctave = 4

// Concert pitch: A4 is MIDI note 69 at 440 Hz.
const (
	concertA     = 440.0
	concertAMIDI = 69
)

const letters = "CDEFGAB"

var naturalPitch = [7]int{0, 2, 4, 5, 7, 9, 11}

var (
	sharpNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
	flatNames  = [12]string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}
)

// Note is a spelled pitch: a letter, an accidental and an octave in
// scientific pitch notation (C4 is middle C).
type Note struct {
	Letter     byte // 'A'..'G'
	Accidental int  // sharps > 0, flats < 0
	Octave     int
}

// ParseNote reads names such as "C", "f#3", "Bb", "Ebb5" or "G-1".
// A missing octave means DefaultOctave.
func ParseNote(s string) (Note, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Note{}, fmt.Errorf("%w: empty", ErrInvalidNote)
	}

	letter := s[0] &^ 0x20 // upper case
	if strings.IndexByte(letters, letter) < 0 {
		return Note{}, fmt.Errorf("%w: %q", ErrInvalidNote, s)
	}

	n := Note{Letter: letter, Octave: DefaultOctave}
	i := 1
accidentals:
	for ; i < len(s); i++ {
		switch s[i] {
		case '#':
			n.Accidental++
		case 'b':
			n.Accidental--
		default:
			break accidentals
		}
	}

	if rest := s[i:]; rest != "" {
		o, err := strconv.Atoi(rest)
		if err != nil {
			return Note{}, fmt.Errorf("%w: %q", ErrInvalidNote, s)
		}
		n.Octave = o
	}

	return n, nil
}

// MustParseNote is like ParseNote but panics on error. It is meant for
// constant note names.
func MustParseNote(s string) Note {
	n, err := ParseNote(s)
	if err != nil {
		panic(err)
	}
	return n
}

func (n Note) letterIndex() int {
	return strings.IndexByte(letters, n.Letter)
}

// Name is the note without its octave, e.g. "F#".
func (n Note) Name() string {
	acc := strings.Repeat("#", max(n.Accidental, 0)) + strings.Repeat("b", max(-n.Accidental, 0))
	return string(n.Letter) + acc
}

func (n Note) String() string {
	return n.Name() + strconv.Itoa(n.Octave)
}

// MIDI returns the MIDI note number; C4 is 60.
func (n Note) MIDI() int {
	return naturalMIDI(n.letterIndex(), n.Octave) + n.Accidental
}

// PitchClass is MIDI modulo 12, in [0, 12).
func (n Note) PitchClass() int {
	return ((n.MIDI() % 12) + 12) % 12
}

// Frequency is the 12-tone equal temperament frequency in Hz.
func (n Note) Frequency() float64 {
	return MIDIFrequency(n.MIDI())
}

// Transpose moves n by semitones and respells the result with sharps.
func (n Note) Transpose(semitones int) Note {
	return FromMIDI(n.MIDI()+semitones, false)
}

func naturalMIDI(letterIndex, octave int) int {
	return (octave+1)*12 + naturalPitch[letterIndex]
}

// spell returns the note with the given letter (index into letters, may
// exceed 6 to move up octaves) that sounds at midi.
func spell(letterIndex, baseOctave, midi int) Note {
	idx := letterIndex % 7
	octave := baseOctave + letterIndex/7

	return Note{
		Letter:     letters[idx],
		Octave:     octave,
		Accidental: midi - naturalMIDI(idx, octave),
	}
}

// FromMIDI spells a MIDI note number with sharps, or flats if flats is set.
func FromMIDI(midi int, flats bool) Note {
	pc := ((midi % 12) + 12) % 12
	name := sharpNames[pc]
	if flats {
		name = flatNames[pc]
	}

	n := Note{Letter: name[0]}
	if len(name) > 1 {
		n.Accidental = 1
		if name[1] == 'b' {
			n.Accidental = -1
		}
	}
	// floor division keeps negative octaves right
	n.Octave = int(math.Floor(float64(midi-naturalPitch[n.letterIndex()]-n.Accidental)/12)) - 1

	return n
}

// NoteName returns the sharp spelling of a MIDI note number, e.g. 61 is "C#4".
func NoteName(midi int) string {
	return FromMIDI(midi, false).String()
}

// MIDIFrequency converts a MIDI note number to Hz.
func MIDIFrequency(midi int) float64 {
	return concertA * math.Pow(2, float64(midi-concertAMIDI)/12)
}

// Frequency parses name and returns its frequency in Hz.
func Frequency(name string) (float64, error) {
	n, err := ParseNote(name)
	if err != nil {
		return 0, err
	}

	return n.Frequency(), nil
}

// FromFrequency returns the nearest equal-tempered note to hz.
func FromFrequency(hz float64) (Note, error) {
	if !(hz > 0) || math.IsInf(hz, 0) {
		return Note{}, fmt.Errorf("%w: frequency %v", ErrInvalidNote, hz)
	}

	midi := int(math.Round(concertAMIDI + 12*math.Log2(hz/concertA)))
	return FromMIDI(midi, false), nil
}
