// SPDX-License-Identifier: EPL-2.0

package midifile

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/ik5/wavkit/theory"
)

// Step is one event of a sequence: every pitch starts together and lasts
// Beats quarter notes. A step without pitches is a rest.
type Step struct {
	Pitches  []uint8
	Beats    float64
	Velocity uint8 // 0 uses Options.Velocity
}

// Rest returns a silent step.
func Rest(beats float64) Step {
	return Step{Beats: beats}
}

// NoteSteps turns each note into its own step of the given length.
func NoteSteps(notes []theory.Note, beats float64) ([]Step, error) {
	steps := make([]Step, len(notes))
	for i, n := range notes {
		p, err := pitch(n)
		if err != nil {
			return nil, err
		}
		steps[i] = Step{Pitches: []uint8{p}, Beats: beats}
	}
	return steps, nil
}

// ChordSteps turns each chord into a step that sounds all of its notes.
func ChordSteps(chords []theory.Chord, beats float64) ([]Step, error) {
	steps := make([]Step, len(chords))
	for i, c := range chords {
		ps := make([]uint8, len(c.Notes))
		for j, n := range c.Notes {
			p, err := pitch(n)
			if err != nil {
				return nil, err
			}
			ps[j] = p
		}
		steps[i] = Step{Pitches: ps, Beats: beats}
	}
	return steps, nil
}

func pitch(n theory.Note) (uint8, error) {
	m := n.MIDI()
	if m < 0 || m > 127 {
		return 0, fmt.Errorf("%w: %s", ErrInvalidPitch, n)
	}
	return uint8(m), nil
}

// ticks converts a length in quarter notes to ticks, rounding to nearest.
func ticks(beats float64, res smf.MetricTicks) uint32 {
	return uint32(math.Round(beats * float64(res.Ticks4th())))
}

func validateStep(i int, s Step) error {
	if !(s.Beats > 0) || math.IsInf(s.Beats, 0) {
		return fmt.Errorf("%w: step %d has %v beats", ErrInvalidDuration, i, s.Beats)
	}
	if s.Velocity > 127 {
		return fmt.Errorf("%w: step %d velocity %d", ErrInvalidVelocity, i, s.Velocity)
	}
	for _, p := range s.Pitches {
		if p > 127 {
			return fmt.Errorf("%w: step %d pitch %d", ErrInvalidPitch, i, p)
		}
	}
	return nil
}

// Build lays steps out on a single track of a new SMF. Zero option fields
// take their DefaultOptions value.
func Build(steps []Step, opts Options) (*smf.SMF, error) {
	opts = opts.withDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	res := smf.MetricTicks(opts.Resolution)

	var tr smf.Track
	if opts.Name != "" {
		tr.Add(0, smf.MetaTrackSequenceName(opts.Name))
	}
	tr.Add(0, smf.MetaMeter(opts.Numerator, opts.Denominator))
	tr.Add(0, smf.MetaTempo(opts.BPM))

	var pending uint32 // ticks since the last event
	for i, s := range steps {
		if err := validateStep(i, s); err != nil {
			return nil, err
		}

		length := ticks(s.Beats, res)
		if len(s.Pitches) == 0 {
			pending += length
			continue
		}

		vel := s.Velocity
		if vel == 0 {
			vel = opts.Velocity
		}

		for j, p := range s.Pitches {
			delta := uint32(0)
			if j == 0 {
				delta = pending
			}
			tr.Add(delta, midi.NoteOn(opts.Channel, p, vel))
		}
		for j, p := range s.Pitches {
			delta := uint32(0)
			if j == 0 {
				delta = length
			}
			tr.Add(delta, midi.NoteOff(opts.Channel, p))
		}
		pending = 0
	}
	tr.Close(pending)

	s := smf.New()
	s.TimeFormat = res
	if err := s.Add(tr); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWrite, err)
	}

	return s, nil
}

// Encode writes steps as a Standard MIDI File and returns the number of
// bytes written.
func Encode(w io.Writer, steps []Step, opts Options) (int64, error) {
	s, err := Build(steps, opts)
	if err != nil {
		return 0, err
	}

	n, err := s.WriteTo(w)
	if err != nil {
		return n, fmt.Errorf("%w: %w", ErrWrite, err)
	}

	return n, nil
}

// Marshal is Encode into memory.
func Marshal(steps []Step, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := Encode(&buf, steps, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile encodes steps to path, replacing any existing file.
func WriteFile(path string, steps []Step, opts Options) (int64, error) {
	data, err := Marshal(steps, opts)
	if err != nil {
		return 0, err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}

	return int64(len(data)), nil
}
