// SPDX-License-Identifier: EPL-2.0

package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/ik5/wavkit/midifile"
	"github.com/ik5/wavkit/pcm"
	"github.com/ik5/wavkit/processor"
	"github.com/ik5/wavkit/theory"
)

// declick is the fade applied to both ends of every rendered note.
const declick = 0.01

func toneFlags(fs *flag.FlagSet) *pcm.ToneConfig {
	cfg := pcm.DefaultToneConfig()
	fs.IntVar(&cfg.SampleRate, "rate", cfg.SampleRate, "sample rate in Hz")
	fs.IntVar(&cfg.BitDepth, "bits", cfg.BitDepth, "bit depth: 8, 16, 24 or 32")
	fs.IntVar(&cfg.NumChannels, "channels", cfg.NumChannels, "channel count")
	fs.Float64Var(&cfg.Amplitude, "amp", cfg.Amplitude, "amplitude as a fraction of full scale")
	return &cfg
}

func (e *env) writeBuffer(path string, b *pcm.Buffer) error {
	o := e.proc.Write(path, b)
	return e.report(o, o, func(w io.Writer) {
		fmt.Fprintf(w, "wrote %s (%.3fs, %d bytes)\n", o.OutputPath, b.Duration(), o.Size)
	})
}

func cmdTone(e *env, args []string) error {
	fs := e.flags("tone", "")
	out := fs.String("o", "", "output WAV file")
	freq := fs.Float64("freq", 440, "frequency in Hz")
	note := fs.String("note", "", "note name such as A4 or C#3, overrides -freq")
	duration := fs.Float64("duration", 1, "length in seconds")
	cfg := toneFlags(fs)
	if err := parse(fs, args, 0, 0); err != nil {
		return err
	}
	if err := requireOutput(fs, *out); err != nil {
		return err
	}

	if *note != "" {
		f, err := theory.Frequency(*note)
		if err != nil {
			return fmt.Errorf("%w: %w", errUsage, err)
		}
		*freq = f
	}

	b, err := pcm.GenerateTone(*freq, *duration, *cfg)
	if err != nil {
		return err
	}

	return e.writeBuffer(*out, b)
}

func cmdSilence(e *env, args []string) error {
	fs := e.flags("silence", "")
	out := fs.String("o", "", "output WAV file")
	duration := fs.Float64("duration", 1, "length in seconds")
	cfg := toneFlags(fs)
	if err := parse(fs, args, 0, 0); err != nil {
		return err
	}
	if err := requireOutput(fs, *out); err != nil {
		return err
	}

	b, err := pcm.GenerateSilence(*duration, *cfg)
	if err != nil {
		return err
	}

	return e.writeBuffer(*out, b)
}

// renderNotes plays each note for seconds, one after the other.
func renderNotes(notes []theory.Note, seconds float64, cfg pcm.ToneConfig) (*pcm.Buffer, error) {
	parts := make([]*pcm.Buffer, len(notes))
	for i, n := range notes {
		b, err := pcm.GenerateTone(n.Frequency(), seconds, cfg)
		if err != nil {
			return nil, err
		}
		parts[i] = pcm.FadeOut(pcm.FadeIn(b, declick), declick)
	}
	return pcm.Concatenate(parts...)
}

// renderChord plays every note of c at once for seconds.
func renderChord(c theory.Chord, seconds float64, cfg pcm.ToneConfig) (*pcm.Buffer, error) {
	parts := make([]*pcm.Buffer, len(c.Notes))
	for i, n := range c.Notes {
		b, err := pcm.GenerateTone(n.Frequency(), seconds, cfg)
		if err != nil {
			return nil, err
		}
		parts[i] = b
	}

	mixed, err := pcm.Mix(parts, nil)
	if err != nil {
		return nil, err
	}
	return pcm.FadeOut(pcm.FadeIn(mixed, declick), declick), nil
}

// beats converts seconds to quarter notes at bpm.
func beats(seconds, bpm float64) float64 {
	return seconds * bpm / 60
}

type scaleResult struct {
	Tonic string             `json:"tonic"`
	Scale string             `json:"scale"`
	Notes []string           `json:"notes"`
	WAV   *processor.Outcome `json:"wav,omitempty"`
	MIDI  *processor.Outcome `json:"midi,omitempty"`
}

func cmdScale(e *env, args []string) error {
	fs := e.flags("scale", "")
	tonic := fs.String("tonic", "C4", "first note")
	name := fs.String("mode", "major", "scale: "+strings.Join(theory.ScaleNames(), ", "))
	noteLen := fs.Float64("length", 0.5, "seconds per note")
	octave := fs.Bool("octave", true, "end on the tonic an octave up")
	out := fs.String("o", "", "output WAV file")
	midiOut := fs.String("midi", "", "output MIDI file")
	bpm := fs.Float64("bpm", 120, "MIDI tempo")
	cfg := toneFlags(fs)
	if err := parse(fs, args, 0, 0); err != nil {
		return err
	}

	notes, err := theory.ScaleOf(*tonic, *name)
	if err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	if *octave {
		top := notes[0]
		top.Octave++
		notes = append(notes, top)
	}

	res := scaleResult{Tonic: notes[0].String(), Scale: *name}
	for _, n := range notes {
		res.Notes = append(res.Notes, n.String())
	}

	if *out != "" {
		b, err := renderNotes(notes, *noteLen, *cfg)
		if err != nil {
			return err
		}
		o := e.proc.Write(*out, b)
		if !o.Success {
			return o.Err
		}
		res.WAV = &o
	}

	if *midiOut != "" {
		o, err := writeMIDI(*midiOut, *bpm, func() ([]midifile.Step, error) {
			return midifile.NoteSteps(notes, beats(*noteLen, *bpm))
		})
		if err != nil {
			return err
		}
		res.MIDI = o
	}

	return e.report(res, processor.Outcome{Success: true}, func(w io.Writer) {
		fmt.Fprintf(w, "%s %s: %s\n", res.Tonic, res.Scale, strings.Join(res.Notes, " "))
		printWritten(w, res.WAV, res.MIDI)
	})
}

func writeMIDI(path string, bpm float64, steps func() ([]midifile.Step, error)) (*processor.Outcome, error) {
	s, err := steps()
	if err != nil {
		return nil, err
	}

	opts := midifile.DefaultOptions()
	opts.BPM = bpm
	n, err := midifile.WriteFile(path, s, opts)
	if err != nil {
		return nil, err
	}

	return &processor.Outcome{Success: true, OutputPath: path, Size: n}, nil
}

// arpeggiate spreads each chord over its length one note at a time.
func arpeggiate(chords []theory.Chord, pattern string, chordBeats float64) ([]midifile.Step, error) {
	var steps []midifile.Step
	for _, c := range chords {
		one, err := midifile.Arpeggio(c.Notes, pattern, 1, 1)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errUsage, err)
		}
		for _, s := range one {
			s.Beats = chordBeats / float64(len(one))
			steps = append(steps, s)
		}
	}
	return steps, nil
}

func printWritten(w io.Writer, outcomes ...*processor.Outcome) {
	for _, o := range outcomes {
		if o != nil {
			fmt.Fprintf(w, "wrote %s (%d bytes)\n", o.OutputPath, o.Size)
		}
	}
}

type chordInfo struct {
	Numeral string   `json:"numeral"`
	Symbol  string   `json:"symbol"`
	Notes   []string `json:"notes"`
}

type chordsResult struct {
	Key         string             `json:"key"`
	Scale       string             `json:"scale"`
	Progression string             `json:"progression,omitempty"`
	Chords      []chordInfo        `json:"chords"`
	WAV         *processor.Outcome `json:"wav,omitempty"`
	MIDI        *processor.Outcome `json:"midi,omitempty"`
}

func cmdChords(e *env, args []string) error {
	fs := e.flags("chords", "")
	key := fs.String("key", "C4", "tonic of the key")
	scale := fs.String("scale", "major", "seven note scale of the key")
	prog := fs.String("progression", "", "progression: "+strings.Join(theory.ProgressionNames(), ", ")+" (default: every diatonic chord)")
	chordBeats := fs.Float64("beats", 4, "quarter notes per chord")
	bpm := fs.Float64("bpm", 120, "tempo")
	out := fs.String("o", "", "output WAV file")
	midiOut := fs.String("midi", "", "output MIDI file")
	arp := fs.String("arpeggio", "", "write MIDI chords as arpeggios: up, down or updown")
	cfg := toneFlags(fs)
	if err := parse(fs, args, 0, 0); err != nil {
		return err
	}

	tonic, err := theory.ParseNote(*key)
	if err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	var degrees []theory.Degree
	if *prog == "" {
		degrees, err = theory.ChordsInKey(tonic, *scale)
	} else {
		degrees, err = theory.Progression(tonic, *scale, *prog)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	res := chordsResult{Key: tonic.Name(), Scale: *scale, Progression: *prog}
	chords := make([]theory.Chord, len(degrees))
	for i, d := range degrees {
		chords[i] = d.Chord
		res.Chords = append(res.Chords, chordInfo{
			Numeral: d.Numeral,
			Symbol:  d.Chord.Symbol(),
			Notes:   theory.Names(d.Chord.Notes),
		})
	}

	if *out != "" {
		seconds := *chordBeats * 60 / *bpm
		parts := make([]*pcm.Buffer, len(chords))
		for i, c := range chords {
			if parts[i], err = renderChord(c, seconds, *cfg); err != nil {
				return err
			}
		}
		b, err := pcm.Concatenate(parts...)
		if err != nil {
			return err
		}
		o := e.proc.Write(*out, b)
		if !o.Success {
			return o.Err
		}
		res.WAV = &o
	}

	if *midiOut != "" {
		o, err := writeMIDI(*midiOut, *bpm, func() ([]midifile.Step, error) {
			if *arp == "" {
				return midifile.ChordSteps(chords, *chordBeats)
			}
			return arpeggiate(chords, *arp, *chordBeats)
		})
		if err != nil {
			return err
		}
		res.MIDI = o
	}

	return e.report(res, processor.Outcome{Success: true}, func(w io.Writer) {
		for _, c := range res.Chords {
			fmt.Fprintf(w, "%-5s %-6s %s\n", c.Numeral, c.Symbol, strings.Join(c.Notes, " "))
		}
		printWritten(w, res.WAV, res.MIDI)
	})
}
