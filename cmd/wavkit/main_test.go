// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ik5/wavkit/formats"
	"github.com/ik5/wavkit/pcm"
	"github.com/ik5/wavkit/processor"
	"github.com/ik5/wavkit/theory"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	err := run(context.Background(), args, &out, io.Discard)
	return out.String(), err
}

func writeTone(t *testing.T, dir, name string, freq, seconds float64) string {
	t.Helper()

	cfg := pcm.DefaultToneConfig()
	cfg.SampleRate = 8000
	b, err := pcm.GenerateTone(freq, seconds, cfg)
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(dir, name)
	if _, err := formats.WriteFile(path, b); err != nil {
		t.Fatal(err)
	}
	return path
}

func readWAV(t *testing.T, path string) *pcm.Buffer {
	t.Helper()

	b, err := formats.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(%s): %v", path, err)
	}
	return b
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-3
}

func TestRunUsage(t *testing.T) {
	t.Parallel()

	if _, err := runCmd(t); !errors.Is(err, errUsage) {
		t.Errorf("no command: error = %v, want errUsage", err)
	}
	if _, err := runCmd(t, "explode"); !errors.Is(err, errUnknownCommand) {
		t.Errorf("unknown command: error = %v", err)
	}
	if _, err := runCmd(t, "-bogus"); err == nil {
		t.Error("unknown global flag: want error")
	}

	out, err := runCmd(t, "help")
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range commands {
		if !strings.Contains(out, c.name) {
			t.Errorf("help does not list %q", c.name)
		}
	}
}

func TestMissingArguments(t *testing.T) {
	t.Parallel()

	tests := [][]string{
		{"combine", "a.wav"},              // no -o
		{"combine", "-o", "out.wav"},      // no inputs
		{"extract", "-o", "x.wav"},        // no input
		{"crossfade", "-o", "x", "a.wav"}, // one input
		{"tone", "-o", "x.wav", "extra"},
		{"batch", "-o", "dir", "-op", "explode", "a.wav"},
		{"mix", "-o", "x.wav", "-volumes", "1,x", "a.wav", "b.wav"},
		{"mix", "-o", "x.wav", "-volumes", "1", "a.wav", "b.wav"},
		{"tone", "-o", "x.wav", "-note", "H2"},
		{"scale", "-mode", "bebop"},
		{"chords", "-progression", "polka"},
	}

	for _, args := range tests {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			t.Parallel()

			if _, err := runCmd(t, args...); !errors.Is(err, errUsage) {
				t.Errorf("error = %v, want errUsage", err)
			}
		})
	}
}

func TestToneAndAnalyze(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "a4.wav")

	out, err := runCmd(t, "tone", "-note", "A4", "-duration", "0.5", "-rate", "8000", "-o", path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "wrote "+path) {
		t.Errorf("output = %q", out)
	}

	out, err = runCmd(t, "-json", "analyze", path)
	if err != nil {
		t.Fatal(err)
	}

	var sum processor.AnalysisSummary
	if err := json.Unmarshal([]byte(out), &sum); err != nil {
		t.Fatalf("decoding %q: %v", out, err)
	}
	if sum.FileCount != 1 || len(sum.Files) != 1 {
		t.Fatalf("summary = %+v", sum)
	}
	f := sum.Files[0]
	if f.SampleRate != 8000 || f.BitDepth != 16 || !near(f.Duration, 0.5) {
		t.Errorf("report = %+v", f.Report)
	}
	if f.PeakLevel < 16000 || f.PeakLevel > 16384 {
		t.Errorf("peak = %d, want about half scale", f.PeakLevel)
	}
}

func TestAnalyzeReportsUnreadable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := writeTone(t, dir, "good.wav", 440, 0.1)

	out, err := runCmd(t, "analyze", good, filepath.Join(dir, "missing.wav"))
	if !errors.Is(err, formats.ErrFileRead) {
		t.Errorf("error = %v, want ErrFileRead", err)
	}
	if !strings.Contains(out, good) {
		t.Errorf("readable file missing from output %q", out)
	}
}

func TestWorkflowCommands(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := writeTone(t, dir, "a.wav", 440, 0.5)
	b := writeTone(t, dir, "b.wav", 660, 0.5)
	out := func(name string) string { return filepath.Join(dir, name) }

	tests := []struct {
		args     []string
		output   string
		duration float64
	}{
		{[]string{"combine", "-o", out("combined.wav"), a, b}, out("combined.wav"), 1},
		{[]string{"mix", "-o", out("mixed.wav"), "-volumes", "0.5,0.5", a, b}, out("mixed.wav"), 0.5},
		{[]string{"extract", "-start", "0.1", "-end", "0.3", "-o", out("cut.wav"), a}, out("cut.wav"), 0.2},
		{[]string{"normalize", "-target", "0.8", "-o", out("norm.wav"), a}, out("norm.wav"), 0.5},
		{[]string{"crossfade", "-duration", "0.1", "-o", out("xfade.wav"), a, b}, out("xfade.wav"), 0.9},
		{[]string{"loop", "-n", "3", "-o", out("loop.wav"), a}, out("loop.wav"), 1.5},
		{[]string{"silence", "-duration", "0.25", "-rate", "8000", "-o", out("quiet.wav")}, out("quiet.wav"), 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.args[0], func(t *testing.T) {
			t.Parallel()

			if _, err := runCmd(t, tt.args...); err != nil {
				t.Fatal(err)
			}
			got := readWAV(t, tt.output)
			if !near(got.Duration(), tt.duration) {
				t.Errorf("duration = %.4f, want %.4f", got.Duration(), tt.duration)
			}
		})
	}
}

func TestNormalizeTarget(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := writeTone(t, dir, "a.wav", 440, 0.5)
	path := filepath.Join(dir, "n.wav")

	if _, err := runCmd(t, "normalize", "-target", "0.5", "-o", path, a); err != nil {
		t.Fatal(err)
	}

	peak := pcm.Analyze(readWAV(t, path)).PeakLevel
	if want := pcm.MaxValue(16) / 2; peak < want-1 || peak > want+1 {
		t.Errorf("peak = %d, want %d", peak, want)
	}
}

func TestNormalizeSilent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	quiet := filepath.Join(dir, "quiet.wav")
	if _, err := runCmd(t, "silence", "-duration", "0.1", "-o", quiet); err != nil {
		t.Fatal(err)
	}

	_, err := runCmd(t, "normalize", "-o", filepath.Join(dir, "n.wav"), quiet)
	if !errors.Is(err, processor.ErrSilentInput) {
		t.Errorf("error = %v, want ErrSilentInput", err)
	}
}

func TestConvertCommand(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := writeTone(t, dir, "a.wav", 440, 0.5)
	path := filepath.Join(dir, "c.wav")

	out, err := runCmd(t, "convert", "-rate", "16000", "-bits", "24", "-channels", "2", "-o", path, a)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "8000 Hz 16-bit 1 ch -> 16000 Hz 24-bit 2 ch") {
		t.Errorf("output = %q", out)
	}

	got := readWAV(t, path)
	if got.SampleRate != 16000 || got.BitDepth != 24 || got.NumChannels != 2 {
		t.Errorf("format = %s", got)
	}
}

func TestSplitCommand(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := writeTone(t, dir, "a.wav", 440, 1)
	segDir := filepath.Join(dir, "segments")

	out, err := runCmd(t, "split", "-duration", "0.3", "-o", segDir, a)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "4 segments") {
		t.Errorf("output = %q", out)
	}

	entries, err := os.ReadDir(segDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 4 {
		t.Errorf("got %d files, want 4", len(entries))
	}
}

func TestBatchCommand(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := writeTone(t, dir, "a.wav", 440, 0.25)
	outDir := filepath.Join(dir, "out")

	out, err := runCmd(t, "batch", "-op", "reverse", "-o", outDir, a, filepath.Join(dir, "missing.wav"))
	if err == nil || !strings.Contains(err.Error(), "1 of 2 files failed") {
		t.Errorf("error = %v", err)
	}
	if !strings.Contains(out, "1 of 2 files processed") {
		t.Errorf("output = %q", out)
	}

	rev := readWAV(t, filepath.Join(outDir, "a"+processor.DefaultBatchSuffix+".wav"))
	orig := readWAV(t, a)
	n := len(orig.Samples)
	if rev.Samples[0] != orig.Samples[n-1] || rev.Samples[n-1] != orig.Samples[0] {
		t.Error("batch reverse did not reverse the samples")
	}
}

func TestBatchOperations(t *testing.T) {
	t.Parallel()

	cfg := pcm.DefaultToneConfig()
	cfg.SampleRate = 8000
	cfg.NumChannels = 2
	b, err := pcm.GenerateTone(440, 0.5, cfg)
	if err != nil {
		t.Fatal(err)
	}

	for name, build := range batchOps {
		got, err := build(0)(b)
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if err := got.Validate(); err != nil {
			t.Errorf("%s produced invalid buffer: %v", name, err)
		}
	}

	mono, _ := batchOps["mono"](0)(b)
	if mono.NumChannels != 1 {
		t.Errorf("mono has %d channels", mono.NumChannels)
	}

	quiet, _ := pcm.GenerateSilence(0.1, cfg)
	if _, err := batchOps["normalize"](0)(quiet); !errors.Is(err, processor.ErrSilentInput) {
		t.Errorf("normalize silence error = %v", err)
	}
}

func TestScaleCommand(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	wavPath := filepath.Join(dir, "scale.wav")
	midPath := filepath.Join(dir, "scale.mid")

	out, err := runCmd(t, "scale", "-tonic", "A3", "-mode", "minor", "-length", "0.1", "-rate", "8000",
		"-o", wavPath, "-midi", midPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "A3 minor: A3 B3 C4 D4 E4 F4 G4 A4") {
		t.Errorf("output = %q", out)
	}

	if got := readWAV(t, wavPath); !near(got.Duration(), 0.8) {
		t.Errorf("duration = %.3f, want 0.8", got.Duration())
	}

	data, err := os.ReadFile(midPath)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("MThd")) {
		t.Error("MIDI file has no MThd header")
	}
}

func TestChordsCommand(t *testing.T) {
	t.Parallel()

	out, err := runCmd(t, "chords", "-key", "C", "-progression", "pop")
	if err != nil {
		t.Fatal(err)
	}
	for _, line := range []string{"I     C      C E G", "V     G      G B D", "vi    Am     A C E", "IV    F      F A C"} {
		if !strings.Contains(out, line) {
			t.Errorf("output %q lacks %q", out, line)
		}
	}

	dir := t.TempDir()
	wavPath := filepath.Join(dir, "prog.wav")
	out, err = runCmd(t, "-json", "chords", "-key", "G3", "-beats", "2", "-bpm", "120", "-rate", "8000", "-o", wavPath)
	if err != nil {
		t.Fatal(err)
	}

	var res chordsResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatal(err)
	}
	if len(res.Chords) != 7 || res.Chords[6].Symbol != "F#dim" {
		t.Errorf("chords = %+v", res.Chords)
	}
	if res.WAV == nil || res.WAV.OutputPath != wavPath {
		t.Errorf("wav outcome = %+v", res.WAV)
	}

	// seven chords of two beats at 120 BPM
	if got := readWAV(t, wavPath); !near(got.Duration(), 7) {
		t.Errorf("duration = %.3f, want 7", got.Duration())
	}
}

func TestWatchCommand(t *testing.T) {
	t.Parallel()

	inDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "normalized")
	src := writeTone(t, t.TempDir(), "src.wav", 440, 0.1)
	data, err := os.ReadFile(src)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	var out bytes.Buffer
	go func() {
		errc <- run(ctx, []string{"watch", "-in", inDir, "-o", outDir, "-settle", "10ms"}, &out, io.Discard)
	}()

	// the watcher may not be registered yet, so keep dropping new files
	// until one of them is processed
	deadline := time.Now().Add(5 * time.Second)
	var found bool
	for i := 0; !found && time.Now().Before(deadline); i++ {
		name := filepath.Join(inDir, fmt.Sprintf("drop%d.wav", i))
		if err := os.WriteFile(name, data, 0o644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(100 * time.Millisecond)

		entries, _ := os.ReadDir(outDir)
		found = len(entries) > 0
	}

	cancel()
	if err := <-errc; err != nil {
		t.Fatalf("watch returned %v", err)
	}
	if !found {
		t.Fatal("no file was normalized")
	}
	if !strings.Contains(out.String(), "normalized ") {
		t.Errorf("output = %q", out.String())
	}
}

func TestWatchAccepts(t *testing.T) {
	t.Parallel()

	w := &folderWatcher{registry: formats.NewDefaultRegistry(), suffix: "_n", outDir: "/out"}

	tests := map[string]bool{
		"in/a.wav":   true,
		"in/a.WAV":   true,
		"in/b.aiff":  true,
		"in/c.txt":   false,
		"in/a_n.wav": false,
		"in/noext":   false,
	}
	for path, want := range tests {
		if got := w.accepts(path); got != want {
			t.Errorf("accepts(%q) = %t, want %t", path, got, want)
		}
	}

	if got := w.outputPath("in/song.aiff"); got != filepath.Join("/out", "song_n.wav") {
		t.Errorf("outputPath = %q", got)
	}
}

func TestChordsArpeggio(t *testing.T) {
	t.Parallel()

	c, err := theory.ParseChord("Am")
	if err != nil {
		t.Fatal(err)
	}

	steps, err := arpeggiate([]theory.Chord{c, c}, "updown", 2)
	if err != nil {
		t.Fatal(err)
	}
	// A C E C per chord, half a beat each
	if len(steps) != 8 || steps[3].Pitches[0] != 72 || steps[3].Beats != 0.5 {
		t.Errorf("steps = %+v", steps)
	}

	if _, err := arpeggiate([]theory.Chord{c}, "sideways", 2); !errors.Is(err, errUsage) {
		t.Errorf("error = %v, want errUsage", err)
	}

	midPath := filepath.Join(t.TempDir(), "arp.mid")
	if _, err := runCmd(t, "chords", "-progression", "jazz", "-arpeggio", "up", "-midi", midPath); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(midPath); err != nil {
		t.Error(err)
	}
}
