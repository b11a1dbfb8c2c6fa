// SPDX-License-Identifier: EPL-2.0

package processor

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/ik5/wavkit/formats"
	"github.com/ik5/wavkit/pcm"
)

func TestBatchProcess(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := save(t, dir, "a.wav", mustRamp(t, 1, 2, 3, 4))
	b := save(t, dir, "b.wav", mustRamp(t, 5, 6))
	missing := filepath.Join(dir, "missing.wav")
	outputDir := filepath.Join(dir, "out")

	reverse := func(b *pcm.Buffer) (*pcm.Buffer, error) { return pcm.Reverse(b), nil }

	res := New().BatchProcess([]string{a, missing, b}, outputDir, reverse, "")
	requireSuccess(t, res.Outcome)

	if res.TotalFiles != 3 || res.SuccessCount != 2 || res.FailedCount != 1 {
		t.Errorf("totals = %d/%d/%d, want 3/2/1", res.TotalFiles, res.SuccessCount, res.FailedCount)
	}
	if len(res.Results) != 3 {
		t.Fatalf("len(Results) = %d, want 3", len(res.Results))
	}

	first := res.Results[0]
	if !first.Success || first.Output != filepath.Join(outputDir, "a_processed.wav") {
		t.Errorf("Results[0] = %+v", first)
	}
	if got := load(t, first.Output).Samples; !slices.Equal(got, []int{4, 3, 2, 1}) {
		t.Errorf("processed samples = %v, want [4 3 2 1]", got)
	}

	failed := res.Results[1]
	if failed.Success || failed.Input != missing || !errors.Is(failed.Err, formats.ErrFileRead) || failed.Message == "" {
		t.Errorf("Results[1] = %+v, want a read failure", failed)
	}

	if res.Results[2].Input != b || !res.Results[2].Success {
		t.Errorf("Results[2] = %+v, want success for b", res.Results[2])
	}
	if res.Size != res.Results[0].Size+res.Results[2].Size {
		t.Errorf("Size = %d, want sum of item sizes", res.Size)
	}
}

func TestBatchProcess_Suffix(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := save(t, dir, "take.wav", mustRamp(t, 1, 2))

	identity := func(b *pcm.Buffer) (*pcm.Buffer, error) { return b, nil }
	res := New().BatchProcess([]string{a}, dir, identity, "_v2")
	requireSuccess(t, res.Outcome)

	if _, err := os.Stat(filepath.Join(dir, "take_v2.wav")); err != nil {
		t.Errorf("output missing: %v", err)
	}
}

func TestBatchProcess_OperationErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := save(t, dir, "a.wav", mustRamp(t, 1, 2))
	b := save(t, dir, "b.wav", mustRamp(t, 3, 4))
	boom := errors.New("boom")

	calls := 0
	op := func(buf *pcm.Buffer) (*pcm.Buffer, error) {
		calls++
		if calls == 1 {
			return nil, boom
		}
		return nil, nil
	}

	res := New().BatchProcess([]string{a, b}, dir, op, "")
	requireSuccess(t, res.Outcome)

	if res.SuccessCount != 0 || res.FailedCount != 2 {
		t.Errorf("totals = %d ok, %d failed; want 0, 2", res.SuccessCount, res.FailedCount)
	}
	if !errors.Is(res.Results[0].Err, boom) {
		t.Errorf("Results[0].Err = %v, want boom", res.Results[0].Err)
	}
	if !errors.Is(res.Results[1].Err, pcm.ErrEmptyInput) {
		t.Errorf("Results[1].Err = %v, want ErrEmptyInput", res.Results[1].Err)
	}
}

func TestBatchProcess_Failures(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	p := New()

	if res := p.BatchProcess(nil, dir, nil, ""); !errors.Is(res.Err, ErrNilOperation) {
		t.Errorf("Err = %v, want ErrNilOperation", res.Err)
	}

	// a regular file where the output directory should go
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	identity := func(b *pcm.Buffer) (*pcm.Buffer, error) { return b, nil }
	if res := p.BatchProcess(nil, filepath.Join(blocker, "out"), identity, ""); !errors.Is(res.Err, formats.ErrWrite) {
		t.Errorf("Err = %v, want ErrWrite", res.Err)
	}
}

func TestAnalyzeMultiple(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := save(t, dir, "a.wav", constantBuffer(t, 8000, 1, 1, 300))
	b := save(t, dir, "b.wav", constantBuffer(t, 8000, 2, 0.5, -900))
	missing := filepath.Join(dir, "missing.wav")

	sum := New().AnalyzeMultiple([]string{a, missing, b})

	if sum.FileCount != 2 || len(sum.Files) != 2 {
		t.Fatalf("FileCount = %d, want 2", sum.FileCount)
	}
	if !approx(sum.TotalDuration, 1.5) {
		t.Errorf("TotalDuration = %v, want 1.5", sum.TotalDuration)
	}
	if !approx(sum.AverageRMS, 600) {
		t.Errorf("AverageRMS = %v, want 600", sum.AverageRMS)
	}
	if sum.MaximumPeak != 900 {
		t.Errorf("MaximumPeak = %d, want 900", sum.MaximumPeak)
	}
	if sum.Files[0].File != a || sum.Files[1].File != b {
		t.Errorf("files out of order: %s, %s", sum.Files[0].File, sum.Files[1].File)
	}

	if len(sum.Failures) != 1 || sum.Failures[0].File != missing || !errors.Is(sum.Failures[0].Err, formats.ErrFileRead) {
		t.Errorf("Failures = %+v, want the missing file", sum.Failures)
	}
}

func TestAnalyzeMultiple_Empty(t *testing.T) {
	t.Parallel()

	sum := New().AnalyzeMultiple(nil)
	if sum.FileCount != 0 || sum.AverageRMS != 0 || math.IsNaN(sum.AverageRMS) {
		t.Errorf("summary = %+v, want zeros", sum)
	}
}

func mustRamp(t *testing.T, samples ...int) *pcm.Buffer {
	t.Helper()

	b, err := pcm.New(8000, 16, 1, samples)
	if err != nil {
		t.Fatal(err)
	}
	return b
}
