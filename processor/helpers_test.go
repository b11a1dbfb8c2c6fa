// SPDX-License-Identifier: EPL-2.0

package processor

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/ik5/wavkit/formats"
	"github.com/ik5/wavkit/pcm"
)

// save writes b into dir and returns its path.
func save(t *testing.T, dir, name string, b *pcm.Buffer) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if _, err := formats.WriteFile(path, b); err != nil {
		t.Fatalf("WriteFile(%s) error = %v", name, err)
	}
	return path
}

func constantBuffer(t *testing.T, sampleRate, channels int, seconds float64, value int) *pcm.Buffer {
	t.Helper()

	samples := make([]int, int(seconds*float64(sampleRate))*channels)
	for i := range samples {
		samples[i] = value
	}

	b, err := pcm.New(sampleRate, 16, channels, samples)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func tone(t *testing.T, freq, seconds float64, cfg pcm.ToneConfig) *pcm.Buffer {
	t.Helper()

	b, err := pcm.GenerateTone(freq, seconds, cfg)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func load(t *testing.T, path string) *pcm.Buffer {
	t.Helper()

	b, err := formats.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(%s) error = %v", path, err)
	}
	return b
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

// requireSuccess fails the test unless o reports success.
func requireSuccess(t *testing.T, o Outcome) {
	t.Helper()

	if !o.Success {
		t.Fatalf("operation failed: %s", o.Message)
	}
	if o.Err != nil || o.Message != "" {
		t.Errorf("successful outcome carries an error: %v %q", o.Err, o.Message)
	}
}
