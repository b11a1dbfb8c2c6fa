// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

var bitDepths = []int{8, 16, 24, 32}

// window converts four integer samples the way the resampler sees them.
func window(bitDepth int, s [4]int) (y0, y1, y2, y3 float64) {
	return IntToFloat(s[0], bitDepth), IntToFloat(s[1], bitDepth),
		IntToFloat(s[2], bitDepth), IntToFloat(s[3], bitDepth)
}

func TestCubicInterpolateKeepsSamples(t *testing.T) {
	t.Parallel()

	for _, depth := range bitDepths {
		fs := int(FullScale(depth))
		frames := [][4]int{
			{0, fs - 1, -fs, 0},
			{-fs, -fs, fs - 1, fs - 1},
			{1, -1, 1, -1},
			{fs/3 + 1, -fs/7, fs/5 - 3, 11},
		}

		for _, f := range frames {
			y0, y1, y2, y3 := window(depth, f)

			if got := CubicInterpolate(y0, y1, y2, y3, 0); got != y1 {
				t.Errorf("%d-bit %v at x=0 = %v, want %v", depth, f, got, y1)
			}
			if got := FloatToInt(CubicInterpolate(y0, y1, y2, y3, 0), depth); got != f[1] {
				t.Errorf("%d-bit %v at x=0 = sample %d, want %d", depth, f, got, f[1])
			}
			if got := FloatToInt(CubicInterpolate(y0, y1, y2, y3, 1), depth); got != f[2] {
				t.Errorf("%d-bit %v at x=1 = sample %d, want %d", depth, f, got, f[2])
			}
		}
	}
}

func TestCubicInterpolateLinearRamp(t *testing.T) {
	t.Parallel()

	// Catmull-Rom reproduces straight lines exactly
	ramp := [4]int{-300_000_000, -100_000_000, 100_000_000, 300_000_000}
	y0, y1, y2, y3 := window(32, ramp)

	tests := []struct {
		x    float64
		want int
	}{
		{0.25, -50_000_000},
		{0.5, 0},
		{0.75, 50_000_000},
	}

	for _, tt := range tests {
		got := FloatToInt(CubicInterpolate(y0, y1, y2, y3, tt.x), 32)
		if got != tt.want {
			t.Errorf("x=%v: got %d, want %d", tt.x, got, tt.want)
		}
	}
}

func TestCubicInterpolateFullScaleStep(t *testing.T) {
	t.Parallel()

	// a full-scale edge rises monotonically and stays inside the sample range
	for _, depth := range bitDepths {
		fs := int(FullScale(depth))
		y0, y1, y2, y3 := window(depth, [4]int{-fs, -fs, fs - 1, fs - 1})

		prev := -fs
		for i := range 9 {
			x := float64(i) / 8
			v := CubicInterpolate(y0, y1, y2, y3, x)
			if math.IsNaN(v) {
				t.Fatalf("%d-bit x=%v: NaN", depth, x)
			}

			s := FloatToInt(v, depth)
			if s < -fs || s > fs-1 {
				t.Errorf("%d-bit x=%v: sample %d outside [%d, %d]", depth, x, s, -fs, fs-1)
			}
			if s < prev {
				t.Errorf("%d-bit x=%v: %d falls below %d on a rising edge", depth, x, s, prev)
			}
			prev = s
		}
	}
}

func TestCubicInterpolateConstant(t *testing.T) {
	t.Parallel()

	for _, depth := range bitDepths {
		top := int(FullScale(depth)) - 1
		y := IntToFloat(top, depth)

		for i := range 5 {
			x := float64(i) / 4
			if got := FloatToInt(CubicInterpolate(y, y, y, y, x), depth); got != top {
				t.Errorf("%d-bit constant %d at x=%v = %d", depth, top, x, got)
			}
		}
	}
}

func TestCubicInterpolateZeroAllocs(t *testing.T) {
	allocs := testing.AllocsPerRun(1000, func() {
		_ = CubicInterpolate(0.5, 1.0, 0.8, 0.3, 0.5)
	})
	if allocs > 0 {
		t.Errorf("CubicInterpolate allocated %v times, want 0", allocs)
	}
}

// BenchmarkCubicInterpolate interpolates one second of 44.1 kHz output
// from 16-bit samples.
func BenchmarkCubicInterpolate(b *testing.B) {
	y0, y1, y2, y3 := window(16, [4]int{1200, -3000, 8000, 400})
	out := make([]int, 44100)

	b.ReportAllocs()
	for b.Loop() {
		for i := range out {
			x := float64(i%100) / 100
			out[i] = FloatToInt(CubicInterpolate(y0, y1, y2, y3, x), 16)
		}
	}
}
