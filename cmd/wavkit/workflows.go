// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ik5/wavkit/processor"
)

func cmdCombine(e *env, args []string) error {
	fs := e.flags("combine", "input...")
	out := fs.String("o", "", "output WAV file")
	if err := parse(fs, args, 1, -1); err != nil {
		return err
	}
	if err := requireOutput(fs, *out); err != nil {
		return err
	}

	res := e.proc.CombineSequentially(fs.Args(), *out)
	return e.report(res, res.Outcome, func(w io.Writer) {
		fmt.Fprintf(w, "combined %d files into %s (%.3fs, %d bytes)\n", res.NumFiles, res.OutputPath, res.Duration, res.Size)
	})
}

// parseVolumes reads a comma separated list such as "1,0.5".
func parseVolumes(s string) ([]float64, error) {
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	vols := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: volume %q: %w", errUsage, p, err)
		}
		vols[i] = v
	}
	return vols, nil
}

func cmdMix(e *env, args []string) error {
	fs := e.flags("mix", "input...")
	out := fs.String("o", "", "output WAV file")
	volumes := fs.String("volumes", "", "comma separated volume per input (default 1 each)")
	if err := parse(fs, args, 1, -1); err != nil {
		return err
	}
	if err := requireOutput(fs, *out); err != nil {
		return err
	}

	vols, err := parseVolumes(*volumes)
	if err != nil {
		return err
	}
	if vols != nil && len(vols) != fs.NArg() {
		return fmt.Errorf("%w: %d volumes for %d inputs", errUsage, len(vols), fs.NArg())
	}

	inputs := make([]processor.MixInput, fs.NArg())
	for i, path := range fs.Args() {
		inputs[i].Path = path
		if vols != nil {
			inputs[i].Volume = vols[i]
		}
	}

	res := e.proc.MixTogether(inputs, *out)
	return e.report(res, res.Outcome, func(w io.Writer) {
		fmt.Fprintf(w, "mixed %d files into %s (%.3fs, %d bytes)\n", res.NumFiles, res.OutputPath, res.Duration, res.Size)
	})
}

func cmdExtract(e *env, args []string) error {
	fs := e.flags("extract", "input")
	out := fs.String("o", "", "output WAV file")
	start := fs.Float64("start", 0, "start time in seconds")
	end := fs.Float64("end", 0, "end time in seconds")
	if err := parse(fs, args, 1, 1); err != nil {
		return err
	}
	if err := requireOutput(fs, *out); err != nil {
		return err
	}

	res := e.proc.ExtractSegment(fs.Arg(0), *out, *start, *end)
	return e.report(res, res.Outcome, func(w io.Writer) {
		fmt.Fprintf(w, "extracted %.3fs-%.3fs into %s (%.3fs, %d bytes)\n", res.Start, res.End, res.OutputPath, res.Duration, res.Size)
	})
}

func cmdSplit(e *env, args []string) error {
	fs := e.flags("split", "input")
	out := fs.String("o", "", "output directory")
	duration := fs.Float64("duration", 0, "segment length in seconds")
	if err := parse(fs, args, 1, 1); err != nil {
		return err
	}
	if err := requireOutput(fs, *out); err != nil {
		return err
	}

	res := e.proc.SplitIntoSegments(fs.Arg(0), *out, *duration)
	return e.report(res, res.Outcome, func(w io.Writer) {
		for _, s := range res.Segments {
			fmt.Fprintf(w, "%s\t%.3f\t%.3f\n", s.Path, s.Start, s.End)
		}
		fmt.Fprintf(w, "%d segments in %s\n", res.NumSegments, res.OutputPath)
	})
}

func cmdNormalize(e *env, args []string) error {
	fs := e.flags("normalize", "input")
	out := fs.String("o", "", "output WAV file")
	target := fs.Float64("target", processor.DefaultTargetLevel, "target peak as a fraction of full scale")
	if err := parse(fs, args, 1, 1); err != nil {
		return err
	}
	if err := requireOutput(fs, *out); err != nil {
		return err
	}

	res := e.proc.NormalizeVolume(fs.Arg(0), *out, *target)
	return e.report(res, res.Outcome, func(w io.Writer) {
		fmt.Fprintf(w, "normalized %s: peak %d -> %d (gain %.3f)\n", res.OutputPath, res.OriginalPeak, res.NewPeak, res.GainApplied)
	})
}

func cmdCrossfade(e *env, args []string) error {
	fs := e.flags("crossfade", "first second")
	out := fs.String("o", "", "output WAV file")
	duration := fs.Float64("duration", processor.DefaultCrossfadeDuration, "crossfade length in seconds")
	if err := parse(fs, args, 2, 2); err != nil {
		return err
	}
	if err := requireOutput(fs, *out); err != nil {
		return err
	}

	res := e.proc.Crossfade(fs.Arg(0), fs.Arg(1), *out, *duration)
	return e.report(res, res.Outcome, func(w io.Writer) {
		fmt.Fprintf(w, "crossfaded into %s (%.3fs, %d bytes)\n", res.OutputPath, res.Duration, res.Size)
	})
}

func cmdConvert(e *env, args []string) error {
	fs := e.flags("convert", "input")
	out := fs.String("o", "", "output WAV file")
	var opts processor.ConvertOptions
	fs.IntVar(&opts.SampleRate, "rate", 0, "sample rate in Hz (0 keeps)")
	fs.IntVar(&opts.BitDepth, "bits", 0, "bit depth: 8, 16, 24 or 32 (0 keeps)")
	fs.IntVar(&opts.NumChannels, "channels", 0, "channel count (0 keeps)")
	if err := parse(fs, args, 1, 1); err != nil {
		return err
	}
	if err := requireOutput(fs, *out); err != nil {
		return err
	}

	res := e.proc.ConvertFormat(fs.Arg(0), *out, opts)
	return e.report(res, res.Outcome, func(w io.Writer) {
		fmt.Fprintf(w, "converted %s: %d Hz %d-bit %d ch -> %d Hz %d-bit %d ch\n", res.OutputPath,
			res.From.SampleRate, res.From.BitDepth, res.From.NumChannels,
			res.To.SampleRate, res.To.BitDepth, res.To.NumChannels)
	})
}

func cmdLoop(e *env, args []string) error {
	fs := e.flags("loop", "input")
	out := fs.String("o", "", "output WAV file")
	n := fs.Int("n", processor.DefaultRepetitions, "number of repetitions")
	if err := parse(fs, args, 1, 1); err != nil {
		return err
	}
	if err := requireOutput(fs, *out); err != nil {
		return err
	}

	res := e.proc.CreateLoop(fs.Arg(0), *out, *n)
	return e.report(res, res.Outcome, func(w io.Writer) {
		fmt.Fprintf(w, "looped %d times into %s (%.3fs, %d bytes)\n", res.Repetitions, res.OutputPath, res.TotalDuration, res.Size)
	})
}

func cmdAnalyze(e *env, args []string) error {
	fs := e.flags("analyze", "input...")
	if err := parse(fs, args, 1, -1); err != nil {
		return err
	}

	sum := e.proc.AnalyzeMultiple(fs.Args())
	o := processor.Outcome{Success: len(sum.Failures) == 0}
	if !o.Success {
		o.Err = fmt.Errorf("%d of %d files could not be read: %w", len(sum.Failures), fs.NArg(), sum.Failures[0].Err)
	}

	if err := e.report(sum, processor.Outcome{Success: true}, func(w io.Writer) {
		for _, f := range sum.Files {
			fmt.Fprintf(w, "%s\n", f.File)
			fmt.Fprintf(w, "  format:        %d Hz, %d-bit, %d ch\n", f.SampleRate, f.BitDepth, f.NumChannels)
			fmt.Fprintf(w, "  duration:      %.3fs\n", f.Duration)
			fmt.Fprintf(w, "  rms:           %.1f\n", f.RMSLevel)
			fmt.Fprintf(w, "  peak:          %d\n", f.PeakLevel)
			fmt.Fprintf(w, "  dynamic range: %.2f\n", f.DynamicRange)
			fmt.Fprintf(w, "  clipping:      %.3f%% (clipping: %t)\n", f.ClippingPercentage, f.IsClipping)
		}
		if len(sum.Files) > 1 {
			fmt.Fprintf(w, "%d files, %.3fs total, average rms %.1f, max peak %d\n",
				sum.FileCount, sum.TotalDuration, sum.AverageRMS, sum.MaximumPeak)
		}
	}); err != nil {
		return err
	}

	return o.Err
}
