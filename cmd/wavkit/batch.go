// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/ik5/wavkit/pcm"
	"github.com/ik5/wavkit/processor"
)

// batchOps builds a batch operation from the -value flag. A zero value
// selects the operation's own default.
var batchOps = map[string]func(value float64) processor.Operation{
	"normalize": func(v float64) processor.Operation {
		if v == 0 {
			v = processor.DefaultTargetLevel
		}
		return func(b *pcm.Buffer) (*pcm.Buffer, error) { return normalize(b, v) }
	},
	"volume": func(v float64) processor.Operation {
		if v == 0 {
			v = 1
		}
		return func(b *pcm.Buffer) (*pcm.Buffer, error) { return pcm.ChangeVolume(b, v), nil }
	},
	"reverse": func(float64) processor.Operation {
		return func(b *pcm.Buffer) (*pcm.Buffer, error) { return pcm.Reverse(b), nil }
	},
	"fadein": func(v float64) processor.Operation {
		return func(b *pcm.Buffer) (*pcm.Buffer, error) { return pcm.FadeIn(b, orDefault(v, 1)), nil }
	},
	"fadeout": func(v float64) processor.Operation {
		return func(b *pcm.Buffer) (*pcm.Buffer, error) { return pcm.FadeOut(b, orDefault(v, 1)), nil }
	},
	"mono": func(float64) processor.Operation {
		return func(b *pcm.Buffer) (*pcm.Buffer, error) { return pcm.ConvertChannels(b, 1) }
	},
	"resample": func(v float64) processor.Operation {
		rate := int(orDefault(v, 44100))
		return func(b *pcm.Buffer) (*pcm.Buffer, error) { return pcm.Resample(b, rate) }
	},
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

// normalize scales b so its peak is target of full scale.
func normalize(b *pcm.Buffer, target float64) (*pcm.Buffer, error) {
	peak := pcm.Analyze(b).PeakLevel
	if peak == 0 {
		return nil, processor.ErrSilentInput
	}

	return pcm.ChangeVolume(b, float64(pcm.MaxValue(b.BitDepth))*target/float64(peak)), nil
}

func cmdBatch(e *env, args []string) error {
	names := slices.Sorted(maps.Keys(batchOps))

	fs := e.flags("batch", "input...")
	out := fs.String("o", "", "output directory")
	opName := fs.String("op", "normalize", "operation: "+strings.Join(names, ", "))
	value := fs.Float64("value", 0, "operation parameter: target level, gain, fade seconds or sample rate")
	suffix := fs.String("suffix", processor.DefaultBatchSuffix, "suffix added to output names")
	if err := parse(fs, args, 1, -1); err != nil {
		return err
	}
	if err := requireOutput(fs, *out); err != nil {
		return err
	}

	build, ok := batchOps[*opName]
	if !ok {
		return fmt.Errorf("%w: unknown batch operation %q", errUsage, *opName)
	}

	res := e.proc.BatchProcess(fs.Args(), *out, build(*value), *suffix)
	if err := e.report(res, res.Outcome, func(w io.Writer) {
		for _, it := range res.Results {
			if it.Success {
				fmt.Fprintf(w, "ok\t%s\t%s\n", it.Input, it.Output)
			} else {
				fmt.Fprintf(w, "failed\t%s\t%s\n", it.Input, it.Message)
			}
		}
		fmt.Fprintf(w, "%d of %d files processed\n", res.SuccessCount, res.TotalFiles)
	}); err != nil {
		return err
	}

	if res.FailedCount > 0 {
		return fmt.Errorf("%d of %d files failed", res.FailedCount, res.TotalFiles)
	}
	return nil
}
