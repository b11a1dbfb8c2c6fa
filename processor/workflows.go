// SPDX-License-Identifier: EPL-2.0

package processor

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/ik5/wavkit/formats"
	"github.com/ik5/wavkit/pcm"
)

// Defaults applied when the corresponding argument is zero.
const (
	DefaultTargetLevel       = 0.9
	DefaultCrossfadeDuration = 2.0
	DefaultRepetitions       = 4
	DefaultBatchSuffix       = "_processed"
)

// segmentEpsilon absorbs float error in totalDuration/segmentDuration so an
// exact multiple does not produce an extra empty segment.
const segmentEpsilon = 1e-9

// CombineSequentially concatenates inputs in order into output. Every input
// is converted to the format of the first one.
func (p *Processor) CombineSequentially(inputs []string, output string) CombineResult {
	const op = "combine"
	p.logger.Debug("starting", "op", op, "inputs", len(inputs), "output", output)

	res, err := p.combine(op, inputs, output)
	if err != nil {
		return CombineResult{Outcome: p.failure(op, err)}
	}

	return res
}

func (p *Processor) combine(op string, inputs []string, output string) (CombineResult, error) {
	buffers, err := p.readAll(inputs)
	if err != nil {
		return CombineResult{}, err
	}

	combined, err := pcm.Concatenate(buffers...)
	if err != nil {
		return CombineResult{}, err
	}

	out, err := p.write(op, output, combined)
	if err != nil {
		return CombineResult{}, err
	}

	return CombineResult{Outcome: out, NumFiles: len(inputs), Duration: combined.Duration()}, nil
}

// MixInput is one file of MixTogether. A zero Volume means 1.0.
type MixInput struct {
	Path   string  `json:"path"`
	Volume float64 `json:"volume"`
}

// MixTogether overlays inputs into output. The mix is scaled down as a whole
// if its peak would clip.
func (p *Processor) MixTogether(inputs []MixInput, output string) MixResult {
	const op = "mix"
	p.logger.Debug("starting", "op", op, "inputs", len(inputs), "output", output)

	res, err := p.mix(op, inputs, output)
	if err != nil {
		return MixResult{Outcome: p.failure(op, err)}
	}

	return res
}

func (p *Processor) mix(op string, inputs []MixInput, output string) (MixResult, error) {
	paths := make([]string, len(inputs))
	volumes := make([]float64, len(inputs))
	for i, in := range inputs {
		paths[i] = in.Path
		volumes[i] = in.Volume
		if volumes[i] == 0 {
			volumes[i] = 1
		}
	}

	buffers, err := p.readAll(paths)
	if err != nil {
		return MixResult{}, err
	}

	mixed, err := pcm.Mix(buffers, volumes)
	if err != nil {
		return MixResult{}, err
	}

	out, err := p.write(op, output, mixed)
	if err != nil {
		return MixResult{}, err
	}

	return MixResult{Outcome: out, NumFiles: len(inputs), Duration: mixed.Duration()}, nil
}

// ExtractSegment writes the [start, end) seconds of input to output.
// Out-of-range bounds are clamped, not rejected.
func (p *Processor) ExtractSegment(input, output string, start, end float64) SegmentResult {
	const op = "extract"
	p.logger.Debug("starting", "op", op, "input", input, "start", start, "end", end)

	b, err := p.Read(input)
	if err != nil {
		return SegmentResult{Outcome: p.failure(op, err)}
	}

	segment := pcm.Trim(b, start, end)
	out, err := p.write(op, output, segment)
	if err != nil {
		return SegmentResult{Outcome: p.failure(op, err)}
	}

	return SegmentResult{
		Outcome:           out,
		Start:             start,
		End:               end,
		Duration:          segment.Duration(),
		RequestedDuration: end - start,
	}
}

// SplitIntoSegments cuts input into consecutive segments of
// segmentDuration seconds, the last one possibly shorter, and writes them
// to outputDir as <base>_segment_<n>.wav. outputDir is created if needed.
func (p *Processor) SplitIntoSegments(input, outputDir string, segmentDuration float64) SplitResult {
	const op = "split"
	p.logger.Debug("starting", "op", op, "input", input, "segment", segmentDuration)

	res, err := p.split(op, input, outputDir, segmentDuration)
	if err != nil {
		return SplitResult{Outcome: p.failure(op, err)}
	}

	return res
}

func (p *Processor) split(op, input, outputDir string, segmentDuration float64) (SplitResult, error) {
	if !(segmentDuration > 0) {
		return SplitResult{}, fmt.Errorf("%w: %v", ErrInvalidSegmentDuration, segmentDuration)
	}

	b, err := p.Read(input)
	if err != nil {
		return SplitResult{}, err
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return SplitResult{}, fmt.Errorf("%w: %w", formats.ErrWrite, err)
	}

	total := b.Duration()
	count := int(math.Ceil(total/segmentDuration - segmentEpsilon))
	base := baseName(input)

	res := SplitResult{
		Outcome:  Outcome{Success: true, OutputPath: outputDir},
		Segments: make([]Segment, 0, count),
	}

	for i := range count {
		start := float64(i) * segmentDuration
		end := min(float64(i+1)*segmentDuration, total)
		path := filepath.Join(outputDir, fmt.Sprintf("%s_segment_%d.wav", base, i+1))

		segment := pcm.Trim(b, start, end)
		out, err := p.write(op, path, segment)
		if err != nil {
			return SplitResult{}, err
		}

		res.Size += out.Size
		res.Segments = append(res.Segments, Segment{
			Index:    i + 1,
			Path:     path,
			Start:    start,
			End:      end,
			Duration: segment.Duration(),
			Size:     out.Size,
		})
	}
	res.NumSegments = len(res.Segments)

	return res, nil
}

// NormalizeVolume scales input so its peak reaches targetLevel of full
// scale. A zero targetLevel means DefaultTargetLevel.
func (p *Processor) NormalizeVolume(input, output string, targetLevel float64) NormalizeResult {
	const op = "normalize"
	if targetLevel == 0 {
		targetLevel = DefaultTargetLevel
	}
	p.logger.Debug("starting", "op", op, "input", input, "target", targetLevel)

	b, err := p.Read(input)
	if err != nil {
		return NormalizeResult{Outcome: p.failure(op, err)}
	}

	peak := pcm.Analyze(b).PeakLevel
	if peak == 0 {
		return NormalizeResult{Outcome: p.failure(op, fmt.Errorf("%w: %s", ErrSilentInput, input))}
	}

	gain := float64(pcm.MaxValue(b.BitDepth)) * targetLevel / float64(peak)
	normalized := pcm.ChangeVolume(b, gain)

	out, err := p.write(op, output, normalized)
	if err != nil {
		return NormalizeResult{Outcome: p.failure(op, err)}
	}

	return NormalizeResult{
		Outcome:      out,
		GainApplied:  gain,
		OriginalPeak: peak,
		NewPeak:      pcm.Analyze(normalized).PeakLevel,
	}
}

// Crossfade joins first and second with a fade of duration seconds; see
// pcm.Crossfade. A zero duration means DefaultCrossfadeDuration.
func (p *Processor) Crossfade(first, second, output string, duration float64) CrossfadeResult {
	const op = "crossfade"
	if duration == 0 {
		duration = DefaultCrossfadeDuration
	}
	p.logger.Debug("starting", "op", op, "first", first, "second", second, "duration", duration)

	buffers, err := p.readAll([]string{first, second})
	if err != nil {
		return CrossfadeResult{Outcome: p.failure(op, err)}
	}

	joined, err := pcm.Crossfade(buffers[0], buffers[1], duration)
	if err != nil {
		return CrossfadeResult{Outcome: p.failure(op, err)}
	}

	out, err := p.write(op, output, joined)
	if err != nil {
		return CrossfadeResult{Outcome: p.failure(op, err)}
	}

	return CrossfadeResult{Outcome: out, CrossfadeDuration: duration, Duration: joined.Duration()}
}

// ConvertOptions selects the output format of ConvertFormat. Zero fields keep
// the input's value.
type ConvertOptions struct {
	SampleRate  int
	BitDepth    int
	NumChannels int
}

// ConvertFormat rewrites input in a new format, converting sample rate, then
// bit depth, then channel count, and only where the target differs.
func (p *Processor) ConvertFormat(input, output string, opts ConvertOptions) ConvertResult {
	const op = "convert"
	p.logger.Debug("starting", "op", op, "input", input, "options", opts)

	b, err := p.Read(input)
	if err != nil {
		return ConvertResult{Outcome: p.failure(op, err)}
	}

	target := &pcm.Buffer{SampleRate: b.SampleRate, BitDepth: b.BitDepth, NumChannels: b.NumChannels}
	if opts.SampleRate != 0 {
		target.SampleRate = opts.SampleRate
	}
	if opts.BitDepth != 0 {
		target.BitDepth = opts.BitDepth
	}
	if opts.NumChannels != 0 {
		target.NumChannels = opts.NumChannels
	}

	converted, err := pcm.Coerce(b, target)
	if err != nil {
		return ConvertResult{Outcome: p.failure(op, err)}
	}

	out, err := p.write(op, output, converted)
	if err != nil {
		return ConvertResult{Outcome: p.failure(op, err)}
	}

	return ConvertResult{Outcome: out, From: formatOf(b), To: formatOf(converted)}
}

// CreateLoop writes repetitions back-to-back copies of input. Zero
// repetitions means DefaultRepetitions.
func (p *Processor) CreateLoop(input, output string, repetitions int) LoopResult {
	const op = "loop"
	if repetitions == 0 {
		repetitions = DefaultRepetitions
	}
	p.logger.Debug("starting", "op", op, "input", input, "repetitions", repetitions)

	if repetitions < 0 {
		return LoopResult{Outcome: p.failure(op, fmt.Errorf("%w: %d", ErrInvalidRepetitions, repetitions))}
	}

	b, err := p.Read(input)
	if err != nil {
		return LoopResult{Outcome: p.failure(op, err)}
	}

	copies := make([]*pcm.Buffer, repetitions)
	for i := range copies {
		copies[i] = b
	}

	looped, err := pcm.Concatenate(copies...)
	if err != nil {
		return LoopResult{Outcome: p.failure(op, err)}
	}

	out, err := p.write(op, output, looped)
	if err != nil {
		return LoopResult{Outcome: p.failure(op, err)}
	}

	return LoopResult{Outcome: out, Repetitions: repetitions, TotalDuration: looped.Duration()}
}

// baseName is the file name of path without its extension.
func baseName(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}
