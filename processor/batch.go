// SPDX-License-Identifier: EPL-2.0

package processor

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ik5/wavkit/formats"
	"github.com/ik5/wavkit/pcm"
)

// Operation transforms one buffer inside BatchProcess.
type Operation func(*pcm.Buffer) (*pcm.Buffer, error)

// BatchProcess applies operation to every input in order and writes each
// result to outputDir as <base><suffix>.wav. A failing input is recorded and
// the batch moves on. An empty suffix means DefaultBatchSuffix.
func (p *Processor) BatchProcess(inputs []string, outputDir string, operation Operation, suffix string) BatchResult {
	const op = "batch"
	if suffix == "" {
		suffix = DefaultBatchSuffix
	}
	p.logger.Debug("starting", "op", op, "inputs", len(inputs), "output", outputDir)

	if operation == nil {
		return BatchResult{Outcome: p.failure(op, ErrNilOperation)}
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return BatchResult{Outcome: p.failure(op, fmt.Errorf("%w: %w", formats.ErrWrite, err))}
	}

	res := BatchResult{
		Outcome:    Outcome{Success: true, OutputPath: outputDir},
		TotalFiles: len(inputs),
		Results:    make([]BatchItem, 0, len(inputs)),
	}

	for _, input := range inputs {
		item := p.batchItem(op, input, outputDir, operation, suffix)
		if item.Success {
			res.SuccessCount++
			res.Size += item.Size
		} else {
			p.logger.Warn("batch item failed", "op", op, "input", input, "err", item.Err)
		}
		res.Results = append(res.Results, item)
	}
	res.FailedCount = res.TotalFiles - res.SuccessCount

	p.logger.Info("batch done", "op", op, "succeeded", res.SuccessCount, "failed", res.FailedCount)
	return res
}

func (p *Processor) batchItem(op, input, outputDir string, operation Operation, suffix string) BatchItem {
	item := BatchItem{Input: input}
	fail := func(err error) BatchItem {
		item.Err = err
		item.Message = err.Error()
		return item
	}

	b, err := p.Read(input)
	if err != nil {
		return fail(err)
	}

	processed, err := operation(b)
	if err != nil {
		return fail(fmt.Errorf("processing %s: %w", input, err))
	}
	if processed == nil {
		return fail(fmt.Errorf("processing %s: %w", input, pcm.ErrEmptyInput))
	}

	item.Output = filepath.Join(outputDir, baseName(input)+suffix+".wav")
	out, err := p.write(op, item.Output, processed)
	if err != nil {
		return fail(err)
	}

	item.Success = true
	item.Size = out.Size
	return item
}

// AnalyzeMultiple reports every readable file and aggregates total
// duration, mean RMS and maximum peak over them.
func (p *Processor) AnalyzeMultiple(paths []string) AnalysisSummary {
	p.logger.Debug("starting", "op", "analyze", "inputs", len(paths))

	var sum AnalysisSummary
	for _, path := range paths {
		b, err := p.Read(path)
		if err != nil {
			p.logger.Warn("skipping file", "op", "analyze", "file", path, "err", err)
			sum.Failures = append(sum.Failures, FileFailure{File: path, Message: err.Error(), Err: err})
			continue
		}

		report := pcm.Analyze(b)
		sum.Files = append(sum.Files, FileAnalysis{File: path, Report: report})
		sum.TotalDuration += report.Duration
		sum.AverageRMS += report.RMSLevel
		sum.MaximumPeak = max(sum.MaximumPeak, report.PeakLevel)
	}

	sum.FileCount = len(sum.Files)
	if sum.FileCount > 0 {
		sum.AverageRMS /= float64(sum.FileCount)
	}

	return sum
}
