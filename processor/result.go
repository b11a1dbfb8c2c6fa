// SPDX-License-Identifier: EPL-2.0

package processor

import "github.com/ik5/wavkit/pcm"

// Outcome is the part every workflow result shares.
//
// On failure Success is false, Err holds the cause for errors.Is and Message
// its text. Err is not serialized.
type Outcome struct {
	Success    bool   `json:"success"`
	OutputPath string `json:"outputPath,omitempty"`
	Size       int64  `json:"size,omitempty"`
	Message    string `json:"message,omitempty"`
	Err        error  `json:"-"`
}

// Format is the sample format of a buffer.
type Format struct {
	SampleRate  int `json:"sampleRate"`
	BitDepth    int `json:"bitDepth"`
	NumChannels int `json:"numChannels"`
}

func formatOf(b *pcm.Buffer) Format {
	return Format{SampleRate: b.SampleRate, BitDepth: b.BitDepth, NumChannels: b.NumChannels}
}

type CombineResult struct {
	Outcome
	NumFiles int     `json:"numFiles"`
	Duration float64 `json:"duration"`
}

type MixResult struct {
	Outcome
	NumFiles int     `json:"numFiles"`
	Duration float64 `json:"duration"`
}

// SegmentResult describes an extracted segment. Duration is the length
// actually written; RequestedDuration is end - start and differs from it
// when the range runs past the end of the input.
type SegmentResult struct {
	Outcome
	Start             float64 `json:"startTime"`
	End               float64 `json:"endTime"`
	Duration          float64 `json:"duration"`
	RequestedDuration float64 `json:"requestedDuration"`
}

// Segment is one file written by SplitIntoSegments.
type Segment struct {
	Index    int     `json:"index"`
	Path     string  `json:"path"`
	Start    float64 `json:"startTime"`
	End      float64 `json:"endTime"`
	Duration float64 `json:"duration"`
	Size     int64   `json:"size"`
}

// SplitResult lists the segments written. OutputPath is the output directory.
type SplitResult struct {
	Outcome
	NumSegments int       `json:"numSegments"`
	Segments    []Segment `json:"segments"`
}

type NormalizeResult struct {
	Outcome
	GainApplied  float64 `json:"gainApplied"`
	OriginalPeak int     `json:"originalPeak"`
	NewPeak      int     `json:"newPeak"`
}

type CrossfadeResult struct {
	Outcome
	CrossfadeDuration float64 `json:"crossfadeDuration"`
	Duration          float64 `json:"duration"`
}

type ConvertResult struct {
	Outcome
	From Format `json:"from"`
	To   Format `json:"conversions"`
}

type LoopResult struct {
	Outcome
	Repetitions   int     `json:"repetitions"`
	TotalDuration float64 `json:"totalDuration"`
}

// BatchItem is the outcome for one input of BatchProcess.
type BatchItem struct {
	Input   string `json:"input"`
	Output  string `json:"output,omitempty"`
	Success bool   `json:"success"`
	Size    int64  `json:"size,omitempty"`
	Message string `json:"error,omitempty"`
	Err     error  `json:"-"`
}

// BatchResult is successful once the batch ran, even if some items failed.
type BatchResult struct {
	Outcome
	TotalFiles   int         `json:"totalFiles"`
	SuccessCount int         `json:"successCount"`
	FailedCount  int         `json:"failedCount"`
	Results      []BatchItem `json:"results"`
}

// FileAnalysis is the report of one file.
type FileAnalysis struct {
	File string `json:"file"`
	pcm.Report
}

// FileFailure records a file that could not be analyzed.
type FileFailure struct {
	File    string `json:"file"`
	Message string `json:"error"`
	Err     error  `json:"-"`
}

// AnalysisSummary aggregates the reports of several files. Unreadable files
// are listed in Failures and excluded from the statistics.
type AnalysisSummary struct {
	FileCount     int            `json:"fileCount"`
	TotalDuration float64        `json:"totalDuration"`
	AverageRMS    float64        `json:"averageRMS"`
	MaximumPeak   int            `json:"maximumPeak"`
	Files         []FileAnalysis `json:"files"`
	Failures      []FileFailure  `json:"failures,omitempty"`
}
