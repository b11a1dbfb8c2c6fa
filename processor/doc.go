// SPDX-License-Identifier: EPL-2.0

// Package processor composes pcm operations into file-level workflows.
//
// Each workflow reads its inputs, transforms them in memory and writes a WAV
// file. None of them returns an error: the outcome is reported in a typed
// result whose embedded Outcome says whether it succeeded, where the output
// went and, on failure, why.
//
//	p := processor.New(processor.WithLogger(slog.Default()))
//
//	res := p.SplitIntoSegments("talk.wav", "parts", 30)
//	if !res.Success {
//	    if errors.Is(res.Err, formats.ErrFileRead) {
//	        // input missing or not audio
//	    }
//	    return res.Err
//	}
//	for _, s := range res.Segments {
//	    fmt.Println(s.Path, s.Duration)
//	}
//
// Inputs may be any format known to the processor's registry (WAV and AIFF
// by default). Multi-file workflows convert every input to the format of the
// first one before combining them. Work is sequential; BatchProcess and
// AnalyzeMultiple record per-file failures and continue.
package processor
