// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes Audio Interchange File Format (AIFF) files.
//
// This package uses github.com/go-audio/aiff to decode AIFF files and returns
// their samples as a pcm.Buffer, so an AIFF input can go through every
// operation a WAV input can. There is no encoder: results are written as WAV.
//
// # Supported Formats
//
//   - Uncompressed PCM AIFF
//   - 8, 16, 24 and 32 bits per sample
//   - Any channel count and sample rate
//
// AIFF-C compressed files are not supported.
//
// # Usage
//
//	f, err := os.Open("input.aiff")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Close()
//
//	buf, err := aiff.Decode(f)
//	if errors.Is(err, aiff.ErrNotAiffFile) {
//	    // not an AIFF stream
//	}
//
// The decoder reads the whole file into memory. go-audio needs an
// io.ReadSeeker; other readers are buffered first.
package aiff
