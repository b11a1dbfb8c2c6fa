// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes RIFF/WAVE integer PCM.
//
// Decoding and encoding are delegated to github.com/go-audio/wav; this
// package converts between its IntBuffer and pcm.Buffer and normalizes the
// unsigned 8-bit representation to signed samples.
//
// # Supported Formats
//
//   - PCM and WAVE_FORMAT_EXTENSIBLE with integer samples
//   - 8, 16, 24 and 32 bits per sample
//   - Any channel count and sample rate
//
// IEEE float and compressed WAV files are rejected with ErrNotPCM.
//
// # Decoding
//
//	f, _ := os.Open("in.wav")
//	buf, err := wav.Decode(f)
//
// # Encoding
//
// Encode needs an io.WriteSeeker (an *os.File works) because the RIFF and
// data chunk sizes are patched after the samples are written. Marshal
// encodes into memory instead:
//
//	data, err := wav.Marshal(buf)
//
// Every encoded file has a 44-byte header, so its size is
// pcm.Buffer.EncodedSize.
package wav
