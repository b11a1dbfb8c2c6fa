// SPDX-License-Identifier: EPL-2.0

// Package wavkit is a toolkit for manipulating uncompressed PCM audio.
//
// The work is split across subpackages:
//   - pcm holds the Buffer type and every sample-level operation: tone and
//     silence generation, resampling, bit-depth and channel conversion, trim,
//     concatenate, mix, fades, gain, reverse, crossfade and analysis.
//   - formats/wav and formats/aiff decode files into a pcm.Buffer; WAV is
//     also the output format.
//   - formats picks a decoder by extension or content and reads or writes
//     whole files.
//   - processor runs file-level workflows (convert, merge, mix, split, ...)
//     and reports each outcome as a typed result.
//   - theory and midifile turn note names, scales and chords into
//     frequencies and Standard MIDI Files.
//
// # Quick Start
//
//	buf, err := wavkit.Load("voice.aiff")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// 8 kHz mono 16-bit for telephony
//	narrow, err := wavkit.ResampleToMono16(buf, 8000)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if _, err := wavkit.Save("voice-8k.wav", narrow); err != nil {
//	    log.Fatal(err)
//	}
//
// # Audio Processing Pipeline
//
// Resampling and channel folding are built on the streaming primitives of
// the audio subpackage, which can also be used directly:
//
//	resampler := audio.NewResampler(source, 16000)
//	mono := audio.NewMonoMixer(resampler)
//
//	buf := make([]float64, 4096)
//	n, err := mono.ReadSamples(buf)
//
// See the individual subpackages for more detailed documentation.
package wavkit
