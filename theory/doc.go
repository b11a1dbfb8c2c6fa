// SPDX-License-Identifier: EPL-2.0

// Package theory spells notes, scales, chords and chord progressions in
// twelve tone equal temperament with A4 at 440 Hz.
//
// Notes follow scientific pitch notation, so middle C is C4 and MIDI
// note 60. Seven note scales and chords are spelled one letter per
// degree:
//
//	notes, _ := theory.ScaleOf("F", "major")
//	theory.Names(notes) // [F G A Bb C D E]
//
// Frequencies from this package feed pcm.GenerateTone, and Degree chords
// feed the midifile package.
package theory
