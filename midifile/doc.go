// SPDX-License-Identifier: EPL-2.0

// Package midifile writes note and chord sequences as Standard MIDI Files.
//
// A sequence is a slice of Step values played back to back on one track.
// The track starts with time signature and tempo meta events, followed by
// a note on and note off pair for every pitch of every step:
//
//	notes, _ := theory.ScaleOf("C4", "major")
//	steps, _ := midifile.NoteSteps(notes, 1)
//	_, err := midifile.WriteFile("c-major.mid", steps, midifile.DefaultOptions())
package midifile
