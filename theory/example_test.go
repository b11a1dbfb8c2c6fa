// SPDX-License-Identifier: EPL-2.0

package theory_test

import (
	"fmt"

	"github.com/ik5/wavkit/theory"
)

func ExampleScaleOf() {
	notes, err := theory.ScaleOf("Bb3", "major")
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(notes)
	// Output: [Bb3 C4 D4 Eb4 F4 G4 A4]
}

func ExampleProgression() {
	chords, _ := theory.Progression(theory.MustParseNote("E"), "major", "pop")
	for _, d := range chords {
		fmt.Printf("%s=%s ", d.Numeral, d.Chord)
	}
	fmt.Println()
	// Output: I=E V=B vi=C#m IV=A
}

func ExampleNote_Frequency() {
	n := theory.MustParseNote("A4")
	fmt.Printf("%s %.1f Hz MIDI %d\n", n, n.Frequency(), n.MIDI())
	// Output: A4 440.0 Hz MIDI 69
}
