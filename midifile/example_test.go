// SPDX-License-Identifier: EPL-2.0

package midifile_test

import (
	"bytes"
	"fmt"

	"github.com/ik5/wavkit/midifile"
	"github.com/ik5/wavkit/theory"
)

func ExampleEncode() {
	chords, _ := theory.Progression(theory.MustParseNote("C4"), "major", "pop")

	cs := make([]theory.Chord, len(chords))
	for i, d := range chords {
		cs[i] = d.Chord
	}

	steps, err := midifile.ChordSteps(cs, 4)
	if err != nil {
		fmt.Println(err)
		return
	}

	var buf bytes.Buffer
	if _, err := midifile.Encode(&buf, steps, midifile.DefaultOptions()); err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(string(buf.Bytes()[:4]), len(steps))
	// Output: MThd 4
}
