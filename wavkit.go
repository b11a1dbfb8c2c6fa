// SPDX-License-Identifier: EPL-2.0

package wavkit

import (
	"github.com/ik5/wavkit/formats"
	"github.com/ik5/wavkit/pcm"
)

// Load reads a WAV or AIFF file into memory.
func Load(path string) (*pcm.Buffer, error) {
	return formats.ReadFile(path)
}

// Save writes b to path as WAV and returns the file size in bytes.
func Save(path string, b *pcm.Buffer) (int64, error) {
	return formats.WriteFile(path, b)
}

// ResampleToMono16 is a convenience that converts b to mono 16-bit PCM at
// targetRate, the shape most speech and telephony pipelines expect.
//
// Conversion runs in the order sample rate, bit depth, channel count; see
// pcm.Coerce.
func ResampleToMono16(b *pcm.Buffer, targetRate int) (*pcm.Buffer, error) {
	ref := &pcm.Buffer{SampleRate: targetRate, BitDepth: 16, NumChannels: 1}
	if err := ref.Validate(); err != nil {
		return nil, err
	}

	return pcm.Coerce(b, ref)
}
