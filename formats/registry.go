// SPDX-License-Identifier: EPL-2.0

package formats

import (
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/ik5/wavkit/formats/aiff"
	"github.com/ik5/wavkit/formats/wav"
	"github.com/ik5/wavkit/pcm"
)

// Decoder turns an encoded stream into a pcm.Buffer.
type Decoder interface {
	Decode(r io.Reader) (*pcm.Buffer, error)
}

// Registry for decoders by format key, which is a lower-case file
// extension without the dot (e.g., "wav", "aiff").
type Registry struct {
	codecs map[string]Decoder

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
		mtx:    &sync.Mutex{},
	}
}

// NewDefaultRegistry returns a Registry with every built-in decoder.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("wav", wav.Decoder{})
	r.Register("wave", wav.Decoder{})
	r.Register("aif", aiff.Decoder{})
	r.Register("aiff", aiff.Decoder{})

	return r
}

func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[normalize(format)] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[normalize(format)]
	return d, ok
}

// Formats lists the registered keys in sorted order.
func (r *Registry) Formats() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	keys := make([]string, 0, len(r.codecs))
	for k := range r.codecs {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	return keys
}

func normalize(format string) string {
	return strings.ToLower(strings.TrimPrefix(format, "."))
}
