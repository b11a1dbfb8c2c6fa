// SPDX-License-Identifier: EPL-2.0

package processor

import (
	"log/slog"

	"github.com/ik5/wavkit/formats"
	"github.com/ik5/wavkit/pcm"
)

// Processor runs file-level workflows. It holds no per-call state and may
// be shared.
type Processor struct {
	registry *formats.Registry
	logger   *slog.Logger
}

// Option configures a Processor.
type Option func(*Processor)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(p *Processor) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithRegistry sets the decoders used for inputs.
func WithRegistry(r *formats.Registry) Option {
	return func(p *Processor) {
		if r != nil {
			p.registry = r
		}
	}
}

// New creates a Processor reading every built-in input format.
func New(opts ...Option) *Processor {
	p := &Processor{
		registry: formats.NewDefaultRegistry(),
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Read decodes path. Errors wrap formats.ErrFileRead.
func (p *Processor) Read(path string) (*pcm.Buffer, error) {
	b, err := p.registry.ReadFile(path)
	if err != nil {
		return nil, err
	}

	p.logger.Debug("read audio", "path", path, "format", b.String())
	return b, nil
}

// Write encodes b as WAV at path.
func (p *Processor) Write(path string, b *pcm.Buffer) Outcome {
	out, err := p.write("write", path, b)
	if err != nil {
		return p.failure("write", err)
	}

	return out
}

// AnalyzeResult is the report of a single file.
type AnalyzeResult struct {
	Outcome
	Report pcm.Report `json:"report"`
}

// Analyze reads path and reports its levels. Nothing is written, so
// OutputPath stays empty.
func (p *Processor) Analyze(path string) AnalyzeResult {
	b, err := p.Read(path)
	if err != nil {
		return AnalyzeResult{Outcome: p.failure("analyze", err)}
	}

	return AnalyzeResult{Outcome: Outcome{Success: true}, Report: pcm.Analyze(b)}
}

// readAll decodes paths in order and stops at the first failure.
func (p *Processor) readAll(paths []string) ([]*pcm.Buffer, error) {
	buffers := make([]*pcm.Buffer, 0, len(paths))
	for _, path := range paths {
		b, err := p.Read(path)
		if err != nil {
			return nil, err
		}
		buffers = append(buffers, b)
	}

	return buffers, nil
}

func (p *Processor) write(op, path string, b *pcm.Buffer) (Outcome, error) {
	size, err := formats.WriteFile(path, b)
	if err != nil {
		return Outcome{}, err
	}

	p.logger.Info("wrote audio", "op", op, "output", path, "size", size, "format", b.String())
	return Outcome{Success: true, OutputPath: path, Size: size}, nil
}

func (p *Processor) failure(op string, err error) Outcome {
	p.logger.Warn("operation failed", "op", op, "err", err)
	return Outcome{Err: err, Message: err.Error()}
}
