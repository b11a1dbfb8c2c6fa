// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ik5/wavkit/formats"
	"github.com/ik5/wavkit/processor"
)

// watchQueueSize bounds the files waiting to be normalized.
const watchQueueSize = 64

type folderWatcher struct {
	env      *env
	registry *formats.Registry
	inDir    string
	outDir   string
	suffix   string
	target   float64
	settle   time.Duration
}

func cmdWatch(e *env, args []string) error {
	fs := e.flags("watch", "")
	in := fs.String("in", ".", "folder to watch")
	out := fs.String("o", "", "output folder")
	target := fs.Float64("target", processor.DefaultTargetLevel, "target peak as a fraction of full scale")
	suffix := fs.String("suffix", processor.DefaultBatchSuffix, "suffix added to output names")
	settle := fs.Duration("settle", 500*time.Millisecond, "delay between a file appearing and reading it")
	if err := parse(fs, args, 0, 0); err != nil {
		return err
	}
	if err := requireOutput(fs, *out); err != nil {
		return err
	}

	if err := os.MkdirAll(*out, 0o755); err != nil {
		return fmt.Errorf("%w: %w", formats.ErrWrite, err)
	}

	w := &folderWatcher{
		env:      e,
		registry: formats.NewDefaultRegistry(),
		inDir:    *in,
		outDir:   *out,
		suffix:   *suffix,
		target:   *target,
		settle:   *settle,
	}

	return w.run(e.ctx)
}

// run watches inDir until ctx is done. Files are normalized one at a time
// in the order they appeared.
func (w *folderWatcher) run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.inDir); err != nil {
		return fmt.Errorf("watching %s: %w", w.inDir, err)
	}
	w.env.logger.Info("watching", "dir", w.inDir, "output", w.outDir)

	jobs := make(chan string, watchQueueSize)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for path := range jobs {
			w.process(ctx, path)
		}
	}()
	defer func() {
		close(jobs)
		<-done
		w.env.logger.Info("stopped watching", "dir", w.inDir)
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Create) || !w.accepts(ev.Name) {
				continue
			}
			w.env.logger.Debug("queued", "file", ev.Name)
			select {
			case jobs <- ev.Name:
			case <-ctx.Done():
				return nil
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.env.logger.Warn("watcher error", "err", err)
		}
	}
}

// accepts reports whether path is a readable audio file that is not one
// of our own outputs.
func (w *folderWatcher) accepts(path string) bool {
	ext := filepath.Ext(path)
	if _, ok := w.registry.Get(ext); !ok {
		return false
	}

	return !strings.HasSuffix(strings.TrimSuffix(path, ext), w.suffix)
}

func (w *folderWatcher) outputPath(input string) string {
	base := filepath.Base(input)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(w.outDir, base+w.suffix+".wav")
}

func (w *folderWatcher) process(ctx context.Context, path string) {
	// give the writer of path time to finish
	select {
	case <-time.After(w.settle):
	case <-ctx.Done():
		return
	}

	res := w.env.proc.NormalizeVolume(path, w.outputPath(path), w.target)
	// failures are already logged by the processor
	_ = w.env.report(res, res.Outcome, func(out io.Writer) {
		fmt.Fprintf(out, "normalized %s -> %s (gain %.3f)\n", path, res.OutputPath, res.GainApplied)
	})
}
