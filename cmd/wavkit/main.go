// SPDX-License-Identifier: EPL-2.0

// Command wavkit edits, converts, analyzes and generates WAV files.
//
//	wavkit [-v] [-json] <command> [flags] [files]
//
// Run "wavkit help" for the list of commands.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/ik5/wavkit/processor"
)

var (
	errUsage          = errors.New("usage error")
	errUnknownCommand = errors.New("unknown command")
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return
	}

	fmt.Fprintln(os.Stderr, "wavkit:", err)
	if errors.Is(err, errUsage) || errors.Is(err, errUnknownCommand) {
		os.Exit(2)
	}
	os.Exit(1)
}

// env is what every command receives.
type env struct {
	ctx    context.Context
	out    io.Writer
	errOut io.Writer
	logger *slog.Logger
	proc   *processor.Processor
	json   bool
}

type command struct {
	name    string
	summary string
	run     func(e *env, args []string) error
}

var commands = []command{
	{"combine", "join files end to end", cmdCombine},
	{"mix", "overlay files with optional volumes", cmdMix},
	{"extract", "cut a time range out of a file", cmdExtract},
	{"split", "split a file into fixed length segments", cmdSplit},
	{"normalize", "scale a file to a target peak", cmdNormalize},
	{"crossfade", "join two files with a crossfade", cmdCrossfade},
	{"convert", "change sample rate, bit depth or channels", cmdConvert},
	{"loop", "repeat a file", cmdLoop},
	{"batch", "apply one operation to many files", cmdBatch},
	{"analyze", "print level statistics", cmdAnalyze},
	{"tone", "generate a sine tone", cmdTone},
	{"silence", "generate silence", cmdSilence},
	{"scale", "render a musical scale to WAV and MIDI", cmdScale},
	{"chords", "print or render diatonic chords and progressions", cmdChords},
	{"watch", "normalize every new file dropped into a folder", cmdWatch},
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("wavkit", flag.ContinueOnError)
	fs.SetOutput(stderr)
	verbose := fs.Bool("v", false, "verbose logging")
	asJSON := fs.Bool("json", false, "print results as JSON")
	fs.Usage = func() { usage(stderr, fs) }

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return fmt.Errorf("%w: missing command", errUsage)
	}

	name, rest := fs.Arg(0), fs.Args()[1:]
	if name == "help" {
		usage(stdout, fs)
		return nil
	}

	i := slices.IndexFunc(commands, func(c command) bool { return c.name == name })
	if i < 0 {
		return fmt.Errorf("%w: %q", errUnknownCommand, name)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	e := &env{
		ctx:    ctx,
		out:    stdout,
		errOut: stderr,
		logger: logger,
		proc:   processor.New(processor.WithLogger(logger)),
		json:   *asJSON,
	}

	return commands[i].run(e, rest)
}

func usage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "usage: wavkit [-v] [-json] <command> [flags] [files]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "commands:")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-10s %s\n", c.name, c.summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "global flags:")
	fs.SetOutput(w)
	fs.PrintDefaults()
}

// flags returns the FlagSet of a subcommand. Help and parse errors go to
// stderr, never to the result stream.
func (e *env) flags(name, positional string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(e.errOut)
	fs.Usage = func() {
		fmt.Fprintf(e.errOut, "usage: wavkit %s [flags] %s\n", name, positional)
		fs.PrintDefaults()
	}
	return fs
}

// parse parses args and checks the positional count is within [min, max];
// max < 0 means unbounded.
func parse(fs *flag.FlagSet, args []string, minArgs, maxArgs int) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %s: %w", errUsage, fs.Name(), err)
	}

	n := fs.NArg()
	if n < minArgs || (maxArgs >= 0 && n > maxArgs) {
		return fmt.Errorf("%w: %s: got %d file arguments", errUsage, fs.Name(), n)
	}
	return nil
}

func requireOutput(fs *flag.FlagSet, path string) error {
	if path == "" {
		return fmt.Errorf("%w: %s: -o is required", errUsage, fs.Name())
	}
	return nil
}

// report prints res and returns the workflow error, if any.
func (e *env) report(res any, o processor.Outcome, text func(w io.Writer)) error {
	if e.json {
		enc := json.NewEncoder(e.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return err
		}
	} else if o.Success {
		text(e.out)
	}

	if !o.Success {
		return o.Err
	}
	return nil
}
