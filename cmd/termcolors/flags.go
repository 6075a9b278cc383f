// ABOUTME: CLI flag parsing using stdlib flag package
// ABOUTME: Supports --format, --timeout, --retries, --tty, --only, --preview, --verbose, --version

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mauromedda/termcolors/internal/config"
)

var errUsage = errors.New("usage: termcolors [flags] <output-file|->")

type cliArgs struct {
	format  string
	timeout time.Duration
	retries int
	tty     string
	only    []string
	preview bool
	verbose bool
	version bool
	output  string
}

func parseFlags(argv []string, stderr io.Writer) (cliArgs, error) {
	var args cliArgs

	fs := flag.NewFlagSet("termcolors", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, errUsage)
		fs.PrintDefaults()
	}

	fs.StringVar(&args.format, "format", "", "Output format: lua, yaml or json (default lua)")
	fs.DurationVar(&args.timeout, "timeout", 0, "Wait per poll for a reply (default 500ms)")
	fs.IntVar(&args.retries, "retries", 0, "Polls per color before giving up (default 5)")
	fs.StringVar(&args.tty, "tty", "", "Terminal device to query instead of stdin/stdout")
	fs.Func("only", "Query only slots matching a glob like primary/* (repeatable, comma-separated)", func(s string) error {
		for _, p := range strings.Split(s, ",") {
			if p = strings.TrimSpace(p); p != "" {
				args.only = append(args.only, p)
			}
		}
		return nil
	})
	fs.BoolVar(&args.preview, "preview", false, "Print color swatches to stderr after scanning")
	fs.BoolVar(&args.verbose, "verbose", false, "Log every query")
	fs.BoolVar(&args.version, "version", false, "Show version and exit")

	if err := fs.Parse(argv); err != nil {
		return args, err
	}
	if args.version {
		return args, nil
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return args, errUsage
	}
	args.output = fs.Arg(0)
	return args, nil
}

// overrides converts flags into config overrides; zero values defer to
// the config files.
func (a cliArgs) overrides() *config.Settings {
	return &config.Settings{
		TimeoutMS: int(a.timeout / time.Millisecond),
		Retries:   a.retries,
		Format:    a.format,
		TTY:       a.tty,
		Only:      a.only,
		Preview:   a.preview,
		Verbose:   a.verbose,
	}
}
