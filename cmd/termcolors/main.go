// ABOUTME: CLI entry point: scans the terminal palette and writes it as lua/yaml/json
// ABOUTME: The terminal mode is restored on every exit path, including interrupts

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/mauromedda/termcolors/internal/config"
	"github.com/mauromedda/termcolors/internal/log"
	"github.com/mauromedda/termcolors/internal/render"
	"github.com/mauromedda/termcolors/internal/termfix"
	"github.com/mauromedda/termcolors/pkg/colorquery"
	"github.com/mauromedda/termcolors/pkg/palette"
	"github.com/mauromedda/termcolors/pkg/terminal"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

const (
	exitOK          = 0
	exitError       = 1
	exitUsage       = 2
	exitInterrupted = 130

	controllingTTY = "/dev/tty"
)

func main() {
	defer terminal.RestoreOnPanic()

	args, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(exitOK)
		}
		os.Exit(exitUsage)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, args, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run performs the scan and writes the artifact; it returns the exit code.
func run(ctx context.Context, args cliArgs, stdout, stderr io.Writer) int {
	if args.version {
		fmt.Fprintf(stdout, "termcolors %s (%s) built %s\n", version, commit, date)
		return exitOK
	}
	if args.verbose {
		log.SetLevel(log.LevelDebug)
	}

	cwd, err := os.Getwd()
	if err != nil {
		log.Error("getting working directory: %v", err)
		return exitError
	}
	cfg, err := config.LoadAll(cwd, args.overrides())
	if err != nil {
		log.Error("loading config: %v", err)
		return exitError
	}
	if cfg.Verbose {
		log.SetLevel(log.LevelDebug)
	}

	format, err := render.ParseFormat(cfg.Format)
	if err != nil {
		log.Error("%v", err)
		return exitError
	}

	tbl := palette.DefaultTable()
	sel, unmatched, err := palette.Filter(tbl, cfg.Only)
	if err != nil {
		log.Error("%v", err)
		return exitError
	}
	for _, u := range unmatched {
		if len(u.Suggestions) > 0 {
			log.Warn("pattern %q matches no color; did you mean %v?", u.Pattern, u.Suggestions)
		} else {
			log.Warn("pattern %q matches no color", u.Pattern)
		}
	}

	pal, err := scan(ctx, cfg, tbl, sel)
	if errors.Is(err, context.Canceled) {
		log.Warn("interrupted; terminal restored, nothing written")
		return exitInterrupted
	}
	if err != nil {
		log.Error("%v", err)
		return exitError
	}

	st := pal.Stats()
	log.Debug("scan complete: %d known, %d unknown, %d skipped", st.Known, st.Unknown, st.Skipped)
	if st.Known == 0 && st.Unknown > 0 {
		log.Warn("the terminal answered none of %d color queries", st.Unknown)
	}

	data, err := render.Render(pal, format)
	if err != nil {
		log.Error("%v", err)
		return exitError
	}
	if err := writeArtifact(args.output, data, stdout); err != nil {
		log.Error("%v", err)
		return exitError
	}

	if cfg.Preview {
		r := lipgloss.NewRenderer(stderr)
		termfix.SetBackground(r, pal)
		if err := render.Preview(stderr, r, pal); err != nil {
			log.Error("rendering preview: %v", err)
			return exitError
		}
	}
	return exitOK
}

// scan holds a terminal session for exactly the duration of the palette
// walk. With stdin or stdout redirected, queries go to the controlling terminal
// instead so escape sequences never land in the output.
func scan(ctx context.Context, cfg *config.Settings, tbl palette.Table, sel palette.Selector) (*palette.Palette, error) {
	var opts []terminal.Option
	switch {
	case cfg.TTY != "":
		opts = append(opts, terminal.WithDevice(cfg.TTY))
	case !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())):
		log.Debug("stdin or stdout is not a terminal; querying %s", controllingTTY)
		opts = append(opts, terminal.WithDevice(controllingTTY))
	}

	var pal *palette.Palette
	err := terminal.With(func(s *terminal.Session) error {
		eng := colorquery.New(s,
			colorquery.WithTimeout(cfg.Timeout()),
			colorquery.WithRetries(cfg.Retries),
		)
		var err error
		pal, err = palette.Scan(ctx, eng, tbl, sel)
		return err
	}, opts...)
	return pal, err
}

func writeArtifact(path string, data []byte, stdout io.Writer) error {
	if path == "-" {
		if _, err := stdout.Write(data); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		return nil
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
