// Command gotags adds or removes struct field tags in Go source files.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"golang.org/x/term"

	"github.com/bethropolis/gotags/internal/app"
	"github.com/bethropolis/gotags/internal/config"
	"github.com/bethropolis/gotags/internal/discover"
	"github.com/bethropolis/gotags/internal/event"
	"github.com/bethropolis/gotags/internal/logger"
	pgotags "github.com/bethropolis/gotags/plugins/gotags"
	"github.com/bethropolis/gotags/plugins/tagstats"
)

const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var flags config.Flags
	files, err := flags.Parse(config.AppName, args)
	if err != nil {
		return exitUsage
	}
	if *flags.Version {
		fmt.Fprintf(stdout, "%s version %s\n", config.AppName, config.Version)
		return exitOK
	}

	cfg, err := config.Load(*flags.ConfigFilePath, &flags)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", config.AppName, err)
		return exitUsage
	}
	closeLog, err := initLogger(cfg.Logger, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", config.AppName, err)
		return exitUsage
	}
	defer closeLog()

	if len(files) == 0 {
		fmt.Fprintf(stderr, "usage: %s [flags] <file|dir>...\n", config.AppName)
		return exitUsage
	}
	ranges, err := parseLines(*flags.Lines)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", config.AppName, err)
		return exitUsage
	}
	files, err = discover.Expand(files)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", config.AppName, err)
		return exitUsage
	}

	job := job{
		cfg:    cfg,
		ranges: ranges,
		write:  *flags.Write,
		copy:   *flags.Copy,
		stats:  *flags.Stats,
		stdout: stdout,
		stderr: stderr,
	}
	switch {
	case *flags.Action != "":
		job.cmdline = pgotags.ApplyCommand + " " + *flags.Action
	case term.IsTerminal(int(os.Stdin.Fd())) && len(files) == 1:
		job.cmdline = pgotags.MenuCommand
		job.picker = app.TerminalPicker("GoTags")
	default:
		fmt.Fprintf(stderr, "%s: -action is required when not run on a terminal with a single file\n", config.AppName)
		return exitUsage
	}
	if len(files) > 1 && !job.write {
		fmt.Fprintf(stderr, "%s: -w is required with more than one file\n", config.AppName)
		return exitUsage
	}
	if len(files) > 1 && len(ranges) > 0 {
		fmt.Fprintf(stderr, "%s: -lines needs a single file\n", config.AppName)
		return exitUsage
	}

	logger.Debugf("processing %d file(s) with %q", len(files), job.cmdline)
	code := exitOK
	for _, file := range files {
		if err := job.process(file); err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", file, err)
			code = exitFail
		}
	}
	return code
}

// initLogger opens the configured log destination. Empty or "-" is stderr.
func initLogger(cfg logger.Config, stderr io.Writer) (func(), error) {
	if cfg.LogFilePath == "" || cfg.LogFilePath == "-" {
		logger.Init(cfg, stderr)
		return func() {}, nil
	}
	f, err := os.OpenFile(cfg.LogFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	if err != nil {
		return nil, fmt.Errorf("opening log file '%s': %w", cfg.LogFilePath, err)
	}
	logger.Init(cfg, f)
	return func() { f.Close() }, nil
}

// job is one command applied to a list of files.
type job struct {
	cfg     *config.Config
	cmdline string
	picker  app.Picker
	ranges  [][2]int
	write   bool
	copy    bool
	stats   bool
	stdout  io.Writer
	stderr  io.Writer
}

func (j *job) process(file string) error {
	a, err := app.NewApp(app.Options{FilePath: file, Config: j.cfg, Picker: j.picker})
	if err != nil {
		return err
	}
	defer a.Close()

	var failures []error
	a.Subscribe(event.TypeTagsRewritten, func(e event.Event) bool {
		if data, ok := e.Data.(event.TagsRewrittenData); ok {
			failures = append(failures, data.Errors...)
		}
		return false
	})
	if len(j.ranges) > 0 {
		a.SelectLines(j.ranges)
	}

	if err := j.execute(a, file, j.cmdline); err != nil {
		return err
	}
	if j.stats {
		if err := j.execute(a, file, tagstats.Command); err != nil {
			return err
		}
	}

	if j.copy {
		if err := clipboard.WriteAll(a.SelectedText()); err != nil {
			logger.Warnf("copying to clipboard: %v", err)
		}
	}
	if j.write {
		if a.Buffer().IsModified() {
			if err := a.Execute("write"); err != nil {
				return err
			}
		}
	} else if _, err := j.stdout.Write(a.Buffer().Bytes()); err != nil {
		return err
	}
	return errors.Join(failures...)
}

// execute runs cmdline and prints the resulting status message.
func (j *job) execute(a *app.App, file, cmdline string) error {
	err := a.Execute(cmdline)
	if msg, ok := a.StatusBar().Drain(); ok {
		fmt.Fprintf(j.stderr, "%s: %s\n", file, msg)
	}
	return err
}
