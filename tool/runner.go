package tool

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/pflag"
)

// UsageError reports a command line that could not be dispatched; callers
// usually print usage and exit with status 2.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string {
	return e.Msg
}

func IsUsage(err error) bool {
	var uerr *UsageError
	return errors.As(err, &uerr)
}

type Runner interface {
	Run(fullCmd string, fs *pflag.FlagSet, args []string) error
}

type Command func(usage func() error, args []string) error

func (cmd Command) Run(fullCmd string, fs *pflag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return &UsageError{Msg: err.Error()}
	}

	return cmd(func() error {
		return usage(fs)
	}, fs.Args())
}

type FlagsCommand func(fs *pflag.FlagSet, parse func() (args []string, usage func() error, err error)) error

func (fcmd FlagsCommand) Run(fullCmd string, fs *pflag.FlagSet, args []string) error {
	parse := func() ([]string, func() error, error) {
		if err := fs.Parse(args); err != nil {
			return nil, nil, &UsageError{Msg: err.Error()}
		}

		return fs.Args(),
			func() error {
				return usage(fs)
			}, nil
	}

	return fcmd(fs, parse)
}

func usage(fs *pflag.FlagSet) error {
	fs.Usage()
	return &UsageError{Msg: fmt.Sprintf("wrong number of arguments: %q", fs.Args())}
}

type ToolRunner struct {
	Syntax string
	Usage  string
	Runner Runner
}

type Tool struct {
	Runners map[string]ToolRunner
	Flags   func(fs *pflag.FlagSet)
	Output  io.Writer
}

func (tl Tool) output() io.Writer {
	if tl.Output == nil {
		return os.Stderr
	}
	return tl.Output
}

func (tl Tool) names() []string {
	names := make([]string, 0, len(tl.Runners))
	for name := range tl.Runners {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PrintUsage writes every command's syntax and usage followed by the flag
// defaults.
func (tl Tool) PrintUsage(fullCmd string, fs *pflag.FlagSet) {
	w := tl.output()
	fmt.Fprintf(w, "usage of %s:\n", fullCmd)

	for _, name := range tl.names() {
		tr := tl.Runners[name]
		fmt.Fprintf(w, "  %s\n    \t%s\n", tr.Syntax, tr.Usage)
	}

	fmt.Fprintln(w)
	fs.SetOutput(w)
	fs.PrintDefaults()
}

func (tl Tool) Run(fullCmd string, fs *pflag.FlagSet, args []string) error {
	if tl.Flags != nil {
		tl.Flags(fs)
	}

	if len(args) == 0 || args[0] == "" || args[0][0] == '-' {
		tl.PrintUsage(fullCmd, fs)
		return &UsageError{Msg: "command required but not provided"}
	}

	cmd := args[0]
	args = args[1:]
	tr, ok := tl.Runners[cmd]
	if !ok {
		tl.PrintUsage(fullCmd, fs)
		return &UsageError{Msg: fmt.Sprintf("command provided but not defined: %s", cmd)}
	}

	fullCmd = fullCmd + " " + cmd
	fs.Usage = func() {
		tl.PrintUsage(fullCmd, fs)
	}

	return tr.Runner.Run(fullCmd, fs, args)
}
