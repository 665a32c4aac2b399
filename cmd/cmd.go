package cmd

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/thiagokokada/gitlanes/internal/buildinfo"
	"github.com/thiagokokada/gitlanes/internal/config"
	"github.com/thiagokokada/gitlanes/internal/git"
	"github.com/thiagokokada/gitlanes/internal/logging"
	"github.com/thiagokokada/gitlanes/internal/schema"
	"github.com/thiagokokada/gitlanes/internal/staging"
)

type command struct {
	usage string
	// needsRepo commands get the service opened on -repo.
	needsRepo bool
	run       func(e *env, args []string) error
}

type env struct {
	svc *git.Service
	out io.Writer
}

var commands = map[string]command{
	"graph":         {"graph [-limit N] [-offset N]", true, runGraph},
	"hunks":         {"hunks [-staged] PATH", true, runHunks},
	"diff":          {"diff [-staged] [-context N] PATH", true, runDiff},
	"stage-hunks":   {"stage-hunks PATH IDX...", true, runHunkSelection(staging.Stage)},
	"unstage-hunks": {"unstage-hunks PATH IDX...", true, runHunkSelection(staging.Unstage)},
	"stage-lines":   {"stage-lines PATH HUNK A-B...", true, runLineSelection(staging.Stage)},
	"unstage-lines": {"unstage-lines PATH HUNK A-B...", true, runLineSelection(staging.Unstage)},
	"stage-file":    {"stage-file PATH", true, runFile(staging.Stage)},
	"unstage-file":  {"unstage-file PATH", true, runFile(staging.Unstage)},
	"status":        {"status", true, runStatus},
	"schema":        {"schema [NAME]", false, runSchema},
}

func Run() error {
	return run(os.Args[1:], os.Stdout, os.Stderr)
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("gitlanes", flag.ContinueOnError)
	fs.SetOutput(stderr)
	repoPath := fs.String("repo", ".", "path inside the repository to operate on")
	configPath := fs.String("config", "", "configuration file (default: user config dir)")
	verbose := fs.Bool("verbose", false, "enable verbose logging")
	showVersion := fs.Bool("version", false, "print version information and exit")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: gitlanes [flags] COMMAND [args]")
		fmt.Fprintln(stderr, "\ncommands:")
		names := make([]string, 0, len(commands))
		for name := range commands {
			names = append(names, name)
		}
		slices.Sort(names)
		for _, name := range names {
			fmt.Fprintf(stderr, "  %s\n", commands[name].usage)
		}
		fmt.Fprintln(stderr, "\nflags:")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}
	if *showVersion {
		fmt.Fprintln(stdout, buildinfo.Read())
		return nil
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if err := logging.Setup(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, Verbose: *verbose}); err != nil {
		return err
	}

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return errors.New("missing command")
	}
	c, ok := commands[rest[0]]
	if !ok {
		return fmt.Errorf("unknown command %q", rest[0])
	}

	e := &env{out: stdout}
	if c.needsRepo {
		e.svc = git.New(git.Options{
			MaxBlocking:  cfg.Workers.MaxBlocking,
			ContextLines: cfg.Diff.ContextLines,
			DefaultLimit: cfg.Graph.DefaultLimit,
			MaxLimit:     cfg.Graph.MaxLimit,
		})
		if err := e.svc.Open(*repoPath); err != nil {
			return err
		}
		defer e.svc.Close()
	}
	return c.run(e, rest[1:])
}

func (e *env) print(v any) error {
	enc := json.NewEncoder(e.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// parseFlags parses args and checks the number of positional arguments.
func parseFlags(fs *flag.FlagSet, args []string, minArgs int) ([]string, error) {
	fs.SetOutput(io.Discard)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() < minArgs {
		return nil, fmt.Errorf("%s: expected at least %d argument(s)", fs.Name(), minArgs)
	}
	return fs.Args(), nil
}

func runGraph(e *env, args []string) error {
	fs := flag.NewFlagSet("graph", flag.ContinueOnError)
	limit := fs.Uint("limit", 0, "number of commits (0 uses the configured default)")
	offset := fs.Uint("offset", 0, "number of commits to skip")
	if _, err := parseFlags(fs, args, 0); err != nil {
		return err
	}
	g, err := e.svc.CommitGraph(*limit, *offset)
	if err != nil {
		return err
	}
	return e.print(g)
}

func runHunks(e *env, args []string) error {
	fs := flag.NewFlagSet("hunks", flag.ContinueOnError)
	staged := fs.Bool("staged", false, "diff HEAD against the index")
	rest, err := parseFlags(fs, args, 1)
	if err != nil {
		return err
	}
	hunks, err := e.svc.FileDiffHunks(rest[0], *staged)
	if err != nil {
		return err
	}
	return e.print(hunks)
}

func runDiff(e *env, args []string) error {
	fs := flag.NewFlagSet("diff", flag.ContinueOnError)
	staged := fs.Bool("staged", false, "diff HEAD against the index")
	contextLines := fs.Int("context", -1, "context lines (negative uses the configured default)")
	rest, err := parseFlags(fs, args, 1)
	if err != nil {
		return err
	}
	d, err := e.svc.FileDiff(rest[0], *staged, *contextLines)
	if err != nil {
		return err
	}
	return e.print(d)
}

func runHunkSelection(dir staging.Direction) func(*env, []string) error {
	return func(e *env, args []string) error {
		fs := flag.NewFlagSet(dir.String()+"-hunks", flag.ContinueOnError)
		rest, err := parseFlags(fs, args, 1)
		if err != nil {
			return err
		}
		indices, err := parseIndices(rest[1:])
		if err != nil {
			return err
		}
		if dir == staging.Unstage {
			return e.svc.UnstageHunks(rest[0], indices)
		}
		return e.svc.StageHunks(rest[0], indices)
	}
}

func runLineSelection(dir staging.Direction) func(*env, []string) error {
	return func(e *env, args []string) error {
		fs := flag.NewFlagSet(dir.String()+"-lines", flag.ContinueOnError)
		rest, err := parseFlags(fs, args, 2)
		if err != nil {
			return err
		}
		hunk, err := parseIndex(rest[1])
		if err != nil {
			return err
		}
		ranges, err := parseRanges(rest[2:])
		if err != nil {
			return err
		}
		if dir == staging.Unstage {
			return e.svc.UnstageLines(rest[0], hunk, ranges)
		}
		return e.svc.StageLines(rest[0], hunk, ranges)
	}
}

func runFile(dir staging.Direction) func(*env, []string) error {
	return func(e *env, args []string) error {
		fs := flag.NewFlagSet(dir.String()+"-file", flag.ContinueOnError)
		rest, err := parseFlags(fs, args, 1)
		if err != nil {
			return err
		}
		if dir == staging.Unstage {
			return e.svc.UnstageFile(rest[0])
		}
		return e.svc.StageFile(rest[0])
	}
}

func runStatus(e *env, args []string) error {
	if _, err := parseFlags(flag.NewFlagSet("status", flag.ContinueOnError), args, 0); err != nil {
		return err
	}
	st, err := e.svc.StagingStatus()
	if err != nil {
		return err
	}
	return e.print(st)
}

func runSchema(e *env, args []string) error {
	if len(args) == 0 {
		for _, label := range schema.Labels() {
			fmt.Fprintln(e.out, label)
		}
		return nil
	}
	s, err := schema.Get(args[0])
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(e.out, s)
	return err
}

func parseIndex(s string) (uint, error) {
	n, err := strconv.ParseUint(s, 10, 0)
	if err != nil {
		return 0, fmt.Errorf("invalid hunk index %q", s)
	}
	return uint(n), nil
}

func parseIndices(args []string) ([]uint, error) {
	indices := make([]uint, 0, len(args))
	for _, arg := range args {
		n, err := parseIndex(arg)
		if err != nil {
			return nil, err
		}
		indices = append(indices, n)
	}
	return indices, nil
}

// parseRanges accepts "A-B" or a single line "A".
func parseRanges(args []string) ([]staging.LineRange, error) {
	ranges := make([]staging.LineRange, 0, len(args))
	for _, arg := range args {
		startText, endText, found := strings.Cut(arg, "-")
		if !found {
			endText = startText
		}
		start, err := strconv.ParseUint(startText, 10, 0)
		if err != nil {
			return nil, fmt.Errorf("invalid line range %q", arg)
		}
		end, err := strconv.ParseUint(endText, 10, 0)
		if err != nil {
			return nil, fmt.Errorf("invalid line range %q", arg)
		}
		ranges = append(ranges, staging.LineRange{Start: uint(start), End: uint(end)})
	}
	return ranges, nil
}
