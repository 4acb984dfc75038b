package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/ben-ranford/psrlint/internal/app"
	"github.com/ben-ranford/psrlint/internal/report"
)

var ErrHelpRequested = errors.New("help requested")

func ParseArgs(args []string) (app.Request, error) {
	req := app.DefaultRequest()
	if len(args) == 0 {
		return req, nil
	}

	if isHelpArg(args[0]) {
		return req, ErrHelpRequested
	}

	switch args[0] {
	case "check":
		return parseCheck(args[1:], req)
	default:
		return req, fmt.Errorf("unknown command: %s", args[0])
	}
}

func parseCheck(args []string, req app.Request) (app.Request, error) {
	args = normalizeArgs(args)

	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	formatFlag := fs.String("format", string(req.Check.Format), "output format")
	configPath := fs.String("config", req.Check.ConfigPath, "config file path")
	workers := fs.Int("workers", req.Check.Workers, "parallel validation workers")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return req, ErrHelpRequested
		}
		return req, err
	}

	if *workers < 1 {
		return req, fmt.Errorf("--workers must be >= 1")
	}

	format, err := report.ParseFormat(*formatFlag)
	if err != nil {
		return req, err
	}

	remaining := fs.Args()
	if len(remaining) > 1 {
		return req, fmt.Errorf("too many arguments for check")
	}
	if len(remaining) == 1 {
		req.RepoPath = strings.TrimSpace(remaining[0])
	}

	req.Mode = app.ModeCheck
	req.Check = app.CheckRequest{
		Format:     format,
		ConfigPath: strings.TrimSpace(*configPath),
		Workers:    *workers,
	}

	return req, nil
}

func isHelpArg(arg string) bool {
	switch arg {
	case "-h", "--help", "help":
		return true
	default:
		return false
	}
}

func normalizeArgs(args []string) []string {
	if len(args) == 0 {
		return args
	}

	flags := make([]string, 0, len(args))
	positionals := make([]string, 0, 1)

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			positionals = append(positionals, args[i+1:]...)
			break
		}
		if strings.HasPrefix(arg, "-") {
			flags = append(flags, arg)
			if flagNeedsValue(arg) && i+1 < len(args) {
				flags = append(flags, args[i+1])
				i++
			}
			continue
		}
		positionals = append(positionals, arg)
	}

	return append(flags, positionals...)
}

func flagNeedsValue(arg string) bool {
	if strings.Contains(arg, "=") {
		return false
	}
	switch arg {
	case "--format", "--config", "--workers":
		return true
	default:
		return false
	}
}
