package cli

import (
	"testing"

	"github.com/ben-ranford/psrlint/internal/app"
	"github.com/ben-ranford/psrlint/internal/report"
)

func mustParseArgs(t *testing.T, args []string) app.Request {
	t.Helper()

	req, err := ParseArgs(args)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return req
}

func TestParseArgsDefault(t *testing.T) {
	req := mustParseArgs(t, nil)
	if req.Mode != app.ModeCheck {
		t.Fatalf("expected mode %q, got %q", app.ModeCheck, req.Mode)
	}
	if req.RepoPath != "." {
		t.Fatalf("expected default root '.', got %q", req.RepoPath)
	}
	if req.Check.Format != report.FormatTable {
		t.Fatalf("expected format %q, got %q", report.FormatTable, req.Check.Format)
	}
}

func TestParseArgsCheckRoot(t *testing.T) {
	req := mustParseArgs(t, []string{"check", "/srv/project"})
	if req.Mode != app.ModeCheck {
		t.Fatalf("expected mode %q, got %q", app.ModeCheck, req.Mode)
	}
	if req.RepoPath != "/srv/project" {
		t.Fatalf("expected root /srv/project, got %q", req.RepoPath)
	}
}

func TestParseArgsCheckFormats(t *testing.T) {
	cases := []struct {
		name   string
		format string
		want   report.Format
	}{
		{name: "table", format: "table", want: report.FormatTable},
		{name: "json", format: "json", want: report.FormatJSON},
		{name: "sarif", format: "sarif", want: report.FormatSARIF},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := mustParseArgs(t, []string{"check", "--format", tc.format})
			if req.Check.Format != tc.want {
				t.Fatalf("expected format %q, got %q", tc.want, req.Check.Format)
			}
		})
	}
}

func TestParseArgsCheckFlagsAfterPositional(t *testing.T) {
	req := mustParseArgs(t, []string{"check", "/srv/project", "--format", "json", "--workers", "3"})
	if req.RepoPath != "/srv/project" {
		t.Fatalf("expected root /srv/project, got %q", req.RepoPath)
	}
	if req.Check.Format != report.FormatJSON {
		t.Fatalf("expected json format, got %q", req.Check.Format)
	}
	if req.Check.Workers != 3 {
		t.Fatalf("expected 3 workers, got %d", req.Check.Workers)
	}
}

func TestParseArgsCheckConfigPath(t *testing.T) {
	req := mustParseArgs(t, []string{"check", "--config", "ci/psrlint.toml"})
	if req.Check.ConfigPath != "ci/psrlint.toml" {
		t.Fatalf("expected config path, got %q", req.Check.ConfigPath)
	}
}

func TestParseArgsErrorsAndHelp(t *testing.T) {
	if _, err := ParseArgs([]string{"help"}); err != ErrHelpRequested {
		t.Fatalf("expected top-level help request error, got %v", err)
	}
	if _, err := ParseArgs([]string{"check", "--help"}); err != ErrHelpRequested {
		t.Fatalf("expected check help request error, got %v", err)
	}
	if _, err := ParseArgs([]string{"unknown"}); err == nil {
		t.Fatalf("expected unknown command error")
	}
}

func TestParseArgsCheckInvalidInputs(t *testing.T) {
	cases := []struct {
		name string
		args []string
	}{
		{name: "invalid_format", args: []string{"check", "--format", "xml"}},
		{name: "zero_workers", args: []string{"check", "--workers", "0"}},
		{name: "workers_missing_value", args: []string{"check", "--workers"}},
		{name: "too_many_args", args: []string{"check", "a", "b"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseArgs(tc.args); err == nil {
				t.Fatalf("expected parse error")
			}
		})
	}
}

func TestNormalizeArgsAndFlagNeedsValue(t *testing.T) {
	args := normalizeArgs([]string{"/srv/project", "--format", "json", "--workers=2", "--", "--literal"})
	if len(args) == 0 {
		t.Fatalf("expected normalized args")
	}
	if args[0] != "--format" {
		t.Fatalf("expected flags reordered before positionals, got %v", args)
	}
	if !flagNeedsValue("--format") {
		t.Fatalf("expected format flag to require value")
	}
	if flagNeedsValue("--format=json") {
		t.Fatalf("expected equals-form flag not to require separate value")
	}
	if flagNeedsValue("--unknown-flag") {
		t.Fatalf("did not expect unknown flag to be treated as requiring value")
	}
}
