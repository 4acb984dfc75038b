package app

import (
	"context"
	"errors"
	"time"

	"github.com/ben-ranford/psrlint/internal/autoload"
	"github.com/ben-ranford/psrlint/internal/classify"
	"github.com/ben-ranford/psrlint/internal/composer"
	"github.com/ben-ranford/psrlint/internal/config"
	"github.com/ben-ranford/psrlint/internal/engine"
	"github.com/ben-ranford/psrlint/internal/report"
	"github.com/ben-ranford/psrlint/internal/workspace"
)

var (
	ErrUnknownMode      = errors.New("unknown mode")
	ErrValidationFailed = errors.New("validation failed")
)

type App struct {
	Formatter report.Formatter
	Clock     func() time.Time
}

func New() *App {
	return &App{
		Formatter: report.NewFormatter(),
		Clock:     time.Now,
	}
}

func (a *App) Execute(ctx context.Context, req Request) (string, error) {
	switch req.Mode {
	case ModeCheck:
		return a.executeCheck(ctx, req)
	default:
		return "", ErrUnknownMode
	}
}

func (a *App) executeCheck(ctx context.Context, req Request) (string, error) {
	repoPath, err := workspace.NormalizeRepoPath(req.RepoPath)
	if err != nil {
		return "", err
	}
	if err := workspace.EnsureDir(repoPath); err != nil {
		return "", err
	}

	cfg, _, err := config.Load(repoPath, req.Check.ConfigPath)
	if err != nil {
		return "", err
	}

	manifest, manifestFound, err := composer.Load(repoPath)
	if err != nil {
		return "", err
	}

	warnings := make([]string, 0)
	if !manifestFound {
		warnings = append(warnings, "composer.json not found; namespaces cannot be mapped")
	}
	autoloadMap := buildAutoloadMap(manifest)
	if manifestFound && autoloadMap.Empty() {
		warnings = append(warnings, "composer.json declares no usable psr-4 mapping")
	}

	files, discoveryWarnings, err := workspace.Discover(ctx, repoPath, workspace.Options{
		BaseDirs:   autoloadMap.BaseDirs(),
		Extensions: cfg.Extensions,
		Exclude:    cfg.Exclude,
	})
	if err != nil {
		return "", err
	}
	warnings = append(warnings, discoveryWarnings...)

	findings, err := a.validate(ctx, autoloadMap, cfg, files, req.Check.Workers)
	if err != nil {
		return "", err
	}

	result := report.Report{
		SchemaVersion: report.SchemaVersion,
		GeneratedAt:   a.Clock(),
		RepoPath:      repoPath,
		Findings:      findings,
		Summary:       report.ComputeSummary(len(files), findings),
		Warnings:      warnings,
	}

	formatted, err := a.Formatter.Format(result, req.Check.Format)
	if err != nil {
		return "", err
	}
	if !result.Passed() {
		return formatted, ErrValidationFailed
	}
	return formatted, nil
}

func (a *App) validate(
	ctx context.Context,
	autoloadMap *autoload.Map,
	cfg config.Config,
	files []workspace.SourceFile,
	workers int,
) ([]report.Finding, error) {
	relPaths := make([]string, 0, len(files))
	inputs := make([]engine.Input, 0, len(files))
	for _, file := range files {
		relPaths = append(relPaths, file.RelPath)
		inputs = append(inputs, engine.Input{RelPath: file.RelPath, Content: file.Content})
	}

	classifier := classify.NewClassifier(
		autoloadMap,
		classify.NewIndex(relPaths),
		classify.NewBuiltins(cfg.Builtins, cfg.ReplaceBuiltins),
		cfg.Extensions,
	)
	return engine.New(autoloadMap, classifier).RunParallel(ctx, inputs, workers)
}

func buildAutoloadMap(manifest composer.Manifest) *autoload.Map {
	entries := manifest.PSR4Entries()
	mappings := make([]autoload.Mapping, 0, len(entries))
	for _, entry := range entries {
		mappings = append(mappings, autoload.Mapping{Prefix: entry.Prefix, Dirs: entry.Dirs})
	}
	return autoload.Build(mappings)
}
