// Package engine orchestrates per-file validation: namespace-location
// checks first, then import classification, findings appended in discovery
// order. It never short-circuits; every file and every import is checked.
package engine

import (
	"context"
	"sync"

	"github.com/ben-ranford/psrlint/internal/autoload"
	"github.com/ben-ranford/psrlint/internal/classify"
	"github.com/ben-ranford/psrlint/internal/extract"
	"github.com/ben-ranford/psrlint/internal/report"
	"github.com/ben-ranford/psrlint/internal/resolve"
)

// Input is one already-read source file. The engine performs no disk I/O.
type Input struct {
	RelPath string
	Content []byte
}

type Engine struct {
	Map        *autoload.Map
	Classifier classify.Classifier
}

func New(m *autoload.Map, classifier classify.Classifier) Engine {
	return Engine{Map: m, Classifier: classifier}
}

// Run validates files in input order and returns all findings. Identical
// inputs produce identical ordered findings.
func (e Engine) Run(files []Input) []report.Finding {
	findings := make([]report.Finding, 0)
	for _, file := range files {
		findings = append(findings, e.validateFile(file)...)
	}
	return findings
}

// RunParallel fans files out to a bounded worker pool and merges per-file
// findings back in input order, so its output is identical to Run's.
func (e Engine) RunParallel(ctx context.Context, files []Input, workers int) ([]report.Finding, error) {
	if workers <= 1 || len(files) < 2 {
		return e.Run(files), nil
	}
	if workers > len(files) {
		workers = len(files)
	}

	perFile := make([][]report.Finding, len(files))
	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range jobs {
				perFile[index] = e.validateFile(files[index])
			}
		}()
	}

	dispatchErr := func() error {
		defer close(jobs)
		for index := range files {
			select {
			case jobs <- index:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	}()
	wg.Wait()
	if dispatchErr != nil {
		return nil, dispatchErr
	}

	findings := make([]report.Finding, 0)
	for _, fileFindings := range perFile {
		findings = append(findings, fileFindings...)
	}
	return findings, nil
}

func (e Engine) validateFile(file Input) []report.Finding {
	findings := make([]report.Finding, 0)

	namespace, _ := extract.Namespace(file.Content)
	if finding := resolve.ValidateLocation(namespace, file.RelPath, e.Map); finding != nil {
		findings = append(findings, *finding)
	}

	for _, imp := range extract.Imports(file.Content) {
		if finding := e.Classifier.Classify(file.RelPath, imp); finding != nil {
			findings = append(findings, *finding)
		}
	}
	return findings
}
