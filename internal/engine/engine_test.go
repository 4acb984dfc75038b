package engine

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"go.uber.org/goleak"

	"github.com/ben-ranford/psrlint/internal/autoload"
	"github.com/ben-ranford/psrlint/internal/classify"
	"github.com/ben-ranford/psrlint/internal/report"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testEngine(discovered ...string) Engine {
	m := autoload.Build([]autoload.Mapping{
		{Prefix: `App\`, Dirs: []string{"src/"}},
	})
	classifier := classify.NewClassifier(m, classify.NewIndex(discovered), classify.NewBuiltins(nil, false), nil)
	return New(m, classifier)
}

func fixtureFiles() []Input {
	return []Input{
		{RelPath: "src/Services/Foo.php", Content: []byte("<?php\nnamespace App\\Services;\nuse App\\Missing\\Thing;\nuse Vendor\\Pkg\\Client;\n")},
		{RelPath: "src/Other/Bar.php", Content: []byte("<?php\nnamespace App\\Wrong;\nuse App\\Services\\Foo;\n")},
		{RelPath: "src/legacy.php", Content: []byte("<?php\n$x = 1;\n")},
	}
}

func TestRunOrdersNamespaceFindingsBeforeImportFindings(t *testing.T) {
	e := testEngine("src/Services/Foo.php", "src/Other/Bar.php", "src/legacy.php")

	findings := e.Run(fixtureFiles())
	if len(findings) != 2 {
		t.Fatalf("expected 2 findings, got %d: %#v", len(findings), findings)
	}
	if findings[0].File != "src/Services/Foo.php" || findings[0].Category != report.CategoryUnresolvedImport {
		t.Fatalf("unexpected first finding: %#v", findings[0])
	}
	if findings[1].File != "src/Other/Bar.php" || findings[1].Category != report.CategoryNamespaceLocationMismatch {
		t.Fatalf("unexpected second finding: %#v", findings[1])
	}
}

func TestRunDoesNotShortCircuitAcrossFilesOrImports(t *testing.T) {
	e := testEngine()
	files := []Input{
		{RelPath: "src/A.php", Content: []byte("namespace App\\Nope;\nuse App\\Gone\\One;\nuse App\\Gone\\Two;\n")},
		{RelPath: "src/B.php", Content: []byte("use App\\Gone\\Three;\n")},
	}

	findings := e.Run(files)
	if len(findings) != 4 {
		t.Fatalf("expected 4 findings, got %d: %#v", len(findings), findings)
	}
}

func TestRunFileWithoutNamespaceNeverYieldsNamespaceFindings(t *testing.T) {
	e := testEngine()
	files := []Input{{RelPath: "anywhere/at/all.php", Content: []byte("<?php\n$x = 1;\n")}}

	for _, finding := range e.Run(files) {
		if finding.Category == report.CategoryNamespaceLocationMismatch || finding.Category == report.CategoryNamespaceNotMapped {
			t.Fatalf("unexpected namespace finding: %#v", finding)
		}
	}
}

func TestRunIsDeterministic(t *testing.T) {
	e := testEngine("src/Services/Foo.php")
	files := fixtureFiles()

	first := e.Run(files)
	second := e.Run(files)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("runs differ:\n%#v\n%#v", first, second)
	}
}

func TestRunParallelMatchesSequentialOrder(t *testing.T) {
	e := testEngine()
	files := make([]Input, 0, 40)
	for i := 0; i < 40; i++ {
		content := fmt.Sprintf("namespace App\\Pkg%d;\nuse App\\Gone\\Thing%d;\n", i, i)
		files = append(files, Input{RelPath: fmt.Sprintf("src/F%02d.php", i), Content: []byte(content)})
	}

	sequential := e.Run(files)
	for _, workers := range []int{2, 4, 16} {
		parallel, err := e.RunParallel(context.Background(), files, workers)
		if err != nil {
			t.Fatalf("parallel run (%d workers): %v", workers, err)
		}
		if !reflect.DeepEqual(sequential, parallel) {
			t.Fatalf("parallel output differs with %d workers", workers)
		}
	}
}

func TestRunParallelSingleWorkerFallsBackToSequential(t *testing.T) {
	e := testEngine()
	findings, err := e.RunParallel(context.Background(), fixtureFiles(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(findings, e.Run(fixtureFiles())) {
		t.Fatal("single-worker parallel run should match sequential output")
	}
}

func TestRunParallelStopsOnCanceledContext(t *testing.T) {
	e := testEngine()
	files := make([]Input, 64)
	for i := range files {
		files[i] = Input{RelPath: fmt.Sprintf("src/F%02d.php", i), Content: []byte("namespace App\\X;\n")}
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := e.RunParallel(ctx, files, 4); err == nil {
		t.Fatal("expected context cancellation error")
	}
}
