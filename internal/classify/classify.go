// Package classify decides, per imported name, whether it resolves inside
// the project, names a platform built-in, belongs to third-party code the
// validator has no authority over, or is a broken project-owned import.
package classify

import (
	"fmt"
	"path"
	"strings"

	"github.com/ben-ranford/psrlint/internal/autoload"
	"github.com/ben-ranford/psrlint/internal/extract"
	"github.com/ben-ranford/psrlint/internal/report"
)

// defaultBuiltinNames covers the PHP engine and SPL vocabulary commonly
// imported without a project prefix. The effective list is configurable;
// built-in vocabularies differ across runtimes.
var defaultBuiltinNames = []string{
	"ArrayAccess", "ArrayIterator", "ArrayObject", "Attribute",
	"BadFunctionCallException", "BadMethodCallException", "Closure",
	"Countable", "DateInterval", "DatePeriod", "DateTime",
	"DateTimeImmutable", "DateTimeInterface", "DateTimeZone",
	"DomainException", "Error", "ErrorException", "Exception", "Generator",
	"InvalidArgumentException", "Iterator", "IteratorAggregate",
	"JsonException", "JsonSerializable", "LengthException", "LogicException",
	"OutOfBoundsException", "OutOfRangeException", "OverflowException",
	"RangeException", "RuntimeException", "SplFileInfo", "SplFileObject",
	"SplObjectStorage", "SplQueue", "SplStack", "Stringable", "Throwable",
	"Traversable", "TypeError", "UnderflowException",
	"UnexpectedValueException", "ValueError", "WeakMap", "WeakReference",
	"stdClass",
}

type Builtins struct {
	names map[string]struct{}
}

// NewBuiltins builds the allow-list from the defaults plus extra names, or
// from extra alone when replace is set.
func NewBuiltins(extra []string, replace bool) Builtins {
	names := make(map[string]struct{}, len(defaultBuiltinNames)+len(extra))
	if !replace {
		for _, name := range defaultBuiltinNames {
			names[name] = struct{}{}
		}
	}
	for _, name := range extra {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		names[name] = struct{}{}
	}
	return Builtins{names: names}
}

// Contains matches the final name segment, exact case.
func (b Builtins) Contains(segment string) bool {
	_, ok := b.names[segment]
	return ok
}

// Index is the set of discovered source files, keyed by slash-separated path
// relative to the project root. It stands in for a live class loader: a
// project symbol exists iff its projected file was discovered.
type Index struct {
	paths map[string]struct{}
}

func NewIndex(relPaths []string) *Index {
	paths := make(map[string]struct{}, len(relPaths))
	for _, relPath := range relPaths {
		paths[path.Clean(strings.ReplaceAll(relPath, "\\", "/"))] = struct{}{}
	}
	return &Index{paths: paths}
}

func (i *Index) Contains(relPath string) bool {
	_, ok := i.paths[path.Clean(relPath)]
	return ok
}

type Classifier struct {
	Map        *autoload.Map
	Index      *Index
	Builtins   Builtins
	Extensions []string
}

func NewClassifier(m *autoload.Map, index *Index, builtins Builtins, extensions []string) Classifier {
	if len(extensions) == 0 {
		extensions = []string{".php"}
	}
	return Classifier{Map: m, Index: index, Builtins: builtins, Extensions: extensions}
}

// Classify returns nil for project-resolvable, built-in, and third-party
// imports, and an unresolved-import error for project-owned names whose
// projected file does not exist.
func (c Classifier) Classify(file string, imp extract.Import) *report.Finding {
	entry, owned := c.Map.Lookup(imp.Name)
	if owned && c.resolves(entry, imp.Name) {
		return nil
	}
	if c.Builtins.Contains(finalSegment(imp.Name)) {
		return nil
	}
	if !owned {
		// Third-party code is out of scope for resolution.
		return nil
	}
	return &report.Finding{
		File:     file,
		Category: report.CategoryUnresolvedImport,
		Severity: report.SeverityError,
		Message:  fmt.Sprintf("unresolved import: %s", imp.Raw),
		Line:     imp.Line,
	}
}

func (c Classifier) resolves(entry autoload.Entry, name string) bool {
	remainder := entry.Remainder(name)
	if remainder == "" {
		return false
	}
	relative := strings.ReplaceAll(remainder, `\`, "/")
	for _, dir := range entry.Dirs {
		for _, ext := range c.Extensions {
			if c.Index.Contains(path.Join(dir, relative+ext)) {
				return true
			}
		}
	}
	return false
}

func finalSegment(name string) string {
	segments := strings.Split(name, `\`)
	return segments[len(segments)-1]
}
