// Package resolve projects fully-qualified names onto file-system paths via
// the autoload map and checks namespace declarations against file locations.
package resolve

import (
	"fmt"
	"path"
	"strings"

	"github.com/ben-ranford/psrlint/internal/autoload"
	"github.com/ben-ranford/psrlint/internal/report"
)

// ExpectedDirectories returns the directories a namespace's files are
// expected to live in, one per base directory of the matching prefix. A false
// result means no declared prefix covers the namespace.
func ExpectedDirectories(namespace string, m *autoload.Map) ([]string, bool) {
	entry, ok := m.Lookup(namespace)
	if !ok {
		return nil, false
	}
	relative := strings.ReplaceAll(entry.Remainder(namespace), `\`, "/")
	dirs := make([]string, 0, len(entry.Dirs))
	for _, dir := range entry.Dirs {
		dirs = append(dirs, path.Join(dir, relative))
	}
	return dirs, true
}

// ValidateLocation checks a file's declared namespace against its containing
// directory. Files without a namespace are always acceptable. Subdirectories
// deeper than the expected directory are tolerated.
func ValidateLocation(namespace, relPath string, m *autoload.Map) *report.Finding {
	if namespace == "" {
		return nil
	}

	expected, mapped := ExpectedDirectories(namespace, m)
	if !mapped {
		return &report.Finding{
			File:     relPath,
			Category: report.CategoryNamespaceNotMapped,
			Severity: report.SeverityWarning,
			Message:  fmt.Sprintf("namespace %s matches no configured autoload prefix", namespace),
		}
	}

	fileDir := containingDir(relPath)
	for _, dir := range expected {
		if dirContains(dir, fileDir) {
			return nil
		}
	}
	return &report.Finding{
		File:     relPath,
		Category: report.CategoryNamespaceLocationMismatch,
		Severity: report.SeverityError,
		Message:  fmt.Sprintf("namespace %s expects directory %s", namespace, expected[0]),
	}
}

func containingDir(relPath string) string {
	dir := path.Dir(strings.ReplaceAll(relPath, "\\", "/"))
	if dir == "." {
		return ""
	}
	return dir
}

func dirContains(expected, fileDir string) bool {
	if expected == "." || expected == "" {
		return true
	}
	return fileDir == expected || strings.HasPrefix(fileDir, expected+"/")
}
