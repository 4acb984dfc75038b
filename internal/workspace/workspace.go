// Package workspace is the file-discovery collaborator: it normalizes the
// project root and enumerates source files beneath the mapped base
// directories, excluding vendored and generated trees. All file reads happen
// here; the validation core never touches the disk.
package workspace

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ben-ranford/psrlint/internal/composer"
	"github.com/ben-ranford/psrlint/internal/safeio"
)

var baselineSkipDirectories = map[string]bool{
	".git":         true,
	".idea":        true,
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	"coverage":     true,
	"tmp":          true,
	"cache":        true,
}

// SourceFile is one discovered file: slash-separated path relative to the
// project root plus its content, read exactly once.
type SourceFile struct {
	RelPath string
	Content []byte
}

type Options struct {
	// BaseDirs restricts discovery to these root-relative directories.
	// Empty means the whole root.
	BaseDirs   []string
	Extensions []string
	Exclude    []string
}

func NormalizeRepoPath(path string) (string, error) {
	if path == "" {
		path = "."
	}
	return filepath.Abs(path)
}

// EnsureDir reports a usable project root. A missing or non-directory root
// is the run's only fatal pre-validation condition.
func EnsureDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("project root not found: %s", path)
		}
		return fmt.Errorf("stat project root: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("project root is not a directory: %s", path)
	}
	return nil
}

// Discover walks the configured base directories in declared order and
// returns matching source files in lexical walk order, deduplicated when
// base directories overlap.
func Discover(ctx context.Context, repoPath string, opts Options) ([]SourceFile, []string, error) {
	extensions := opts.Extensions
	if len(extensions) == 0 {
		extensions = []string{".php"}
	}
	skip := skipSet(opts.Exclude)

	roots := opts.BaseDirs
	if len(roots) == 0 {
		roots = []string{""}
	}

	files := make([]SourceFile, 0)
	warnings := make([]string, 0)
	seen := make(map[string]struct{})

	for _, dir := range roots {
		walkRoot := filepath.Join(repoPath, filepath.FromSlash(dir))
		if _, err := os.Stat(walkRoot); err != nil {
			if os.IsNotExist(err) {
				warnings = append(warnings, fmt.Sprintf("configured base directory not found: %s", dir))
				continue
			}
			return nil, warnings, err
		}

		err := filepath.WalkDir(walkRoot, func(path string, entry fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if ctx != nil && ctx.Err() != nil {
				return ctx.Err()
			}
			if entry.IsDir() {
				return discoverDirEntry(repoPath, walkRoot, path, entry, skip)
			}
			return discoverFileEntry(repoPath, path, extensions, seen, &files)
		})
		if err != nil {
			return nil, warnings, err
		}
	}

	if len(files) == 0 {
		warnings = append(warnings, "no source files found for validation")
	}
	return files, warnings, nil
}

func discoverDirEntry(repoPath, walkRoot, path string, entry fs.DirEntry, skip map[string]bool) error {
	if path == walkRoot {
		return nil
	}
	if skip[entry.Name()] {
		return filepath.SkipDir
	}
	if path != repoPath && hasNestedManifest(path) {
		return filepath.SkipDir
	}
	return nil
}

func discoverFileEntry(repoPath, path string, extensions []string, seen map[string]struct{}, files *[]SourceFile) error {
	if !matchesExtension(path, extensions) {
		return nil
	}
	relPath, err := filepath.Rel(repoPath, path)
	if err != nil {
		relPath = path
	}
	relPath = filepath.ToSlash(relPath)
	if _, ok := seen[relPath]; ok {
		return nil
	}

	content, err := safeio.ReadFileUnder(repoPath, path)
	if err != nil {
		return err
	}
	seen[relPath] = struct{}{}
	*files = append(*files, SourceFile{RelPath: relPath, Content: content})
	return nil
}

func matchesExtension(path string, extensions []string) bool {
	ext := filepath.Ext(path)
	for _, candidate := range extensions {
		if strings.EqualFold(ext, candidate) {
			return true
		}
	}
	return false
}

func hasNestedManifest(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, composer.ManifestName))
	return err == nil
}

func skipSet(extra []string) map[string]bool {
	if len(extra) == 0 {
		return baselineSkipDirectories
	}
	merged := make(map[string]bool, len(baselineSkipDirectories)+len(extra))
	for name := range baselineSkipDirectories {
		merged[name] = true
	}
	for _, name := range extra {
		if name = strings.TrimSpace(name); name != "" {
			merged[name] = true
		}
	}
	return merged
}
