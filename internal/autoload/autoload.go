// Package autoload holds the declared PSR-4 prefix to base-directory
// associations and answers longest-prefix lookups over them.
package autoload

import (
	"sort"
	"strings"
)

// Mapping is one raw prefix -> base-directory association as configured.
type Mapping struct {
	Prefix string
	Dirs   []string
}

// Entry is a normalized mapping: prefix without leading or trailing
// separator, directories slash-separated without a trailing slash.
type Entry struct {
	Prefix string
	Dirs   []string
}

// Map stores entries sorted by descending prefix length, ties broken by
// declaration order, so the first segment-respecting match is the longest.
type Map struct {
	entries []Entry
}

func Build(mappings []Mapping) *Map {
	entries := make([]Entry, 0, len(mappings))
	for _, mapping := range mappings {
		prefix := NormalizeName(mapping.Prefix)
		if prefix == "" {
			continue
		}
		dirs := make([]string, 0, len(mapping.Dirs))
		for _, dir := range mapping.Dirs {
			if normalized := normalizeDir(dir); normalized != "" {
				dirs = append(dirs, normalized)
			}
		}
		if len(dirs) == 0 {
			continue
		}
		entries = append(entries, Entry{Prefix: prefix, Dirs: dirs})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return len(entries[i].Prefix) > len(entries[j].Prefix)
	})
	return &Map{entries: entries}
}

// Lookup returns the longest declared prefix that is a segment-respecting
// prefix of name. A miss is a normal result, not an error.
func (m *Map) Lookup(name string) (Entry, bool) {
	name = NormalizeName(name)
	if name == "" {
		return Entry{}, false
	}
	for _, entry := range m.entries {
		if name == entry.Prefix || strings.HasPrefix(name, entry.Prefix+`\`) {
			return entry, true
		}
	}
	return Entry{}, false
}

func (m *Map) Empty() bool {
	return len(m.entries) == 0
}

// BaseDirs returns the unique base directories across all entries, in entry
// order.
func (m *Map) BaseDirs() []string {
	seen := make(map[string]struct{})
	dirs := make([]string, 0, len(m.entries))
	for _, entry := range m.entries {
		for _, dir := range entry.Dirs {
			if _, ok := seen[dir]; ok {
				continue
			}
			seen[dir] = struct{}{}
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// Remainder strips entry's prefix from name, returning the trailing segments.
func (e Entry) Remainder(name string) string {
	name = NormalizeName(name)
	if name == e.Prefix {
		return ""
	}
	return strings.TrimPrefix(name, e.Prefix+`\`)
}

// NormalizeName trims whitespace and leading/trailing namespace separators.
func NormalizeName(value string) string {
	value = strings.TrimSpace(value)
	value = strings.TrimPrefix(value, `\`)
	value = strings.TrimSuffix(value, `\`)
	return value
}

func normalizeDir(value string) string {
	value = strings.TrimSpace(value)
	value = strings.ReplaceAll(value, "\\", "/")
	value = strings.TrimPrefix(value, "./")
	value = strings.TrimSuffix(value, "/")
	return value
}
