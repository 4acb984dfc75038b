// Package extract pulls namespace and use declarations out of PHP source
// text. Extraction is line-oriented and anchored at line start; statements
// buried in string literals or block comments are a documented limitation of
// this contract.
package extract

import (
	"regexp"
	"strings"

	"github.com/ben-ranford/psrlint/internal/autoload"
)

// Import is one imported symbol: the fully-qualified name, the effective
// local alias, and the raw statement text it came from.
type Import struct {
	Name  string
	Alias string
	Raw   string
	Line  int
}

var (
	namespacePattern = regexp.MustCompile(`^\s*namespace\s+([^;{]+?)\s*;`)
	usePattern       = regexp.MustCompile(`^\s*use\s+([^;]+);`)
	aliasPattern     = regexp.MustCompile(`(?i)\s+as\s+`)
)

// Namespace returns the first top-level namespace declaration. Later
// declarations in the same file are ignored.
func Namespace(content []byte) (string, bool) {
	for _, line := range strings.Split(string(content), "\n") {
		match := namespacePattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		name := autoload.NormalizeName(match[1])
		if name == "" {
			continue
		}
		return name, true
	}
	return "", false
}

// Imports returns every use statement in file order. Duplicates are
// preserved; grouped statements expand in brace order.
func Imports(content []byte) []Import {
	imports := make([]Import, 0)
	for index, line := range strings.Split(string(content), "\n") {
		match := usePattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		raw := strings.TrimSpace(line)
		imports = append(imports, parseUseStatement(strings.TrimSpace(match[1]), raw, index+1)...)
	}
	return imports
}

func parseUseStatement(statement, raw string, line int) []Import {
	if statement == "" {
		return nil
	}
	if open := strings.Index(statement, "{"); open >= 0 {
		close := strings.LastIndex(statement, "}")
		if close <= open {
			return nil
		}
		base := autoload.NormalizeName(statement[:open])
		return parseUseParts(strings.Split(statement[open+1:close], ","), base, raw, line)
	}
	return parseUseParts(strings.Split(statement, ","), "", raw, line)
}

func parseUseParts(parts []string, base, raw string, line int) []Import {
	imports := make([]Import, 0, len(parts))
	for _, part := range parts {
		name, alias, ok := parseUsePart(part, base)
		if !ok {
			continue
		}
		imports = append(imports, Import{Name: name, Alias: alias, Raw: raw, Line: line})
	}
	return imports
}

func parseUsePart(part, base string) (string, string, bool) {
	name, alias := splitAlias(stripQualifier(part))
	if base != "" && name != "" {
		name = base + `\` + name
	}
	name = autoload.NormalizeName(name)
	if name == "" {
		return "", "", false
	}
	if alias == "" {
		alias = lastSegment(name)
	}
	if alias == "" {
		return "", "", false
	}
	return name, alias, true
}

// stripQualifier drops the function/const import qualifier.
func stripQualifier(part string) string {
	part = strings.TrimSpace(part)
	lower := strings.ToLower(part)
	if strings.HasPrefix(lower, "function ") {
		return strings.TrimSpace(part[len("function "):])
	}
	if strings.HasPrefix(lower, "const ") {
		return strings.TrimSpace(part[len("const "):])
	}
	return part
}

func splitAlias(value string) (string, string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", ""
	}
	parts := aliasPattern.Split(value, 2)
	if len(parts) == 2 {
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	}
	return value, ""
}

func lastSegment(name string) string {
	segments := strings.Split(name, `\`)
	return strings.TrimSpace(segments[len(segments)-1])
}
