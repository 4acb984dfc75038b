// Package config loads the optional psrlint configuration file: extra
// built-in names, source extensions, and extra directory excludes.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/ben-ranford/psrlint/internal/safeio"
)

const (
	readConfigFileErrFmt = "read config file %s: %w"
	parseConfigErrFmt    = "parse config file %s: %w"
)

var probeNames = []string{".psrlint.yml", ".psrlint.yaml", "psrlint.toml", "psrlint.json"}

type Config struct {
	Builtins        []string
	ReplaceBuiltins bool
	Extensions      []string
	Exclude         []string
}

type rawConfig struct {
	Builtins        []string `yaml:"builtins" json:"builtins" toml:"builtins"`
	ReplaceBuiltins bool     `yaml:"replace_builtins" json:"replace_builtins" toml:"replace_builtins"`
	Extensions      []string `yaml:"extensions" json:"extensions" toml:"extensions"`
	Exclude         []string `yaml:"exclude" json:"exclude" toml:"exclude"`
}

// Load resolves and parses the config file. An explicit path must exist;
// otherwise the root is probed for the well-known names and absence yields
// the zero config.
func Load(repoPath, explicitPath string) (Config, string, error) {
	repoAbs, err := filepath.Abs(repoPath)
	if err != nil {
		return Config{}, "", fmt.Errorf("resolve repo path: %w", err)
	}
	explicitProvided := strings.TrimSpace(explicitPath) != ""

	configPath, found, err := resolveConfigPath(repoAbs, strings.TrimSpace(explicitPath))
	if err != nil {
		return Config{}, "", err
	}
	if !found {
		return Config{}, "", nil
	}

	data, err := readConfigFile(repoAbs, configPath, explicitProvided)
	if err != nil {
		return Config{}, "", fmt.Errorf(readConfigFileErrFmt, configPath, err)
	}
	raw, err := parseConfig(configPath, data)
	if err != nil {
		return Config{}, "", fmt.Errorf(parseConfigErrFmt, configPath, err)
	}

	return Config{
		Builtins:        trimmed(raw.Builtins),
		ReplaceBuiltins: raw.ReplaceBuiltins,
		Extensions:      normalizeExtensions(raw.Extensions),
		Exclude:         trimmed(raw.Exclude),
	}, configPath, nil
}

func resolveConfigPath(repoPath, explicitPath string) (string, bool, error) {
	if explicitPath != "" {
		candidate := explicitPath
		if !filepath.IsAbs(candidate) {
			candidate = filepath.Join(repoPath, candidate)
		}
		candidate = filepath.Clean(candidate)
		if _, err := os.Stat(candidate); err != nil {
			if os.IsNotExist(err) {
				return "", false, fmt.Errorf("config file not found: %s", candidate)
			}
			return "", false, fmt.Errorf(readConfigFileErrFmt, candidate, err)
		}
		return candidate, true, nil
	}

	for _, name := range probeNames {
		candidate := filepath.Join(repoPath, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !os.IsNotExist(err) {
			return "", false, fmt.Errorf(readConfigFileErrFmt, candidate, err)
		}
	}
	return "", false, nil
}

func readConfigFile(repoPath, path string, explicitProvided bool) ([]byte, error) {
	if !explicitProvided || isPathUnderRoot(repoPath, path) {
		return safeio.ReadFileUnder(repoPath, path)
	}
	return safeio.ReadFile(path)
}

func parseConfig(path string, data []byte) (rawConfig, error) {
	var cfg rawConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return rawConfig{}, fmt.Errorf("invalid JSON config: %w", err)
		}
		if decoder.More() {
			return rawConfig{}, fmt.Errorf("invalid JSON config: multiple JSON values")
		}
	case ".toml":
		decoder := toml.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return rawConfig{}, fmt.Errorf("invalid TOML config: %w", err)
		}
	default:
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil {
			return rawConfig{}, fmt.Errorf("invalid YAML config: %w", err)
		}
	}
	return cfg, nil
}

func normalizeExtensions(extensions []string) []string {
	normalized := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized = append(normalized, ext)
	}
	if len(normalized) == 0 {
		return nil
	}
	return normalized
}

func trimmed(values []string) []string {
	result := make([]string, 0, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		result = append(result, value)
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

func isPathUnderRoot(rootPath, targetPath string) bool {
	relative, err := filepath.Rel(rootPath, targetPath)
	if err != nil {
		return false
	}
	return relative != ".." && !strings.HasPrefix(relative, ".."+string(os.PathSeparator))
}
