package composer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ben-ranford/psrlint/internal/safeio"
)

const ManifestName = "composer.json"

type Manifest struct {
	Name        string   `json:"name"`
	Autoload    Autoload `json:"autoload"`
	AutoloadDev Autoload `json:"autoload-dev"`
}

type Autoload struct {
	PSR4 PSR4Map `json:"psr-4"`
}

// PSR4Map keeps the mapping's declaration order so that equal-length prefix
// ties resolve deterministically by insertion order.
type PSR4Map struct {
	Entries []PSR4Entry
}

type PSR4Entry struct {
	Prefix string
	Dirs   []string
}

func (m *PSR4Map) UnmarshalJSON(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))

	opening, err := decoder.Token()
	if err != nil {
		return err
	}
	if opening == nil {
		return nil
	}
	if delim, ok := opening.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("psr-4 mapping must be an object")
	}

	for decoder.More() {
		keyToken, err := decoder.Token()
		if err != nil {
			return err
		}
		prefix, ok := keyToken.(string)
		if !ok {
			return fmt.Errorf("psr-4 mapping key must be a string")
		}
		var value any
		if err := decoder.Decode(&value); err != nil {
			return err
		}
		dirs, err := directoryValues(value)
		if err != nil {
			return fmt.Errorf("psr-4 prefix %q: %w", prefix, err)
		}
		m.Entries = append(m.Entries, PSR4Entry{Prefix: prefix, Dirs: dirs})
	}

	_, err = decoder.Token()
	return err
}

func (m PSR4Map) MarshalJSON() ([]byte, error) {
	var buffer bytes.Buffer
	buffer.WriteByte('{')
	for i, entry := range m.Entries {
		if i > 0 {
			buffer.WriteByte(',')
		}
		key, err := json.Marshal(entry.Prefix)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(entry.Dirs)
		if err != nil {
			return nil, err
		}
		buffer.Write(key)
		buffer.WriteByte(':')
		buffer.Write(value)
	}
	buffer.WriteByte('}')
	return buffer.Bytes(), nil
}

func directoryValues(value any) ([]string, error) {
	switch typed := value.(type) {
	case string:
		return []string{typed}, nil
	case []any:
		dirs := make([]string, 0, len(typed))
		for _, item := range typed {
			dir, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("directory list must contain only strings")
			}
			dirs = append(dirs, dir)
		}
		return dirs, nil
	default:
		return nil, fmt.Errorf("value must be a string or a list of strings")
	}
}

// PSR4Entries returns the autoload then autoload-dev mappings in declaration
// order.
func (m Manifest) PSR4Entries() []PSR4Entry {
	entries := make([]PSR4Entry, 0, len(m.Autoload.PSR4.Entries)+len(m.AutoloadDev.PSR4.Entries))
	entries = append(entries, m.Autoload.PSR4.Entries...)
	entries = append(entries, m.AutoloadDev.PSR4.Entries...)
	return entries
}

// Load reads composer.json from the project root. A missing manifest is not
// an error; the second return value reports whether one was found.
func Load(repoPath string) (Manifest, bool, error) {
	path := filepath.Join(repoPath, ManifestName)
	data, err := safeio.ReadFileUnder(repoPath, path)
	if err != nil {
		if os.IsNotExist(err) {
			return Manifest{}, false, nil
		}
		return Manifest{}, false, err
	}

	manifest := Manifest{}
	if err := json.Unmarshal(data, &manifest); err != nil {
		return Manifest{}, false, fmt.Errorf("parse %s: %w", ManifestName, err)
	}
	return manifest, true, nil
}
