package composer

import (
	"encoding/json"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/ben-ranford/psrlint/internal/testutil"
)

func TestLoadReadsPSR4MappingInDeclarationOrder(t *testing.T) {
	root := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(root, ManifestName), `{
  "name": "acme/app",
  "autoload": {
    "psr-4": {
      "App\\Sub\\": "src/Sub/",
      "App\\": "src/",
      "Lib\\": ["lib/", "lib-extra/"]
    }
  }
}`)

	manifest, found, err := Load(root)
	if err != nil {
		t.Fatalf("load manifest: %v", err)
	}
	if !found {
		t.Fatal("expected manifest to be found")
	}

	want := []PSR4Entry{
		{Prefix: `App\Sub\`, Dirs: []string{"src/Sub/"}},
		{Prefix: `App\`, Dirs: []string{"src/"}},
		{Prefix: `Lib\`, Dirs: []string{"lib/", "lib-extra/"}},
	}
	if got := manifest.Autoload.PSR4.Entries; !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected entries: got %#v, want %#v", got, want)
	}
}

func TestLoadMergesAutoloadDevEntriesAfterAutoload(t *testing.T) {
	root := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(root, ManifestName), `{
  "autoload": {"psr-4": {"App\\": "src/"}},
  "autoload-dev": {"psr-4": {"Tests\\": "tests/"}}
}`)

	manifest, _, err := Load(root)
	if err != nil {
		t.Fatalf("load manifest: %v", err)
	}

	entries := manifest.PSR4Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Prefix != `App\` || entries[1].Prefix != `Tests\` {
		t.Fatalf("unexpected entry order: %#v", entries)
	}
}

func TestLoadToleratesMissingManifest(t *testing.T) {
	manifest, found, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Fatal("expected manifest to be reported missing")
	}
	if len(manifest.PSR4Entries()) != 0 {
		t.Fatalf("expected empty mapping, got %#v", manifest.PSR4Entries())
	}
}

func TestLoadRejectsInvalidJSON(t *testing.T) {
	root := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(root, ManifestName), `{"autoload": `)

	_, _, err := Load(root)
	if err == nil {
		t.Fatal("expected parse error, got nil")
	}
	if !strings.Contains(err.Error(), ManifestName) {
		t.Fatalf("error should name the manifest: %v", err)
	}
}

func TestUnmarshalRejectsNonStringDirectoryValues(t *testing.T) {
	var mapping PSR4Map
	err := json.Unmarshal([]byte(`{"App\\": 7}`), &mapping)
	if err == nil {
		t.Fatal("expected error for numeric directory value")
	}
}

func TestPSR4MapRoundTripsThroughJSON(t *testing.T) {
	original := PSR4Map{Entries: []PSR4Entry{
		{Prefix: `App\`, Dirs: []string{"src/"}},
		{Prefix: `Tests\`, Dirs: []string{"tests/", "tests-extra/"}},
	}}

	payload, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded PSR4Map
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(decoded, original) {
		t.Fatalf("round trip mismatch: got %#v", decoded)
	}
}
