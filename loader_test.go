package configdir

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

// writeFiles lays out a config directory under a fresh temp root.
func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

// newTestLoader binds a loader to its own store so tests don't share
// DefaultStore.
func newTestLoader(opt *Option) *Loader {
	if opt == nil {
		opt = &Option{}
	}
	return &Loader{Option: opt, store: NewStore()}
}

func TestLoadDirectory(t *testing.T) {
	root := writeFiles(t, map[string]string{
		"app.yaml": `
default:
  name: demo
  workers: 2
production:
  workers: 8
`,
		"db/mongo.yaml": `
default:
  host: localhost
production:
  host: db.internal
`,
		"path-with-dashes/conf1.yaml": `
default:
  flag: true
`,
		"README.md": "not a config file",
	})

	l := newTestLoader(&Option{Profile: "production"})
	tree, err := l.Load(root)
	if err != nil {
		t.Fatal(err)
	}

	expected := Tree{
		"app": Tree{"name": "demo", "workers": 8},
		"db": map[string]any{
			"mongo": Tree{"host": "db.internal"},
		},
		"pathWithDashes": map[string]any{
			"conf1": Tree{"flag": true},
		},
	}
	if diff := cmp.Diff(expected, tree); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadIdempotent(t *testing.T) {
	root := writeFiles(t, map[string]string{
		"app.yaml": "default: {name: demo}\n",
	})

	l := newTestLoader(nil)
	if _, err := l.Load(root); err != nil {
		t.Fatal(err)
	}
	first := l.store.Map()

	if _, err := l.Load(root); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(first, l.store.Map()); diff != "" {
		t.Errorf("second load changed the store (-first +second):\n%s", diff)
	}
}

func TestLoadPreservesStoreIdentity(t *testing.T) {
	l := newTestLoader(nil)

	root1 := writeFiles(t, map[string]string{"app.yaml": "default: {gen: 1}\n"})
	tree, err := l.Load(root1)
	if err != nil {
		t.Fatal(err)
	}

	root2 := writeFiles(t, map[string]string{"app.yaml": "default: {gen: 2}\n"})
	if _, err := l.Load(root2); err != nil {
		t.Fatal(err)
	}

	// The tree handed out by the first load observes the second.
	if got := tree["app"].(Tree)["gen"]; got != 2 {
		t.Errorf("captured tree sees gen = %v, want 2", got)
	}
}

func TestDryRunDoesNotTouchStore(t *testing.T) {
	l := newTestLoader(nil)

	root1 := writeFiles(t, map[string]string{"app.yaml": "default: {gen: 1}\n"})
	if _, err := l.Load(root1); err != nil {
		t.Fatal(err)
	}
	before := l.store.Map()

	root2 := writeFiles(t, map[string]string{"other.yaml": "default: {gen: 2}\n"})
	dry := newTestLoader(&Option{DryRun: true})
	dry.store = l.store
	tree, err := dry.Load(root2)
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(before, l.store.Map()); diff != "" {
		t.Errorf("dry run mutated the store (-before +after):\n%s", diff)
	}
	if got := tree["other"].(Tree)["gen"]; got != 2 {
		t.Errorf("dry run tree gen = %v, want 2", got)
	}
	if l.store.Has("other") {
		t.Error("dry run result leaked into the store")
	}
}

func TestParseErrorShortCircuits(t *testing.T) {
	l := newTestLoader(nil)

	root1 := writeFiles(t, map[string]string{"app.yaml": "default: {gen: 1}\n"})
	if _, err := l.Load(root1); err != nil {
		t.Fatal(err)
	}
	before := l.store.Map()

	root2 := writeFiles(t, map[string]string{
		"good.yaml":   "default: {a: 1}\n",
		"broken.yaml": "default: [unclosed\n",
	})
	_, err := l.Load(root2)
	if err == nil {
		t.Fatal("expected a parse error")
	}

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("error is %T, want *ParseError", err)
	}
	if parseErr.File != "broken.yaml" {
		t.Errorf("ParseError.File = %q", parseErr.File)
	}
	if diff := cmp.Diff(before, l.store.Map()); diff != "" {
		t.Errorf("failed load mutated the store (-before +after):\n%s", diff)
	}
}

func TestDiscoveryFailure(t *testing.T) {
	l := newTestLoader(nil)
	if _, err := l.Load(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected an error for a missing directory")
	}
}

func TestEmptyDirectoryClearsStore(t *testing.T) {
	l := newTestLoader(nil)

	root := writeFiles(t, map[string]string{"app.yaml": "default: {gen: 1}\n"})
	if _, err := l.Load(root); err != nil {
		t.Fatal(err)
	}

	tree, err := l.Load(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if len(tree) != 0 {
		t.Errorf("tree has %d keys, want 0", len(tree))
	}
	if l.store.Len() != 0 {
		t.Errorf("store has %d keys after empty load", l.store.Len())
	}
}

func TestLoadJSONDriver(t *testing.T) {
	root := writeFiles(t, map[string]string{
		"app.json": `{"default": {"name": "demo"}, "production": {"name": "live"}}`,
	})

	l := newTestLoader(&Option{Driver: JsonDriver, Profile: "production"})
	tree, err := l.Load(root)
	if err != nil {
		t.Fatal(err)
	}
	if got := tree["app"].(Tree)["name"]; got != "live" {
		t.Errorf("app.name = %v, want %q", got, "live")
	}
}

func TestLoadTOMLDriver(t *testing.T) {
	root := writeFiles(t, map[string]string{
		"app.toml": "[default]\nname = \"demo\"\n[production]\nname = \"live\"\n",
	})

	l := newTestLoader(&Option{Driver: TomlDriver, Profile: "production"})
	tree, err := l.Load(root)
	if err != nil {
		t.Fatal(err)
	}
	if got := tree["app"].(Tree)["name"]; got != "live" {
		t.Errorf("app.name = %v, want %q", got, "live")
	}
}

func TestLoadFromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"conf/db/mongo.yaml": &fstest.MapFile{
			Data: []byte("default: {host: localhost}\n"),
		},
	}

	l := newTestLoader(&Option{FS: fsys})
	tree, err := l.Load("conf")
	if err != nil {
		t.Fatal(err)
	}
	if got := tree["db"].(map[string]any)["mongo"].(Tree)["host"]; got != "localhost" {
		t.Errorf("db.mongo.host = %v", got)
	}
}

func TestLoadDefaultsToTestProfile(t *testing.T) {
	root := writeFiles(t, map[string]string{
		"app.yaml": "default: {mode: normal}\ntest: {mode: testing}\n",
	})

	// Inside a test binary ENV() resolves to "test" unless CONFIGDIR_ENV is
	// set.
	if os.Getenv("CONFIGDIR_ENV") != "" {
		t.Skip("CONFIGDIR_ENV set in environment")
	}
	l := newTestLoader(nil)
	tree, err := l.Load(root)
	if err != nil {
		t.Fatal(err)
	}
	if got := tree["app"].(Tree)["mode"]; got != "testing" {
		t.Errorf("app.mode = %v, want %q", got, "testing")
	}
}
