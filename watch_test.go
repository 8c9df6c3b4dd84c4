package configdir

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestChanged(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name     string
		prev     map[string]time.Time
		next     map[string]time.Time
		expected bool
	}{
		{
			name:     "identical",
			prev:     map[string]time.Time{"a.yaml": now},
			next:     map[string]time.Time{"a.yaml": now},
			expected: false,
		},
		{
			name:     "touched",
			prev:     map[string]time.Time{"a.yaml": now},
			next:     map[string]time.Time{"a.yaml": now.Add(time.Second)},
			expected: true,
		},
		{
			name:     "added",
			prev:     map[string]time.Time{"a.yaml": now},
			next:     map[string]time.Time{"a.yaml": now, "b.yaml": now},
			expected: true,
		},
		{
			name:     "removed",
			prev:     map[string]time.Time{"a.yaml": now, "b.yaml": now},
			next:     map[string]time.Time{"a.yaml": now},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := changed(tt.prev, tt.next); got != tt.expected {
				t.Errorf("changed = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestWatchReloadsOnChange(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "app.yaml")
	if err := os.WriteFile(file, []byte("default: {gen: 1}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	reloaded := make(chan Tree, 1)
	l := &Loader{
		Option: &Option{
			WatchInterval: 10 * time.Millisecond,
			OnReload: func(tree Tree) {
				select {
				case reloaded <- tree:
				default:
				}
			},
		},
		store: NewStore(),
	}

	w, err := l.Watch(root)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if got := l.store.Get("app.gen").Int(0); got != 1 {
		t.Fatalf("initial load gen = %d", got)
	}

	// Force a newer mod time; coarse filesystem timestamps would otherwise
	// hide the rewrite.
	if err := os.WriteFile(file, []byte("default: {gen: 2}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(file, future, future); err != nil {
		t.Fatal(err)
	}

	select {
	case tree := <-reloaded:
		if got := tree["app"].(Tree)["gen"]; got != 2 {
			t.Errorf("reloaded gen = %v, want 2", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not reload")
	}

	if got := l.store.Get("app.gen").Int(0); got != 2 {
		t.Errorf("store gen after reload = %d", got)
	}
}

func TestWatchStop(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "app.yaml"), []byte("default: {gen: 1}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	l := &Loader{Option: &Option{WatchInterval: 10 * time.Millisecond}, store: NewStore()}
	w, err := l.Watch(root)
	if err != nil {
		t.Fatal(err)
	}
	w.Stop()
	w.Stop() // idempotent
}

func TestSameTree(t *testing.T) {
	a := Tree{"app": map[string]any{"name": "demo"}}
	b := Tree{"app": map[string]any{"name": "demo"}}
	c := Tree{"app": map[string]any{"name": "other"}}

	if same, err := sameTree(a, b); err != nil || !same {
		t.Errorf("sameTree(a, b) = %v, %v", same, err)
	}
	if same, err := sameTree(a, c); err != nil || same {
		t.Errorf("sameTree(a, c) = %v, %v", same, err)
	}
}
