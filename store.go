package configdir

import (
	"strings"
	"sync"
)

// Tree is a schema-less nested configuration mapping. Values are scalars,
// []any sequences, or further Trees (decoded as map[string]any).
type Tree = map[string]any

// Entry pairs a dotted path derived from a file's location with that file's
// resolved configuration value. Entries only live for the duration of one
// load.
type Entry struct {
	Path  string
	Value any
}

// Store holds the canonical configuration tree. Exactly one shared instance
// (DefaultStore) exists per process; loads mutate its contents in place, so a
// Tree reference obtained from it observes every later reload.
type Store struct {
	mu   sync.RWMutex
	tree Tree
}

// DefaultStore is the process-wide configuration store used by the
// package-level Load and Clear functions. Its identity never changes across
// reloads.
var DefaultStore = NewStore()

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{tree: make(Tree)}
}

// Tree returns the store's live underlying tree, not a copy. The same map is
// handed out for the life of the process, so holders see the contents of
// every later reload through it. Concurrent readers that overlap with loads
// should prefer Get or Map, which synchronize with Replace.
func (s *Store) Tree() Tree {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree
}

// Clear removes every top-level key, leaving the same tree instance empty.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

func (s *Store) clearLocked() {
	for k := range s.tree {
		delete(s.tree, k)
	}
}

// Replace commits one load's entries as a single step: the next tree is built
// first, then the old contents are cleared and the new top-level keys moved
// in under the write lock, so no synchronized reader can observe the store
// empty or mixed between two loads. The tree instance itself is never
// swapped.
func (s *Store) Replace(entries []Entry) {
	next := buildTree(entries)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
	for k, v := range next {
		s.tree[k] = v
	}
}

// Get retrieves the value at a dotted key path. The empty key returns the
// whole tree.
func (s *Store) Get(key string) Value {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if key == Root {
		return Value{raw: s.tree, ok: true}
	}

	var current any = s.tree
	for _, part := range strings.Split(key, ".") {
		m, isMap := current.(map[string]any)
		if !isMap {
			return Value{}
		}
		v, exists := m[part]
		if !exists {
			return Value{}
		}
		current = v
	}
	return Value{raw: current, ok: true}
}

// Has reports whether a dotted key path is present.
func (s *Store) Has(key string) bool {
	return s.Get(key).ok
}

// Map returns a deep copy of the current tree, detached from later reloads.
func (s *Store) Map() Tree {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneTree(s.tree)
}

// Len returns the number of top-level keys.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tree)
}

// buildTree assigns each entry's value at its dotted path in a fresh tree.
// Later entries win on colliding paths, matching discovery order.
func buildTree(entries []Entry) Tree {
	target := make(Tree)
	for _, e := range entries {
		setPath(target, e.Path, e.Value)
	}
	return target
}

// setPath nested-assigns value at a dotted path, creating intermediate maps
// as needed. A non-map intermediate is overwritten; every entry owns the
// subtree rooted at its own path.
func setPath(target Tree, path string, value any) {
	parts := strings.Split(path, ".")
	current := target
	for _, part := range parts[:len(parts)-1] {
		next, isMap := current[part].(map[string]any)
		if !isMap {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}

func cloneTree(src Tree) Tree {
	dst := make(Tree, len(src))
	for k, v := range src {
		dst[k] = cloneValue(v)
	}
	return dst
}

func cloneValue(val any) any {
	switch v := val.(type) {
	case map[string]any:
		return cloneTree(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return val
	}
}
