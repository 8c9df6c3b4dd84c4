package configdir

import (
	"io/fs"
	"path"
	"strings"
)

// Lister discovers configuration files. It receives the filesystem rooted at
// the load directory and a comma-separated glob set, and returns the matching
// paths relative to that root. The returned order must be deterministic for a
// given filesystem state; it decides which file wins if two files normalize
// to the same key path.
type Lister func(fsys fs.FS, pattern string) ([]string, error)

// walkLister is the default Lister: a recursive fs.WalkDir matching base
// names against the glob set. WalkDir visits entries in lexical order, which
// satisfies the determinism requirement.
func walkLister(fsys fs.FS, pattern string) ([]string, error) {
	globs := splitPattern(pattern)

	var files []string
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ok, err := matchAny(globs, d.Name())
		if err != nil {
			return err
		}
		if ok {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func splitPattern(pattern string) []string {
	parts := strings.Split(pattern, ",")
	globs := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			globs = append(globs, p)
		}
	}
	return globs
}

func matchAny(globs []string, name string) (bool, error) {
	for _, g := range globs {
		ok, err := path.Match(g, name)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
