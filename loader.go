package configdir

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

// Load runs one load of dir. Stages run strictly in order: discover, then a
// concurrent read+parse per file, then profile resolution, then commit. Any
// failure before commit aborts the call and leaves the store exactly as it
// was. For a real load the returned Tree is the store's live tree; for a dry
// run it is a fresh tree owned by the caller.
func (l *Loader) Load(dir string) (Tree, error) {
	opt, err := resolveOptions(l.Option)
	if err != nil {
		return nil, err
	}
	return l.load(dir, opt)
}

// load drives one load with already-resolved options.
func (l *Loader) load(dir string, opt *Option) (Tree, error) {
	fsys, err := rootFS(opt.FS, dir)
	if err != nil {
		return nil, err
	}

	if opt.Debug || opt.Verbose {
		fmt.Printf("Current environment: '%v'\n", opt.Profile)
	}

	files, err := opt.Lister(fsys, opt.Pattern)
	if err != nil {
		return nil, wrapDiscovery(dir, err)
	}

	entries, err := l.loadFiles(fsys, files, opt)
	if err != nil {
		if (opt.Debug || opt.Verbose) && !opt.Silent {
			fmt.Printf("Failed to load configuration from %v, got %v\n", dir, err)
		}
		return nil, err
	}

	for i := range entries {
		parsed, _ := entries[i].Value.(map[string]any)
		entries[i].Value = resolveProfile(parsed, opt.DefaultProfile, opt.Profile)
	}

	if opt.DryRun {
		return buildTree(entries), nil
	}
	l.store.Replace(entries)
	return l.store.Tree(), nil
}

// loadFiles reads and parses every discovered file concurrently. The first
// failure aborts the batch; entries keep discovery order regardless of which
// goroutine finishes first.
func (l *Loader) loadFiles(fsys fs.FS, files []string, opt *Option) ([]Entry, error) {
	entries := make([]Entry, len(files))

	var g errgroup.Group
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if opt.Debug || opt.Verbose {
				fmt.Printf("Loading configurations from file '%v'...\n", file)
			}

			data, err := fs.ReadFile(fsys, file)
			if err != nil {
				return wrapRead(file, err)
			}
			text, err := opt.Encoding.decode(data)
			if err != nil {
				return wrapRead(file, err)
			}

			var parsed map[string]any
			if err := opt.Driver.Decode(text, &parsed); err != nil {
				return newParseError(file, err)
			}

			entries[i] = Entry{
				Path:  dottedPath(file, opt.Normalizer),
				Value: parsed,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}

// rootFS resolves the load root to a filesystem. With no caller-supplied
// fs.FS the directory is resolved to an absolute OS path; otherwise dir is
// taken as a subdirectory of the supplied filesystem.
func rootFS(fsys fs.FS, dir string) (fs.FS, error) {
	if fsys == nil {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, wrapDiscovery(dir, err)
		}
		return os.DirFS(abs), nil
	}
	if dir == "" || dir == "." {
		return fsys, nil
	}
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		return nil, wrapDiscovery(dir, err)
	}
	return sub, nil
}
