package configdir

import (
	"fmt"
	"io/fs"
	"sync"
	"time"

	"github.com/linxlib/configdir/internal/unreachable"
)

// Watcher polls a loaded directory and reloads the store when any discovered
// file's modification time changes.
type Watcher struct {
	loader *Loader
	opt    *Option
	dir    string

	modTimes map[string]time.Time

	stop chan struct{}
	once sync.Once
}

// Watch performs an initial load of dir and then polls it every
// opt.WatchInterval, reloading on change. opt.OnReload, when set, is invoked
// after a reload that actually changed the store's contents.
func (l *Loader) Watch(dir string) (*Watcher, error) {
	opt, err := resolveOptions(l.Option)
	if err != nil {
		return nil, err
	}
	if _, err := l.load(dir, opt); err != nil {
		return nil, err
	}

	w := &Watcher{
		loader: l,
		opt:    opt,
		dir:    dir,
		stop:   make(chan struct{}),
	}
	w.modTimes, _ = w.scan()

	go w.run()
	return w, nil
}

// Stop ends polling. Safe to call more than once.
func (w *Watcher) Stop() {
	w.once.Do(func() { close(w.stop) })
}

func (w *Watcher) run() {
	timer := time.NewTimer(w.opt.WatchInterval)
	defer timer.Stop()

	for {
		select {
		case <-w.stop:
			return
		case <-timer.C:
			w.poll()
			timer.Reset(w.opt.WatchInterval)
		}
	}
}

func (w *Watcher) poll() {
	modTimes, err := w.scan()
	if err != nil || !changed(w.modTimes, modTimes) {
		return
	}

	before := w.loader.store.Map()
	tree, err := w.loader.load(w.dir, w.opt)
	if err != nil {
		if !w.opt.Silent {
			fmt.Printf("Failed to reload configuration from %v, got error %v\n", w.dir, err)
		}
		return
	}
	w.modTimes = modTimes

	if w.opt.OnReload == nil {
		return
	}
	same, err := sameTree(before, tree)
	if err != nil {
		// Both trees came out of our own load pipeline.
		fmt.Println(unreachable.Wrap(err))
		return
	}
	if !same {
		w.opt.OnReload(tree)
	}
}

// scan lists the watched files and records their modification times.
func (w *Watcher) scan() (map[string]time.Time, error) {
	fsys, err := rootFS(w.opt.FS, w.dir)
	if err != nil {
		return nil, err
	}
	files, err := w.opt.Lister(fsys, w.opt.Pattern)
	if err != nil {
		return nil, err
	}

	modTimes := make(map[string]time.Time, len(files))
	for _, file := range files {
		info, err := fs.Stat(fsys, file)
		if err != nil {
			return nil, err
		}
		modTimes[file] = info.ModTime()
	}
	return modTimes, nil
}

// changed reports whether any file was added, removed, or touched since the
// previous scan.
func changed(prev, next map[string]time.Time) bool {
	if len(prev) != len(next) {
		return true
	}
	for f, t := range next {
		if v, ok := prev[f]; !ok || t.After(v) {
			return true
		}
	}
	return false
}
