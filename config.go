// Package configdir loads a directory tree of configuration files into a
// single shared configuration store.
//
// Files discovered under the load root are decoded by a pluggable driver,
// reduced to one profile (the "default" section deep-merged with the active
// environment's section), and assigned into the store at the dotted key path
// derived from their location: conf/db/mongo.yaml loaded from conf becomes
// db.mongo. The store is a process-wide singleton mutated in place, so a
// reference obtained before a reload observes the reloaded values.
package configdir

import (
	"os"
	"regexp"
)

// Loader loads configuration directories into the shared store.
type Loader struct {
	*Option

	store *Store
}

// New initialize a Loader
func New(opt *Option) *Loader {
	if opt == nil {
		opt = &Option{}
	}

	if os.Getenv("CONFIGDIR_DEBUG_MODE") != "" {
		opt.Debug = true
	}

	if os.Getenv("CONFIGDIR_VERBOSE_MODE") != "" {
		opt.Verbose = true
	}

	if os.Getenv("CONFIGDIR_SILENT_MODE") != "" {
		opt.Silent = true
	}

	return &Loader{Option: opt, store: DefaultStore}
}

var testRegexp = regexp.MustCompile("_test|(\\.test$)")

// ENV return environment
func ENV() string {
	if env := os.Getenv("CONFIGDIR_ENV"); env != "" {
		return env
	}

	if testRegexp.MatchString(os.Args[0]) {
		return "test"
	}

	return "development"
}

// GetEnvironment get environment
func (l *Loader) GetEnvironment() string {
	if l.Profile == "" {
		return ENV()
	}
	return l.Profile
}

// Load loads the directory into the shared store and returns its live tree,
// or an isolated tree when opt.DryRun is set.
func Load(dir string, opt *Option) (Tree, error) {
	return New(opt).Load(dir)
}

// Clear empties the shared store immediately, independent of any load.
func Clear() {
	DefaultStore.Clear()
}
