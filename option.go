package configdir

import (
	"fmt"
	"io/fs"
	"path"
	"time"

	"go.uber.org/multierr"
	"golang.org/x/text/encoding/unicode"
)

// Encoding names the text encoding used to read configuration files.
type Encoding string

const (
	EncodingUTF8    Encoding = "utf-8"
	EncodingUTF16LE Encoding = "utf-16le"
	EncodingUTF16BE Encoding = "utf-16be"
)

// decode transcodes raw file bytes to UTF-8.
func (e Encoding) decode(data []byte) ([]byte, error) {
	switch e {
	case "", EncodingUTF8:
		return data, nil
	case EncodingUTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder().Bytes(data)
	case EncodingUTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder().Bytes(data)
	}
	return nil, fmt.Errorf("configdir: unsupported encoding %q", string(e))
}

func (e Encoding) valid() bool {
	switch e {
	case "", EncodingUTF8, EncodingUTF16LE, EncodingUTF16BE:
		return true
	}
	return false
}

// Option configures one Loader. The zero value means "use the defaults";
// resolveOptions overlays caller-supplied fields onto fresh defaults per
// load, so an Option never mutates package-level state.
type Option struct {
	// Pattern is a comma-separated glob set matched against file base names.
	// Defaults to the driver's pattern.
	Pattern string
	// Encoding of file contents. Defaults to UTF-8.
	Encoding Encoding
	// Driver decodes file contents. Defaults to YamlDriver.
	Driver Driver
	// Normalizer transforms each path segment into a key segment. Defaults
	// to CamelCase.
	Normalizer Normalizer
	// DefaultProfile is the profile merged underneath the active one.
	// Defaults to "default".
	DefaultProfile string
	// Profile is the active profile. Defaults to the value of CONFIGDIR_ENV,
	// then "test" inside test binaries, then "development".
	Profile string
	// DryRun computes the load into an isolated tree without touching the
	// store.
	DryRun bool
	// Lister discovers files. Defaults to a recursive lexical walk.
	Lister Lister
	// You can use embed.FS or any other fs.FS to load configs from. Default - use "os" package
	FS fs.FS
	// WatchInterval is the polling period for Watch. Defaults to one second.
	WatchInterval time.Duration
	// OnReload is invoked by a watcher after a reload changed the store.
	OnReload func(Tree)

	Debug   bool
	Verbose bool
	Silent  bool
}

// resolveOptions overlays opt onto built-in defaults and validates the
// result. All validation problems are reported together.
func resolveOptions(opt *Option) (*Option, error) {
	resolved := &Option{}
	if opt != nil {
		*resolved = *opt
	}

	if resolved.Driver == nil {
		resolved.Driver = YamlDriver
	}
	if resolved.Pattern == "" {
		resolved.Pattern = resolved.Driver.Pattern()
	}
	if resolved.Normalizer == nil {
		resolved.Normalizer = CamelCase
	}
	if resolved.DefaultProfile == "" {
		resolved.DefaultProfile = "default"
	}
	if resolved.Profile == "" {
		resolved.Profile = ENV()
	}
	if resolved.Lister == nil {
		resolved.Lister = walkLister
	}
	if resolved.WatchInterval == 0 {
		resolved.WatchInterval = time.Second
	}

	var err error
	if resolved.Pattern != "" {
		for _, g := range splitPattern(resolved.Pattern) {
			if _, matchErr := path.Match(g, "probe"); matchErr != nil {
				err = multierr.Append(err, fmt.Errorf("configdir: bad pattern %q: %w", g, matchErr))
			}
		}
	}
	if !resolved.Encoding.valid() {
		err = multierr.Append(err, fmt.Errorf("configdir: unsupported encoding %q", string(resolved.Encoding)))
	}
	if resolved.WatchInterval < 0 {
		err = multierr.Append(err, fmt.Errorf("configdir: negative watch interval %v", resolved.WatchInterval))
	}
	if err != nil {
		return nil, err
	}
	return resolved, nil
}
