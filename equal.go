package configdir

import (
	"bytes"
	"fmt"

	yaml "gopkg.in/yaml.v2"
)

// sameTree checks whether two trees represent the same YAML data. It's used
// by watchers to suppress reload callbacks when a reload produced no visible
// change.
func sameTree(a, b Tree) (bool, error) {
	left, err := yaml.Marshal(a)
	if err != nil {
		// Unreachable for trees produced by the built-in drivers, but
		// possible with a custom driver that decodes unmarshalable values.
		return false, fmt.Errorf("can't represent %#v as YAML: %v", a, err)
	}
	right, err := yaml.Marshal(b)
	if err != nil {
		return false, fmt.Errorf("can't represent %#v as YAML: %v", b, err)
	}
	return bytes.Equal(left, right), nil
}
