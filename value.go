package configdir

import (
	"fmt"
	"strconv"
	"time"
)

// Root is a virtual key that accesses the entire configuration. Using it as
// the key when calling Store.Get returns the whole tree.
const Root = ""

// Value is a portion of the configuration tree with loosely-typed accessors.
// Accessors take a default returned when the value is absent or has another
// type.
type Value struct {
	raw any
	ok  bool
}

// HasValue reports whether the value is present.
func (v Value) HasValue() bool { return v.ok }

// Raw returns the underlying value, nil when absent.
func (v Value) Raw() any {
	if !v.ok {
		return nil
	}
	return v.raw
}

// Get descends further into a mapping value by dotted key.
func (v Value) Get(key string) Value {
	if key == Root {
		return v
	}
	m, isMap := v.raw.(map[string]any)
	if !v.ok || !isMap {
		return Value{}
	}
	s := Store{tree: m}
	return s.Get(key)
}

// String returns the value as a string.
func (v Value) String(def string) string {
	if s, isStr := v.raw.(string); v.ok && isStr {
		return s
	}
	return def
}

// Int returns the value as an int. Numeric strings and the integral numeric
// kinds produced by the built-in drivers all convert.
func (v Value) Int(def int) int {
	if !v.ok {
		return def
	}
	switch n := v.raw.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case uint64:
		return int(n)
	case float64:
		return int(n)
	case string:
		if parsed, err := strconv.Atoi(n); err == nil {
			return parsed
		}
	}
	return def
}

// Bool returns the value as a bool.
func (v Value) Bool(def bool) bool {
	if b, isBool := v.raw.(bool); v.ok && isBool {
		return b
	}
	return def
}

// Float64 returns the value as a float64.
func (v Value) Float64(def float64) float64 {
	if !v.ok {
		return def
	}
	switch n := v.raw.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return def
}

// Duration parses the value as a time.Duration, from a duration string like
// "10s" or from an integer nanosecond count.
func (v Value) Duration(def time.Duration) time.Duration {
	if !v.ok {
		return def
	}
	switch n := v.raw.(type) {
	case string:
		if d, err := time.ParseDuration(n); err == nil {
			return d
		}
	case int:
		return time.Duration(n)
	case int64:
		return time.Duration(n)
	}
	return def
}

// StringSlice returns the value as a []string, converting each element with
// fmt.Sprint when the sequence holds non-strings.
func (v Value) StringSlice(def []string) []string {
	seq, isSeq := v.raw.([]any)
	if !v.ok || !isSeq {
		return def
	}
	out := make([]string, len(seq))
	for i, item := range seq {
		if s, isStr := item.(string); isStr {
			out[i] = s
		} else {
			out[i] = fmt.Sprint(item)
		}
	}
	return out
}

// Map returns the value as a Tree, nil when it is not a mapping.
func (v Value) Map() Tree {
	if m, isMap := v.raw.(map[string]any); v.ok && isMap {
		return m
	}
	return nil
}
