package configdir

import (
	"fmt"
	"reflect"
	"time"

	"github.com/gookit/goutil/envutil"
	"github.com/mitchellh/mapstructure"
)

// ValDecodeHookFunc returns a mapstructure.DecodeHookFunc
// that parse ENV var, and more custom parse
func ValDecodeHookFunc(parseEnv, parseTime bool) mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}

		var err error
		str := data.(string)
		if parseEnv {
			// https://docs.docker.com/compose/environment-variables/env-file/
			str, err = envutil.ParseOrErr(str)
			if err != nil {
				return nil, err
			}
		}
		if len(str) < 2 {
			return str, nil
		}

		// start char is number(1-9)
		if str[0] > '0' && str[0] <= '9' {
			// parse time string. eg: 10s
			if parseTime && t.Kind() == reflect.Int64 {
				dur, err := time.ParseDuration(str)
				if err == nil {
					return dur, nil
				}
			}
		}
		return str, nil
	}
}

// Scan decodes the subtree at a dotted key path into out, which must be a
// pointer to a struct or map. String values may reference environment
// variables (${VAR} syntax) and duration fields accept strings like "10s".
// Struct fields are matched by yaml tag.
func (s *Store) Scan(key string, out any) error {
	v := s.Get(key)
	if !v.HasValue() {
		return fmt.Errorf("configdir: no value at %q", key)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       ValDecodeHookFunc(true, true),
		Result:           out,
		TagName:          "yaml",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(v.Raw())
}
