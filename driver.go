package configdir

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

type Serializer interface {
	Encode(v any) (out []byte, err error)
	Decode(blob []byte, v any) (err error)
}

// Driver interface.
type Driver interface {
	Name() string
	Aliases() []string // alias format names, use for resolve format name
	Pattern() string   // file glob set matching the driver's extensions
	Serializer
	GetSerializer() Serializer
}

// StdDriver struct
type StdDriver struct {
	name       string
	aliases    []string
	pattern    string
	serializer Serializer
}

func (d *StdDriver) GetSerializer() Serializer {
	return d.serializer
}

// NewDriver new std driver instance.
func NewDriver(name string, serializer Serializer) *StdDriver {
	return &StdDriver{name: name, serializer: serializer}
}

// WithAliases set aliases for driver
func (d *StdDriver) WithAliases(aliases ...string) *StdDriver {
	d.aliases = aliases
	return d
}

// WithAlias add alias for driver
func (d *StdDriver) WithAlias(alias string) *StdDriver {
	d.aliases = append(d.aliases, alias)
	return d
}

// WithPattern set the comma-separated glob set for the driver
func (d *StdDriver) WithPattern(pattern string) *StdDriver {
	d.pattern = pattern
	return d
}

// Name of driver
func (d *StdDriver) Name() string { return d.name }

// Aliases format name of driver
func (d *StdDriver) Aliases() []string {
	return d.aliases
}

// Pattern of driver
func (d *StdDriver) Pattern() string { return d.pattern }

// Decode of driver
func (d *StdDriver) Decode(blob []byte, v any) (err error) {
	return d.serializer.Decode(blob, v)
}

// Encode of driver
func (d *StdDriver) Encode(v any) ([]byte, error) {
	return d.serializer.Encode(v)
}

/*************************************************************
 * Yaml driver
 *************************************************************/

// YamlDriver instance fot yaml
var YamlDriver = NewDriver("yaml", &yamlSerializer{}).
	WithAliases("yml").
	WithPattern("*.yaml,*.yml")

type yamlSerializer struct {
}

// Decode for the driver
func (d *yamlSerializer) Decode(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}

// Encode for the driver
func (d *yamlSerializer) Encode(v any) (out []byte, err error) {
	return yaml.Marshal(v)
}

/*************************************************************
 * Json driver
 *************************************************************/

// JsonDriver instance for json
var JsonDriver = NewDriver("json", &jsonSerializer{}).
	WithPattern("*.json")

type jsonSerializer struct {
}

// Decode for the driver. An empty document decodes to nothing rather than
// erroring, matching the tolerance of the yaml driver.
func (d *jsonSerializer) Decode(data []byte, v any) error {
	decoder := json.NewDecoder(strings.NewReader(string(data)))
	if err := decoder.Decode(v); err != nil && err != io.EOF {
		return err
	}
	return nil
}

// Encode for the driver
func (d *jsonSerializer) Encode(v any) (out []byte, err error) {
	return json.MarshalIndent(v, "", "  ")
}

/*************************************************************
 * Toml driver
 *************************************************************/

// TomlDriver instance for toml
var TomlDriver = NewDriver("toml", &tomlSerializer{}).
	WithAliases("tml").
	WithPattern("*.toml")

type tomlSerializer struct {
}

// Decode for the driver
func (d *tomlSerializer) Decode(data []byte, v any) error {
	return toml.Unmarshal(data, v)
}

// Encode for the driver
func (d *tomlSerializer) Encode(v any) (out []byte, err error) {
	var buf strings.Builder
	if err := toml.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return []byte(buf.String()), nil
}

/*************************************************************
 * driver registry
 *************************************************************/

var drivers = map[string]Driver{
	YamlDriver.Name(): YamlDriver,
	JsonDriver.Name(): JsonDriver,
	TomlDriver.Name(): TomlDriver,
}

var aliasMap = func() map[string]string {
	m := make(map[string]string)
	for name, d := range drivers {
		for _, alias := range d.Aliases() {
			m[alias] = name
		}
	}
	return m
}()

// resolveFormat resolves format, check is alias
func resolveFormat(f string) string {
	if name, ok := aliasMap[f]; ok {
		return name
	}
	return f
}

// DriverByName returns a registered driver by its name or alias, or nil when
// no such driver exists.
func DriverByName(name string) Driver {
	return drivers[resolveFormat(name)]
}
