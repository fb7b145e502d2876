package confloader

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultEnvPrefix is the default environment variable prefix.
const DefaultEnvPrefix = "HUBLINK_"

// Loader loads configuration from multiple sources.
type Loader struct {
	k         *koanf.Koanf
	envPrefix string
	filePath  string
	overrides map[string]any
	known     map[string]string // underscored form -> dotted key
}

// Option is a function that configures the Loader.
type Option func(*Loader)

// WithOverrides layers values over file and environment, typically from
// command-line flags. Keys are dotted koanf paths.
func WithOverrides(values map[string]any) Option {
	return func(l *Loader) {
		l.overrides = values
	}
}

// WithConfigFile sets the configuration file path.
func WithConfigFile(path string) Option {
	return func(l *Loader) {
		l.filePath = path
	}
}

// NewLoader creates a new configuration loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		k:         koanf.New("."),
		envPrefix: DefaultEnvPrefix,
		known:     make(map[string]string),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Load reads the file (if any), the environment and the overrides, in that
// order of increasing precedence, then unmarshals into target. Fields not
// set by any source keep the value target had.
func (l *Loader) Load(target any) error {
	l.learnKeys(target)

	if l.filePath != "" {
		if err := l.LoadFile(l.filePath); err != nil {
			return fmt.Errorf("load config file: %w", err)
		}
	}

	if err := l.LoadEnv(); err != nil {
		return err
	}

	if len(l.overrides) > 0 {
		if err := l.LoadMap(l.overrides); err != nil {
			return err
		}
	}

	if err := l.Unmarshal(target); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	return nil
}

// LoadFile loads configuration from a YAML file.
func (l *Loader) LoadFile(path string) error {
	if path == "" {
		return nil
	}
	if err := l.k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("load file %s: %w", path, err)
	}
	return nil
}

// LoadEnv loads configuration from environment variables.
// HUBLINK_SERVER_HTTP_ADDRESS maps to server.http.address. Keys learned
// from the target struct take precedence, so underscores inside a key
// name survive.
func (l *Loader) LoadEnv() error {
	provider := env.Provider(l.envPrefix, ".", l.envKey)
	if err := l.k.Load(provider, nil); err != nil {
		return fmt.Errorf("load env: %w", err)
	}
	return nil
}

func (l *Loader) envKey(name string) string {
	s := strings.ToLower(strings.TrimPrefix(name, l.envPrefix))
	if key, ok := l.known[s]; ok {
		return key
	}
	return strings.ReplaceAll(s, "_", ".")
}

// LoadMap loads configuration from a map of dotted keys.
func (l *Loader) LoadMap(data map[string]any) error {
	if err := l.k.Load(mapProvider(data), nil); err != nil {
		return fmt.Errorf("load map: %w", err)
	}
	return nil
}

// Unmarshal unmarshals the loaded configuration into the target struct
// using koanf tags.
func (l *Loader) Unmarshal(target any) error {
	return l.k.Unmarshal("", target)
}

// learnKeys records every koanf-tagged leaf of target.
func (l *Loader) learnKeys(target any) {
	for _, key := range StructKeys(target) {
		l.known[strings.ReplaceAll(key, ".", "_")] = key
	}
}

// StructKeys lists the dotted koanf keys of the leaf fields of v,
// which must be a struct or a pointer to one.
func StructKeys(v any) []string {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	var keys []string
	collectKeys(t, "", &keys)
	return keys
}

func collectKeys(t reflect.Type, prefix string, keys *[]string) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag := strings.Split(f.Tag.Get("koanf"), ",")[0]
		if tag == "" || tag == "-" {
			continue
		}
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		ft := f.Type
		for ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if ft.Kind() == reflect.Struct && ft.PkgPath() != "time" {
			collectKeys(ft, key, keys)
			continue
		}
		*keys = append(*keys, key)
	}
}
