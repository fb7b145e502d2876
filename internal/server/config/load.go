package config

import (
	"github.com/yndnr/hublink-go/internal/infra/confloader"
)

// Load builds the configuration from defaults, then the YAML file at path
// (skipped when empty), then HUBLINK_* environment variables, and verifies it.
func Load(path string) (*ServerConfig, error) {
	return LoadWithOverrides(path, nil)
}

// LoadWithOverrides is Load with a final layer of dotted-key values, such
// as {"log.level": "debug"} from command-line flags.
func LoadWithOverrides(path string, overrides map[string]any) (*ServerConfig, error) {
	cfg := Default()
	loader := confloader.NewLoader(
		confloader.WithConfigFile(path),
		confloader.WithOverrides(overrides),
	)
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}
	if err := Verify(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
