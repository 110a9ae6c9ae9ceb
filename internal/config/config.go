package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"

	"github.com/BurntSushi/toml"
)

// Config represents the optional hedu configuration file.
type Config struct {
	Defaults DefaultsConfig `toml:"defaults"`
	Theme    ThemeConfig    `toml:"theme"`
}

// DefaultsConfig holds persistent flag defaults. Nil fields were not set.
type DefaultsConfig struct {
	Chars         *bool   `toml:"chars"`
	ShowIdentical *bool   `toml:"show_identical"`
	Checksum      *bool   `toml:"checksum"`
	Color         *string `toml:"color"`
	Limit         *string `toml:"limit"`
}

// ThemeConfig holds optional color overrides for the dump columns.
type ThemeConfig struct {
	Offset  *string `toml:"offset"`
	Rule    *string `toml:"rule"`
	Hex     *string `toml:"hex"`
	Chars   *string `toml:"chars"`
	Summary *string `toml:"summary"`
}

// Keys lists every key the config file understands as "table.key", in
// declaration order.
func Keys() []string {
	var keys []string
	top := reflect.TypeOf((*Config)(nil)).Elem()
	for i := 0; i < top.NumField(); i++ {
		table := top.Field(i)
		for j := 0; j < table.Type.NumField(); j++ {
			keys = append(keys, table.Tag.Get("toml")+"."+table.Type.Field(j).Tag.Get("toml"))
		}
	}
	return keys
}

// Path returns the resolved path to the config file.
func Path() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "hedu", "config.toml")
}

// Load reads the config file from the XDG path. Returns a zero Config
// (no error) if the file does not exist. Config is always optional.
func Load() (Config, error) {
	path := Path()
	if path == "" {
		return Config{}, nil
	}

	var cfg Config
	_, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, err
	}
	return cfg, nil
}
