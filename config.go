package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const defaultAddr = ":6379"

// config holds the server settings read from the YAML config file
type config struct {
	Addr     string `yaml:"addr"`
	Snapshot string `yaml:"snapshot"`
}

// `loadConfig` reads the config at path. An empty path or a
// missing file yields the defaults.
func loadConfig(path string) (config, error) {
	cfg := config{Addr: defaultAddr}
	if path == "" {
		return cfg, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	if cfg.Addr == "" {
		cfg.Addr = defaultAddr
	}
	return cfg, nil
}
