package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is typeahead's optional on-disk configuration, read the way
// alterx.Config is: a YAML file overriding the defaults that parseFlags
// otherwise sets on Options.
type Config struct {
	Dictionary string `yaml:"dictionary"`
	Port       int    `yaml:"port"`
}

// LoadConfig reads a YAML config file at path. A missing file is not an
// error; it just means every option falls back to its flag default.
func LoadConfig(path string) (*Config, error) {
	bin, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(bin, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
