// Package config reads and writes she.yaml.
package config

import (
	"io/ioutil"
	"os"

	"github.com/coreos/pkg/capnslog"
	"github.com/ztrue/tracerr"
	"gopkg.in/yaml.v2"

	"github.com/pontaoski/she/interp"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/she", "config")

const FileName = "she.yaml"

type Config struct {
	MaxCallDepth int    `yaml:"max_call_depth"`
	Prompt       string `yaml:"prompt"`
	HistoryFile  string `yaml:"history_file"`
	LogLevel     string `yaml:"log_level"`
}

func Default() Config {
	return Config{
		MaxCallDepth: interp.DefaultMaxDepth,
		Prompt:       "SHE > ",
		HistoryFile:  ".she_history",
		LogLevel:     "WARNING",
	}
}

// Load reads path over the defaults. A missing file is not an error; keys
// absent from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := ioutil.ReadFile(path)
	if os.IsNotExist(err) {
		plog.Debugf("%s not found, using defaults", path)
		return cfg, nil
	}
	if err != nil {
		return cfg, tracerr.Wrap(err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, tracerr.Wrap(err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, tracerr.Errorf("%s: %v", path, err)
	}

	plog.Debugf("loaded %s: %+v", path, cfg)
	return cfg, nil
}

// Validate rejects settings no command can run with.
func (c Config) Validate() error {
	if c.MaxCallDepth < 0 {
		return tracerr.Errorf("max_call_depth must not be negative, got %d", c.MaxCallDepth)
	}
	return nil
}

// Save writes cfg to path, replacing any existing file.
func (c Config) Save(path string) error {
	out, err := yaml.Marshal(c)
	if err != nil {
		return tracerr.Wrap(err)
	}

	fi, err := os.Create(path)
	if err != nil {
		return tracerr.Wrap(err)
	}
	defer fi.Close()

	if _, err := fi.Write(out); err != nil {
		return tracerr.Wrap(err)
	}
	return nil
}
