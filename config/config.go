// Package config loads the dataset builder configuration from a YAML
// file, with environment variable overrides.
package config

import (
	"io/ioutil"
	"os"
	"runtime"
	"strconv"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

const (
	OutputDirEnvVar = "SKETCHBIN_OUTPUT_DIR"
	WorkersEnvVar   = "SKETCHBIN_WORKERS"
)

// DefaultMaxPerClass matches the reference tooling's per-class cap.
const DefaultMaxPerClass = 5000

type Config struct {
	InputDir  string `yaml:"input_dir"`
	OutputDir string `yaml:"output_dir"`

	// Classes is the allow-list of class names to convert. Empty
	// means every .bin file found is converted.
	Classes []string `yaml:"classes"`

	// Workers is the number of parallel shards the input files are
	// split across.
	Workers int `yaml:"workers"`

	// MaxPerClass caps the number of records rendered per input
	// stream; 0 means unlimited.
	MaxPerClass int `yaml:"max_per_class"`

	StrokeWidth float64 `yaml:"stroke_width"`
	OutputSize  int     `yaml:"output_size"`
}

func Default() Config {
	return Config{
		InputDir:    "data",
		OutputDir:   "dataset",
		Workers:     runtime.NumCPU(),
		MaxPerClass: DefaultMaxPerClass,
	}
}

// Load reads a YAML config file on top of the defaults and applies
// environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	b, err := ioutil.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "can't read config file %s", path)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "can't parse config file %s", path)
	}

	cfg.applyEnv()

	if cfg.Workers < 1 {
		cfg.Workers = 1
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	if dir := os.Getenv(OutputDirEnvVar); dir != "" {
		c.OutputDir = dir
	}
	if w := os.Getenv(WorkersEnvVar); w != "" {
		if n, err := strconv.Atoi(w); err == nil && n > 0 {
			c.Workers = n
		}
	}
}

// Allows reports whether the class passes the configured allow-list.
func (c *Config) Allows(class string) bool {
	if len(c.Classes) == 0 {
		return true
	}
	for _, name := range c.Classes {
		if name == class {
			return true
		}
	}
	return false
}
