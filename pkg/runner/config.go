package runner

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// ConfigFile is the name of the project configuration file.
const ConfigFile = "calcula.toml"

// Config holds reduction settings, usually read from calcula.toml.
type Config struct {
	// MaxSteps bounds beta reductions per run; zero means unbounded.
	MaxSteps uint64 `toml:"max_steps"`
	// Weak stops reduction at the outermost abstraction.
	Weak bool `toml:"weak"`
	// KeepNames prints free variables with their source names.
	KeepNames bool `toml:"keep_names"`
	// Prelude makes the Church prelude and numerals available.
	Prelude bool `toml:"prelude"`
	// Define lists named terms in the order they are resolved. Each may
	// refer to the prelude and to earlier definitions.
	Define []Definition `toml:"define"`
}

// Definition is a named term in source form.
type Definition struct {
	Name string `toml:"name"`
	Term string `toml:"term"`
}

// LoadConfig loads a calcula.toml file. Unknown keys are an error.
func LoadConfig(path string) (*Config, error) {
	var config Config
	md, err := toml.DecodeFile(path, &config)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.Errorf("parsing %s: unknown keys %v", path, undecoded)
	}
	for i, def := range config.Define {
		if def.Name == "" {
			return nil, errors.Errorf("parsing %s: define #%d has no name", path, i+1)
		}
	}
	return &config, nil
}

// FindConfig searches for calcula.toml starting from dir and walking up to
// parent directories, stopping at a .git boundary. Returns ("", nil, nil)
// if there is none.
func FindConfig(dir string) (string, *Config, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", nil, err
	}
	for {
		path := filepath.Join(dir, ConfigFile)
		if _, err := os.Stat(path); err == nil {
			config, err := LoadConfig(path)
			if err != nil {
				return "", nil, err
			}
			return path, config, nil
		}

		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return "", nil, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil, nil
		}
		dir = parent
	}
}

// ApplyEnv overrides settings from CALCULA_MAX_STEPS and CALCULA_WEAK.
// lookup is usually os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("CALCULA_MAX_STEPS"); ok && v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return errors.Wrap(err, "CALCULA_MAX_STEPS")
		}
		c.MaxSteps = n
	}
	if v, ok := lookup("CALCULA_WEAK"); ok && v != "" {
		weak, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrap(err, "CALCULA_WEAK")
		}
		c.Weak = weak
	}
	return nil
}
