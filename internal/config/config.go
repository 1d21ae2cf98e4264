package config

import (
	"os"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"objtree/backend"
)

var ErrInvalid = errors.New("invalid configuration")

// Keys as used by flags, environment and viper lookups.
const (
	KeyBackendInput    = "backend.input"
	KeyBackendOutput   = "backend.output"
	KeyLogLevel        = "log.level"
	KeyLogDevelopment  = "log.development"
	KeyInspectMaxDepth = "inspect.max_depth"
)

const (
	DefaultBackend  = backend.TextName
	DefaultLogLevel = "info"
)

type Config struct {
	Backend Backend `yaml:"backend" mapstructure:"backend"`
	Log     Log     `yaml:"log" mapstructure:"log"`
	Inspect Inspect `yaml:"inspect" mapstructure:"inspect"`
}

// Backend names the tree formats read and written by default.
type Backend struct {
	Input  string `yaml:"input" mapstructure:"input"`
	Output string `yaml:"output" mapstructure:"output"`
}

type Log struct {
	Level       string `yaml:"level" mapstructure:"level"`
	Development bool   `yaml:"development" mapstructure:"development"`
}

type Inspect struct {
	// MaxDepth limits the printed outline; 0 prints everything.
	MaxDepth int `yaml:"max_depth" mapstructure:"max_depth"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	var c Config
	applyDefaults(&c)

	return &c
}

// LoadFile loads and parses a YAML config file from the given path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", path)
	}

	return Parse(data)
}

// Parse parses YAML data into a Config and fills in defaults.
func Parse(data []byte) (*Config, error) {
	var c Config

	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, errors.Wrap(err, "failed to parse config YAML")
	}

	applyDefaults(&c)

	return &c, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(c *Config) {
	if c.Backend.Input == "" {
		c.Backend.Input = DefaultBackend
	}

	if c.Backend.Output == "" {
		c.Backend.Output = c.Backend.Input
	}

	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}

	c.Log.Level = strings.ToLower(c.Log.Level)
}

// Validate checks backend names, log level and limits.
func (c *Config) Validate() error {
	names := backend.Names()

	for _, b := range []struct{ key, name string }{
		{KeyBackendInput, c.Backend.Input},
		{KeyBackendOutput, c.Backend.Output},
	} {
		if !slices.Contains(names, b.name) {
			return errors.Wrapf(ErrInvalid, "%s: unknown backend %q (known: %s)", b.key, b.name, strings.Join(names, ", "))
		}
	}

	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrapf(ErrInvalid, "%s: %v", KeyLogLevel, err)
	}

	if c.Inspect.MaxDepth < 0 {
		return errors.Wrapf(ErrInvalid, "%s: must not be negative, got %d", KeyInspectMaxDepth, c.Inspect.MaxDepth)
	}

	return nil
}

// Marshal serializes a Config to YAML.
func Marshal(c *Config) ([]byte, error) {
	return yaml.Marshal(c)
}

// Logger builds the zap logger described by the log section.
func (c *Config) Logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalid, "%s: %v", KeyLogLevel, err)
	}

	zc := zap.NewProductionConfig()
	if c.Log.Development {
		zc = zap.NewDevelopmentConfig()
	}

	zc.Level = zap.NewAtomicLevelAt(level)

	return zc.Build()
}
