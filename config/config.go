// Package config loads extractor settings from YAML and the environment.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vbalien/textrank/graph"
	"github.com/vbalien/textrank/keywords"
)

// Environment variables overriding file values.
const (
	EnvWindowSize = "TEXTRANK_WINDOW_SIZE"
	EnvDamping    = "TEXTRANK_DAMPING"
	EnvMinDiff    = "TEXTRANK_MIN_DIFF"
	EnvMaxSteps   = "TEXTRANK_MAX_STEPS"
	EnvTopN       = "TEXTRANK_TOP_N"
	EnvLogLevel   = "TEXTRANK_LOG_LEVEL"
)

const (
	defaultWindowSize = 5
	defaultTopN       = 10
	defaultLogLevel   = "info"
)

// Config represents extractor settings.
type Config struct {
	WindowSize    int              `yaml:"window_size"`
	Damping       float64          `yaml:"damping"`
	MinDiff       float64          `yaml:"min_diff"`
	MaxSteps      int              `yaml:"max_steps"`
	TopN          int              `yaml:"top_n"`
	CandidateTags []string         `yaml:"candidate_tags"`
	StopTokens    []keywords.Token `yaml:"stop_tokens"`
	LogLevel      string           `yaml:"log_level"`
}

// Default returns the settings that reproduce reference scores.
func Default() *Config {
	return &Config{
		WindowSize:    defaultWindowSize,
		Damping:       graph.DefaultDamping,
		MinDiff:       graph.DefaultMinDiff,
		MaxSteps:      graph.DefaultMaxSteps,
		TopN:          defaultTopN,
		CandidateTags: keywords.DefaultCandidateTags(),
		StopTokens:    keywords.DefaultStopTokens(),
		LogLevel:      defaultLogLevel,
	}
}

// Load reads the YAML file at path over the defaults, applies environment
// overrides and validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	c := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "error reading config file: %s", path)
		}
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, errors.Wrapf(err, "error unmarshalling config file: %s", path)
		}
	}

	if err := c.applyEnv(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadEnv loads a .env file from the working directory into the process
// environment. A missing file is not an error.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return errors.Wrapf(err, "failed to load env file: %s", f)
		}
	}
	return nil
}

// Save writes c as YAML to path.
func Save(path string, c *Config) error {
	if path == "" {
		return errors.New("config path required")
	}
	if c == nil {
		return errors.New("config required")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}
	if err := os.WriteFile(path, b, 0600); err != nil {
		return errors.Wrapf(err, "failed to write config file: %s", path)
	}
	return nil
}

// Validate rejects settings the extractor cannot use meaningfully.
func (c *Config) Validate() error {
	switch {
	case c.WindowSize < 1:
		return errors.Errorf("window_size must be at least 1, got %d", c.WindowSize)
	case c.Damping < 0 || c.Damping > 1:
		return errors.Errorf("damping must be within [0,1], got %v", c.Damping)
	case c.MinDiff < 0:
		return errors.Errorf("min_diff must not be negative, got %v", c.MinDiff)
	case c.MaxSteps < 1:
		return errors.Errorf("max_steps must be at least 1, got %d", c.MaxSteps)
	case c.TopN < 0:
		return errors.Errorf("top_n must not be negative, got %d", c.TopN)
	}
	return nil
}

// Options converts c to extractor options.
func (c *Config) Options() []keywords.Option {
	return []keywords.Option{
		keywords.WithWindowSize(c.WindowSize),
		keywords.WithDamping(c.Damping),
		keywords.WithMinDiff(c.MinDiff),
		keywords.WithMaxSteps(c.MaxSteps),
		keywords.WithCandidateTags(c.CandidateTags...),
		keywords.WithStopTokens(c.StopTokens...),
	}
}

func (c *Config) applyEnv() error {
	if err := envInt(EnvWindowSize, &c.WindowSize); err != nil {
		return err
	}
	if err := envFloat(EnvDamping, &c.Damping); err != nil {
		return err
	}
	if err := envFloat(EnvMinDiff, &c.MinDiff); err != nil {
		return err
	}
	if err := envInt(EnvMaxSteps, &c.MaxSteps); err != nil {
		return err
	}
	if err := envInt(EnvTopN, &c.TopN); err != nil {
		return err
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		c.LogLevel = v
	}
	return nil
}

func envInt(key string, dst *int) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return errors.Wrapf(err, "invalid %s", key)
	}
	*dst = n
	return nil
}

func envFloat(key string, dst *float64) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return errors.Wrapf(err, "invalid %s", key)
	}
	*dst = f
	return nil
}
