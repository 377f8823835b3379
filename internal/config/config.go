// Package config holds pqbench settings and loads them from YAML or JSON
// files and PQBENCH_* environment variables.
//
// Precedence, lowest first: Default, the config file, the environment,
// then command-line flags (applied by the CLI).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sugawarayuuta/sonnet"
	"gopkg.in/yaml.v3"

	"github.com/randomizedcoder/elimination-pq/internal/bench"
	"github.com/randomizedcoder/elimination-pq/internal/logging"
)

// Environment variable overrides.
const (
	EnvThreads   = "PQBENCH_THREADS"
	EnvPushes    = "PQBENCH_PUSHES"
	EnvPops      = "PQBENCH_POPS"
	EnvRuns      = "PQBENCH_RUNS"
	EnvVariants  = "PQBENCH_VARIANTS" // comma-separated
	EnvKeys      = "PQBENCH_KEYS"
	EnvFormat    = "PQBENCH_FORMAT"
	EnvDB        = "PQBENCH_DB"
	EnvLogLevel  = "PQBENCH_LOG_LEVEL"
	EnvLogFormat = "PQBENCH_LOG_FORMAT"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the full set of pqbench settings.
type Config struct {
	Threads int `json:"threads" yaml:"threads"`
	Pushes  int `json:"pushes" yaml:"pushes"`
	Pops    int `json:"pops" yaml:"pops"`
	Runs    int `json:"runs" yaml:"runs"`

	// Variants selects which queues to measure; empty means all.
	Variants []string `json:"variants" yaml:"variants"`
	Keys     string   `json:"keys" yaml:"keys"`
	Format   string   `json:"format" yaml:"format"`

	// DB is the SQLite results archive. Empty disables archiving.
	DB string `json:"db" yaml:"db"`

	LogLevel  string `json:"log_level" yaml:"log_level"`
	LogFormat string `json:"log_format" yaml:"log_format"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Threads:   8,
		Pushes:    1000,
		Pops:      1000,
		Runs:      bench.DefaultRuns,
		Keys:      bench.KeysRandom,
		Format:    bench.FormatText,
		LogLevel:  "info",
		LogFormat: logging.FormatText,
	}
}

// Load reads path on top of Default. Files ending in .yaml or .yml are
// decoded as YAML, anything else as JSON. Fields missing from the file
// keep their default.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return cfg, fmt.Errorf("config: reading %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parsing YAML %s: %w", path, err)
		}
	default:
		if err := sonnet.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parsing JSON %s: %w", path, err)
		}
	}
	return cfg, nil
}

// ApplyEnv overlays any PQBENCH_* variables that are set onto cfg.
func ApplyEnv(cfg *Config) error {
	ints := []struct {
		name string
		dst  *int
	}{
		{EnvThreads, &cfg.Threads},
		{EnvPushes, &cfg.Pushes},
		{EnvPops, &cfg.Pops},
		{EnvRuns, &cfg.Runs},
	}
	for _, e := range ints {
		v, ok := os.LookupEnv(e.name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalid, e.name, v)
		}
		*e.dst = n
	}

	if v, ok := os.LookupEnv(EnvVariants); ok {
		cfg.Variants = SplitList(v)
	}
	strs := []struct {
		name string
		dst  *string
	}{
		{EnvKeys, &cfg.Keys},
		{EnvFormat, &cfg.Format},
		{EnvDB, &cfg.DB},
		{EnvLogLevel, &cfg.LogLevel},
		{EnvLogFormat, &cfg.LogFormat},
	}
	for _, e := range strs {
		if v, ok := os.LookupEnv(e.name); ok {
			*e.dst = strings.TrimSpace(v)
		}
	}
	return nil
}

// SplitList splits a comma-separated list, dropping empty items.
func SplitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Validate reports the first problem with cfg.
func (c Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := bench.Lookup(c.Variants); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if !bench.ValidFormat(c.Format) {
		return fmt.Errorf("%w: format %q (want one of %s)", ErrInvalid, c.Format, strings.Join(bench.Formats(), ", "))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	switch c.LogFormat {
	case "", logging.FormatText, logging.FormatJSON:
	default:
		return fmt.Errorf("%w: log format %q", ErrInvalid, c.LogFormat)
	}
	return nil
}

// Params returns the benchmark parameters described by c.
func (c Config) Params() bench.Params {
	return bench.Params{
		Threads: c.Threads,
		Pushes:  c.Pushes,
		Pops:    c.Pops,
		Runs:    c.Runs,
		Keys:    c.Keys,
	}
}
