// Package config loads the lab's YAML configuration file. Every field has a
// working default, so running without a file is always possible; flags in
// the commands override file values.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"ipv4-waitlist-lab/internal/source"
)

// Config holds all tunable settings.
type Config struct {
	Sources SourcesConfig `yaml:"sources"`
	History HistoryConfig `yaml:"history"`
	Storage StorageConfig `yaml:"storage"`
}

// SourcesConfig configures the two external data fetches.
type SourcesConfig struct {
	// WaitlistURL is the live waitlist JSON endpoint.
	WaitlistURL string `yaml:"waitlist_url"`

	// LedgerURL is the cleared-blocks CSV document.
	LedgerURL string `yaml:"ledger_url"`

	// Timeout bounds each fetch (default 30s).
	Timeout time.Duration `yaml:"timeout"`
}

// HistoryConfig configures the version-control history source for replays.
type HistoryConfig struct {
	// RepoDir is the git repository holding the tracked snapshot artifact.
	RepoDir string `yaml:"repo_dir"`

	// Artifact is the tracked file's path relative to the repo root.
	Artifact string `yaml:"artifact"`
}

// StorageConfig configures the optional archive sinks. Empty DSNs disable
// archiving; the core never requires storage.
type StorageConfig struct {
	PostgresDSN   string `yaml:"postgres_dsn"`
	ClickhouseDSN string `yaml:"clickhouse_dsn"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Sources: SourcesConfig{
			WaitlistURL: source.DefaultWaitlistURL,
			LedgerURL:   source.DefaultLedgerURL,
			Timeout:     source.DefaultTimeout,
		},
		History: HistoryConfig{
			RepoDir:  ".",
			Artifact: "waitlist.json",
		},
	}
}

// Load reads the YAML file at path and fills unset fields with defaults.
// An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.Sources.WaitlistURL == "" {
		c.Sources.WaitlistURL = def.Sources.WaitlistURL
	}
	if c.Sources.LedgerURL == "" {
		c.Sources.LedgerURL = def.Sources.LedgerURL
	}
	if c.Sources.Timeout <= 0 {
		c.Sources.Timeout = def.Sources.Timeout
	}
	if c.History.RepoDir == "" {
		c.History.RepoDir = def.History.RepoDir
	}
	if c.History.Artifact == "" {
		c.History.Artifact = def.History.Artifact
	}
}
