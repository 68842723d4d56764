package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Config struct {
	// Simulated transport tuning. Latency is sampled uniformly from
	// [LatencyMinMs, LatencyMaxMs); writes fail with WriteFailureRate.
	LatencyMinMs     int     `toml:"latency_min_ms"`
	LatencyMaxMs     int     `toml:"latency_max_ms"`
	WriteFailureRate float64 `toml:"write_failure_rate"`

	JobPageSize       int `toml:"job_page_size"`
	CandidatePageSize int `toml:"candidate_page_size"`

	SeedJobs       int `toml:"seed_jobs"`
	SeedCandidates int `toml:"seed_candidates"`
}

func DefaultConfig() *Config {
	return &Config{
		LatencyMinMs:      200,
		LatencyMaxMs:      1200,
		WriteFailureRate:  0.08,
		JobPageSize:       10,
		CandidatePageSize: 50,
		SeedJobs:          25,
		SeedCandidates:    1000,
	}
}

func TalentflowDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".talentflow"), nil
}

func ConfigPath() (string, error) {
	dir, err := TalentflowDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

func DatabasePath() (string, error) {
	dir, err := TalentflowDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "db", "talentflow.sqlite"), nil
}

func EnsureDirectories() error {
	dir, err := TalentflowDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	dbDir := filepath.Join(dir, "db")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return err
	}

	return nil
}

func Load() (*Config, error) {
	configPath, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()

	// If config file doesn't exist, create it with defaults
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := EnsureDirectories(); err != nil {
			return nil, err
		}
		if err := Save(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	if _, err := toml.DecodeFile(configPath, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func Save(cfg *Config) error {
	configPath, err := ConfigPath()
	if err != nil {
		return err
	}

	f, err := os.Create(configPath)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

func (c *Config) Validate() error {
	if c.LatencyMinMs < 0 || c.LatencyMaxMs < c.LatencyMinMs {
		return fmt.Errorf("latency bounds out of order: [%d, %d)", c.LatencyMinMs, c.LatencyMaxMs)
	}
	if c.WriteFailureRate < 0 || c.WriteFailureRate >= 1 {
		return fmt.Errorf("write_failure_rate must be in [0, 1), got %g", c.WriteFailureRate)
	}
	if c.JobPageSize <= 0 || c.CandidatePageSize <= 0 {
		return fmt.Errorf("page sizes must be positive")
	}
	return nil
}
