package config

import (
	"bytes"
	"testing"

	"github.com/BurntSushi/toml"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative min latency", func(c *Config) { c.LatencyMinMs = -1 }},
		{"max below min", func(c *Config) { c.LatencyMaxMs = c.LatencyMinMs - 1 }},
		{"failure rate of one", func(c *Config) { c.WriteFailureRate = 1 }},
		{"negative failure rate", func(c *Config) { c.WriteFailureRate = -0.1 }},
		{"zero job page size", func(c *Config) { c.JobPageSize = 0 }},
		{"zero candidate page size", func(c *Config) { c.CandidatePageSize = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestConfigTOMLRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WriteFailureRate = 0.25
	cfg.SeedJobs = 5

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		t.Fatalf("encode: %v", err)
	}

	var out Config
	if _, err := toml.Decode(buf.String(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.WriteFailureRate != 0.25 || out.SeedJobs != 5 || out.JobPageSize != cfg.JobPageSize {
		t.Errorf("round trip mismatch: %+v", out)
	}
}
