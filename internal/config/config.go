package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nameone/upstream/pkg/shard"
)

// MaxShardSize is the largest shard the remote API accepts.
const MaxShardSize = 250 * shard.MiB

// Config defines configuration for the upstream CLI.
type Config struct {
	Server       string        `yaml:"server"`
	ShardSize    int64         `yaml:"shard_size"`
	ChunkSize    int64         `yaml:"chunk_size"`
	Timeout      time.Duration `yaml:"timeout"`
	ProbeTimeout time.Duration `yaml:"probe_timeout"`
	Verbose      bool          `yaml:"verbose"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Server:       "http://node1.metadisk.org",
		ShardSize:    MaxShardSize,
		ChunkSize:    8096,
		Timeout:      30 * time.Second,
		ProbeTimeout: time.Second,
	}
}

// yamlConfig is used for YAML unmarshaling with human-readable sizes and
// durations.
type yamlConfig struct {
	Server       string `yaml:"server"`
	ShardSize    string `yaml:"shard_size"`
	ChunkSize    int64  `yaml:"chunk_size"`
	Timeout      string `yaml:"timeout"`
	ProbeTimeout string `yaml:"probe_timeout"`
	Verbose      bool   `yaml:"verbose"`
}

// LoadFromFile loads configuration from a YAML file, layered over defaults.
func LoadFromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return Config{}, fmt.Errorf("parse config file: %w", err)
	}

	cfg := Default()

	if yc.Server != "" {
		cfg.Server = yc.Server
	}
	if yc.ShardSize != "" {
		size, err := shard.ParseSize(yc.ShardSize)
		if err != nil {
			return Config{}, fmt.Errorf("parse shard_size: %w", err)
		}
		cfg.ShardSize = size
	}
	if yc.ChunkSize != 0 {
		cfg.ChunkSize = yc.ChunkSize
	}
	if yc.Timeout != "" {
		d, err := time.ParseDuration(yc.Timeout)
		if err != nil {
			return Config{}, fmt.Errorf("parse timeout: %w", err)
		}
		cfg.Timeout = d
	}
	if yc.ProbeTimeout != "" {
		d, err := time.ParseDuration(yc.ProbeTimeout)
		if err != nil {
			return Config{}, fmt.Errorf("parse probe_timeout: %w", err)
		}
		cfg.ProbeTimeout = d
	}
	cfg.Verbose = yc.Verbose

	return cfg, nil
}

// LoadFromEnv loads configuration from environment variables with the
// UPSTREAM_ prefix.
func (c *Config) LoadFromEnv() error {
	if v := os.Getenv("UPSTREAM_SERVER"); v != "" {
		c.Server = v
	}
	if v := os.Getenv("UPSTREAM_SHARD_SIZE"); v != "" {
		size, err := shard.ParseSize(v)
		if err != nil {
			return fmt.Errorf("parse UPSTREAM_SHARD_SIZE: %w", err)
		}
		c.ShardSize = size
	}
	if v := os.Getenv("UPSTREAM_CHUNK_SIZE"); v != "" {
		size, err := shard.ParseSize(v)
		if err != nil {
			return fmt.Errorf("parse UPSTREAM_CHUNK_SIZE: %w", err)
		}
		c.ChunkSize = size
	}
	if v := os.Getenv("UPSTREAM_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse UPSTREAM_TIMEOUT: %w", err)
		}
		c.Timeout = d
	}
	if v := os.Getenv("UPSTREAM_VERBOSE"); v != "" {
		c.Verbose = v == "true" || v == "1"
	}
	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server == "" {
		return errors.New("config: server is required")
	}
	if c.ShardSize <= 0 {
		return errors.New("config: shard_size must be positive")
	}
	if c.ShardSize > MaxShardSize {
		return errors.New("config: shard_size exceeds the 250m maximum")
	}
	if c.ChunkSize <= 0 {
		return errors.New("config: chunk_size must be positive")
	}
	return nil
}

// Merge merges override values into c, returning a new Config. Zero values
// in override are ignored.
func (c Config) Merge(override Config) Config {
	if override.Server != "" {
		c.Server = override.Server
	}
	if override.ShardSize != 0 {
		c.ShardSize = override.ShardSize
	}
	if override.ChunkSize != 0 {
		c.ChunkSize = override.ChunkSize
	}
	if override.Timeout != 0 {
		c.Timeout = override.Timeout
	}
	if override.ProbeTimeout != 0 {
		c.ProbeTimeout = override.ProbeTimeout
	}
	if override.Verbose {
		c.Verbose = override.Verbose
	}
	return c
}
