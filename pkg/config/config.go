// Package config loads the socialgraph configuration from YAML with
// environment overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/socialgraph/pkg/algorithms"
	"github.com/dd0wney/socialgraph/pkg/validation"
)

// Environment variables that override file values.
const (
	EnvDataDir  = "SOCIALGRAPH_DATA_DIR"
	EnvAddr     = "SOCIALGRAPH_ADDR"
	EnvLogLevel = "LOG_LEVEL"
	EnvSeed     = "SOCIALGRAPH_SEED"
)

// Data formats understood by the persistence layer.
const (
	FormatJSON     = "json"
	FormatCSV      = "csv"
	FormatSnapshot = "snapshot"
)

// Config is the root configuration document.
type Config struct {
	Data      DataConfig      `yaml:"data"`
	Generator GeneratorConfig `yaml:"generator"`
	Analytics AnalyticsConfig `yaml:"analytics"`
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
}

// DataConfig controls where graphs are loaded from and saved to.
type DataConfig struct {
	Dir       string `yaml:"dir"`
	Format    string `yaml:"format"`
	BackupDir string `yaml:"backup_dir"`
}

// GeneratorConfig parameterises random graph generation.
type GeneratorConfig struct {
	Students int     `yaml:"students"`
	Density  float64 `yaml:"density"`
	Seed     uint64  `yaml:"seed"`
}

// AnalyticsConfig tunes centrality and community detection.
type AnalyticsConfig struct {
	TopN                 int     `yaml:"top_n"`
	EigenvectorMaxIter   int     `yaml:"eigenvector_max_iterations"`
	EigenvectorTolerance float64 `yaml:"eigenvector_tolerance"`
	CommunityMethod      string  `yaml:"community_method"`
}

// ServerConfig configures the GraphQL/metrics HTTP server.
type ServerConfig struct {
	Addr        string        `yaml:"addr"`
	ReadTimeout time.Duration `yaml:"read_timeout"`
}

// LogConfig configures the default logger.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns a configuration with safe defaults.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Dir:       "./data",
			Format:    FormatJSON,
			BackupDir: "./data/backups",
		},
		Generator: GeneratorConfig{
			Students: 30,
			Density:  0.15,
		},
		Analytics: AnalyticsConfig{
			TopN:                 5,
			EigenvectorMaxIter:   1000,
			EigenvectorTolerance: 1e-6,
			CommunityMethod:      "greedy_modularity",
		},
		Server: ServerConfig{
			Addr:        ":8080",
			ReadTimeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level: "INFO",
		},
	}
}

// Load reads the YAML file at path on top of the defaults and applies
// environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if dir := os.Getenv(EnvDataDir); dir != "" {
		c.Data.Dir = dir
	}
	if addr := os.Getenv(EnvAddr); addr != "" {
		c.Server.Addr = addr
	}
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.Log.Level = level
	}
	c.Generator.Seed = getEnvUint(EnvSeed, c.Generator.Seed)
}

// getEnvUint reads an unsigned integer environment variable with a default value
func getEnvUint(key string, defaultVal uint64) uint64 {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.ParseUint(val, 10, 64); err == nil {
			return n
		}
	}
	return defaultVal
}

// Validate checks every section and reports all problems found.
func (c *Config) Validate() error {
	cv := validation.NewConfigValidator("config")

	cv.Required("data.dir", c.Data.Dir).
		OneOf("data.format", c.Data.Format, []string{FormatJSON, FormatCSV, FormatSnapshot}).
		Required("data.backup_dir", c.Data.BackupDir)

	cv.NonNegative("generator.students", c.Generator.Students).
		Probability("generator.density", c.Generator.Density)

	cv.RangeInt("analytics.top_n", c.Analytics.TopN, 1, 100).
		Positive("analytics.eigenvector_max_iterations", c.Analytics.EigenvectorMaxIter).
		PositiveFloat("analytics.eigenvector_tolerance", c.Analytics.EigenvectorTolerance).
		Custom("analytics.community_method", func() error {
			_, err := algorithms.ParseCommunityMethod(c.Analytics.CommunityMethod)
			return err
		})

	cv.Required("server.addr", c.Server.Addr).
		MinDuration("server.read_timeout", c.Server.ReadTimeout, time.Second)

	cv.OneOf("log.level", strings.ToUpper(c.Log.Level), []string{"DEBUG", "INFO", "WARN", "ERROR"})

	return cv.Validate()
}
