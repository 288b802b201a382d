package main

import (
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Config represents the calyx configuration file (~/.config/calyx/config.yaml).
type Config struct {
	Arch       string `yaml:"arch"`
	TargetSpec string `yaml:"target_spec"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	ServerAddress string `yaml:"server_address"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "calyx", "config.yaml")
}

// applyConfig applies config file defaults where the corresponding CLI
// flag was not explicitly set.
func applyConfig(c *cli.Command, cfg Config) {
	if cfg.Arch != "" && !c.IsSet("arch") {
		archName = cfg.Arch
	}
	if cfg.TargetSpec != "" && !c.IsSet("cpu-target") {
		targetSpec = cfg.TargetSpec
	}
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		logFormat = cfg.LogFormat
	}
}

// LoadConfig reads the config file. Returns a zero Config if the file
// doesn't exist or fails to parse.
func LoadConfig() Config {
	path := configPath()
	if path == "" {
		return Config{}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}
	}
	return cfg
}
