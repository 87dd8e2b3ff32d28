// Package config provides centralized configuration management using Viper.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	appName  = "vibeprompt"
	fileName = appName + ".yml"
)

// Config holds all configuration values for vibeprompt.
type Config struct {
	Model          string        `mapstructure:"model" yaml:"model"`
	DefaultMode    string        `mapstructure:"default_mode" yaml:"default_mode"`
	SkipModeSelect bool          `mapstructure:"skip_mode_select" yaml:"skip_mode_select"`
	Timeout        time.Duration `mapstructure:"timeout" yaml:"timeout"`
	MaxImageBytes  int64         `mapstructure:"max_image_bytes" yaml:"max_image_bytes"`
	ExportDir      string        `mapstructure:"export_dir" yaml:"export_dir"`
	LogLevel       string        `mapstructure:"log_level" yaml:"log_level"`
	LogFile        string        `mapstructure:"log_file" yaml:"log_file"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() *Config {
	return &Config{
		Model:         "gemini-2.5-flash",
		DefaultMode:   "ui",
		Timeout:       60 * time.Second,
		MaxImageBytes: 20 << 20,
		ExportDir:     "prompts",
		LogLevel:      "info",
	}
}

// envKeys lists every key bound to a VIBEPROMPT_ variable.
var envKeys = []string{
	"model",
	"default_mode",
	"skip_mode_select",
	"timeout",
	"max_image_bytes",
	"export_dir",
	"log_level",
	"log_file",
}

// Load loads configuration with full precedence:
// CLI flags > ENV vars > project config > XDG global config > defaults
//
// A .env file in the working directory is loaded into the environment first;
// variables already set are not overridden.
func Load() (*Config, error) {
	if err := LoadDotEnv(".env"); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName(appName)

	d := Defaults()
	v.SetDefault("model", d.Model)
	v.SetDefault("default_mode", d.DefaultMode)
	v.SetDefault("skip_mode_select", d.SkipModeSelect)
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("max_image_bytes", d.MaxImageBytes)
	v.SetDefault("export_dir", d.ExportDir)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_file", d.LogFile)

	v.SetEnvPrefix("VIBEPROMPT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for _, key := range envKeys {
		if err := v.BindEnv(key, EnvName(key)); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	// Load global config first (if exists)
	globalPath := GlobalPath()
	if fileExists(globalPath) {
		v.SetConfigFile(globalPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
	}

	// Merge project config on top (if exists)
	projectPath := ProjectPath()
	if fileExists(projectPath) {
		v.SetConfigFile(projectPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// LoadDotEnv loads KEY=VALUE pairs from path into the process environment.
// A missing file is not an error.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("loading %s: %w", path, err)
}

// EnvName returns the environment variable bound to key.
func EnvName(key string) string {
	return "VIBEPROMPT_" + strings.ToUpper(key)
}

// Exists returns true if any config file exists (global or project).
func Exists() bool {
	return fileExists(GlobalPath()) || fileExists(ProjectPath())
}

// GlobalPath returns the XDG global config path.
// Returns ~/.config/vibeprompt/vibeprompt.yml or $XDG_CONFIG_HOME/vibeprompt/vibeprompt.yml.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName, fileName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appName, fileName)
}

// ProjectPath returns the project-local config path.
func ProjectPath() string {
	return fileName
}

// WriteGlobal writes the config to the XDG global location.
func WriteGlobal(cfg *Config) error {
	path := GlobalPath()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return write(path, cfg)
}

// WriteProject writes the config to the project-local location.
func WriteProject(cfg *Config) error {
	return write(ProjectPath(), cfg)
}

func write(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// fileExists checks if a file exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
