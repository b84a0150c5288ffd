// Package config reads the optional configuration file.
//
// The backend is configured with environment variables. A configuration
// file only provides defaults for them: a variable that is set in the
// environment always wins over the value in the file.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config represents a payplan.yaml configuration file.
type Config struct {
	APIURL           string `yaml:"api_url"`            // API_URL
	GinMode          string `yaml:"gin_mode"`           // GIN_MODE
	LogFormat        string `yaml:"log_format"`         // LOG_FORMAT
	CorsAllowOrigins string `yaml:"cors_allow_origins"` // CORS_ALLOW_ORIGINS
	EnablePprof      bool   `yaml:"enable_pprof"`       // ENABLE_PPROF
	DataDir          string `yaml:"data_dir"`           // DATA_DIR
	Port             int    `yaml:"port"`               // PORT
}

// Load reads a payplan.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// Env returns the environment variables configured in the file.
// Values that are not set in the file are omitted.
func (c *Config) Env() map[string]string {
	env := map[string]string{}

	set := func(name, value string) {
		if value != "" {
			env[name] = value
		}
	}

	set("API_URL", c.APIURL)
	set("GIN_MODE", c.GinMode)
	set("LOG_FORMAT", c.LogFormat)
	set("CORS_ALLOW_ORIGINS", c.CorsAllowOrigins)
	set("DATA_DIR", c.DataDir)

	if c.EnablePprof {
		env["ENABLE_PPROF"] = "true"
	}

	if c.Port != 0 {
		env["PORT"] = strconv.Itoa(c.Port)
	}

	return env
}

// Apply sets the environment variables configured in the file unless
// they are already set.
func (c *Config) Apply() error {
	for name, value := range c.Env() {
		if _, ok := os.LookupEnv(name); ok {
			continue
		}

		if err := os.Setenv(name, value); err != nil {
			return fmt.Errorf("setting %s: %w", name, err)
		}
	}

	return nil
}
