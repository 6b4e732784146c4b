// Package config loads API credentials and runtime settings from an optional
// .env file and the process environment.
package config

import (
	"errors"
	"os"

	"github.com/spf13/viper"
)

const (
	DefaultModelName = "gpt-4o-mini"
	DefaultAddr      = ":8080"
)

type Config struct {
	// OpenAIAPIKey and SerpAPIKey are required to run the pipeline.
	OpenAIAPIKey string
	SerpAPIKey   string

	// LangsmithAPIKey is optional; when empty, tracing is disabled silently.
	LangsmithAPIKey string

	ModelName string
	Addr      string
	TraceDir  string
}

// Load reads the .env file in the working directory, if present, then the
// process environment. Environment variables override file values.
func Load() (*Config, error) {
	return load(".env")
}

func load(envFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(envFile)
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(envFile); statErr == nil {
			return nil, err
		}
		// No env file; environment variables alone are fine.
	}

	v.AutomaticEnv()
	v.SetDefault("MODEL_NAME", DefaultModelName)
	v.SetDefault("ADDR", DefaultAddr)

	cfg := &Config{
		OpenAIAPIKey:    v.GetString("OPENAI_API_KEY"),
		SerpAPIKey:      v.GetString("SERPAPI_API_KEY"),
		LangsmithAPIKey: v.GetString("LANGSMITH_API_KEY"),
		ModelName:       v.GetString("MODEL_NAME"),
		Addr:            v.GetString("ADDR"),
		TraceDir:        v.GetString("TRACE_DIR"),
	}

	return cfg, nil
}

// Validate reports the first missing required credential. The trace key is
// not required.
func (c *Config) Validate() error {
	if c.OpenAIAPIKey == "" {
		return errors.New("OPENAI_API_KEY is not set")
	}
	if c.SerpAPIKey == "" {
		return errors.New("SERPAPI_API_KEY is not set")
	}
	return nil
}

// TraceEnabled reports whether an execution trace should be written.
func (c *Config) TraceEnabled() bool {
	return c.LangsmithAPIKey != ""
}
