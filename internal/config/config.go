// Package config loads server settings from an optional YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables read by FromEnv.
const (
	EnvConfigPath       = "STEG_MCP_CONFIG"
	EnvLogLevel         = "STEG_MCP_LOG_LEVEL"
	EnvOutputPrefix     = "STEG_MCP_OUTPUT_PREFIX"
	EnvMaxMessageLength = "STEG_MCP_MAX_MESSAGE_LENGTH"
)

// Config holds the server settings.
type Config struct {
	// LogLevel is "info" or "debug".
	LogLevel string `yaml:"log_level"`

	// SupportedFormats lists the carrier extensions accepted for encoding,
	// lower-case with the leading dot.
	SupportedFormats []string `yaml:"supported_formats"`

	// OutputPrefix names stego output when the caller gives no output path.
	OutputPrefix string `yaml:"output_prefix"`

	// MaxMessageLength caps text messages in characters. 0 disables the cap.
	MaxMessageLength int `yaml:"max_message_length"`

	// CompressByDefault applies zstd to payloads unless a request says otherwise.
	CompressByDefault bool `yaml:"compress_by_default"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		LogLevel:         "info",
		SupportedFormats: []string{".png"},
		OutputPrefix:     "encoded_",
		MaxMessageLength: 10000,
	}
}

// Load reads the YAML file at path over the defaults. An empty path returns
// the defaults.
func Load(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return c, nil
}

// FromEnv loads the file named by path, or by STEG_MCP_CONFIG when path is
// empty, then applies the remaining STEG_MCP_* overrides and validates the
// result.
func FromEnv(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}

	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvOutputPrefix); v != "" {
		c.OutputPrefix = v
	}
	if v := os.Getenv(EnvMaxMessageLength); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvMaxMessageLength, err)
		}
		c.MaxMessageLength = n
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate normalises format names and rejects unusable settings.
func (c *Config) Validate() error {
	var errs []error

	switch c.LogLevel {
	case "info", "debug":
	default:
		errs = append(errs, fmt.Errorf("log_level %q: want info or debug", c.LogLevel))
	}

	if len(c.SupportedFormats) == 0 {
		errs = append(errs, errors.New("supported_formats must not be empty"))
	}
	for i, f := range c.SupportedFormats {
		f = strings.ToLower(f)
		if !strings.HasPrefix(f, ".") {
			f = "." + f
		}
		switch f {
		case ".png", ".bmp":
			c.SupportedFormats[i] = f
		default:
			errs = append(errs, fmt.Errorf("supported_formats: %q is not a lossless carrier format", f))
		}
	}

	if c.MaxMessageLength < 0 {
		errs = append(errs, fmt.Errorf("max_message_length %d must not be negative", c.MaxMessageLength))
	}

	return errors.Join(errs...)
}

// Debug reports whether debug logging is enabled.
func (c *Config) Debug() bool {
	return c.LogLevel == "debug"
}
