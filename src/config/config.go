// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package config

import (
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	x509inspect "github.com/H0llyW00dzZ/tls-cert-validator/src/internal/x509/inspect"
)

// Environment variables consulted by [Load].
const (
	EnvConfigFile = "TLS_CERT_VALIDATOR_CONFIG"
	EnvAddress    = "TLS_CERT_VALIDATOR_ADDR"
	EnvTimeout    = "TLS_CERT_VALIDATOR_TIMEOUT"
	EnvSkipVerify = "TLS_CERT_VALIDATOR_SKIP_VERIFY"
)

// Defaults applied before any file or environment value.
const (
	DefaultAddress       = "127.0.0.1:8080"
	DefaultAllowOrigins  = "*"
	DefaultMinTLSVersion = "1.2"
)

var (
	// ErrEmptyAddress is returned when the server address is blank.
	ErrEmptyAddress = errors.New("config: server address must not be empty")

	// ErrInvalidPort is returned when the inspection port is outside 1-65535.
	ErrInvalidPort = errors.New("config: inspect port must be between 1 and 65535")

	// ErrInvalidTimeout is returned when the inspection timeout is not positive.
	ErrInvalidTimeout = errors.New("config: inspect timeout must be positive")

	// ErrUnsupportedTLSVersion is returned for protocol floors other than 1.2 and 1.3.
	ErrUnsupportedTLSVersion = errors.New("config: unsupported minimum TLS version")
)

// configFormat represents supported configuration file formats.
type configFormat int

const (
	configFormatJSON configFormat = iota
	configFormatYAML
)

// Config holds server and inspection settings.
type Config struct {
	// Server: HTTP listener settings
	Server struct {
		// Address: host:port the HTTP server binds to
		Address string `json:"address" yaml:"address"`
		// AllowOrigins: comma-separated CORS origins, "*" for any
		AllowOrigins string `json:"allowOrigins" yaml:"allowOrigins"`
	} `json:"server" yaml:"server"`

	// Inspect: settings for live certificate retrieval
	Inspect struct {
		// Port: TCP port dialed on the target host
		Port int `json:"port" yaml:"port"`
		// TimeoutSeconds: bound on connect plus handshake
		TimeoutSeconds int `json:"timeoutSeconds" yaml:"timeoutSeconds"`
		// MinTLSVersion: protocol floor, "1.2" or "1.3"
		MinTLSVersion string `json:"minTLSVersion" yaml:"minTLSVersion"`
		// SkipVerify: accept certificates without chain verification so that
		// expired, self-signed and mismatched certificates can still be reported
		SkipVerify bool `json:"skipVerify" yaml:"skipVerify"`
	} `json:"inspect" yaml:"inspect"`
}

// Default returns the built-in configuration.
func Default() *Config {
	c := &Config{}
	c.Server.Address = DefaultAddress
	c.Server.AllowOrigins = DefaultAllowOrigins
	c.Inspect.Port = x509inspect.DefaultPort
	c.Inspect.TimeoutSeconds = int(x509inspect.DefaultTimeout / time.Second)
	c.Inspect.MinTLSVersion = DefaultMinTLSVersion
	c.Inspect.SkipVerify = true
	return c
}

// LoadDotEnv seeds the process environment from the given .env files, or from
// ".env" in the working directory when none are given. Missing files are
// ignored and variables already set are left untouched.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}

	if err := godotenv.Load(present...); err != nil {
		return fmt.Errorf("config: failed to load env file: %w", err)
	}
	return nil
}

// Load builds a Config from defaults, the file at path (or the file named by
// TLS_CERT_VALIDATOR_CONFIG when path is empty) and environment overrides,
// then validates the result.
func Load(path string) (*Config, error) {
	c := Default()

	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("config: file %s does not exist", path)
			}
			return nil, fmt.Errorf("config: failed to read file: %w", err)
		}

		if err := unmarshalConfig(data, c, detectConfigFormat(path)); err != nil {
			return nil, err
		}
	}

	if err := c.applyEnv(); err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// detectConfigFormat picks the decoder by file extension, defaulting to JSON.
func detectConfigFormat(path string) configFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return configFormatYAML
	default:
		return configFormatJSON
	}
}

func unmarshalConfig(data []byte, c *Config, format configFormat) error {
	switch format {
	case configFormatYAML:
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("config: failed to parse YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, c); err != nil {
			return fmt.Errorf("config: failed to parse JSON: %w", err)
		}
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv(EnvAddress); ok && v != "" {
		c.Server.Address = v
	}

	if v, ok := os.LookupEnv(EnvTimeout); ok && v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid %s %q: %w", EnvTimeout, v, err)
		}
		c.Inspect.TimeoutSeconds = secs
	}

	if v, ok := os.LookupEnv(EnvSkipVerify); ok && v != "" {
		skip, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: invalid %s %q: %w", EnvSkipVerify, v, err)
		}
		c.Inspect.SkipVerify = skip
	}

	return nil
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Address) == "" {
		return ErrEmptyAddress
	}
	if c.Inspect.Port < 1 || c.Inspect.Port > 65535 {
		return fmt.Errorf("%w: got %d", ErrInvalidPort, c.Inspect.Port)
	}
	if c.Inspect.TimeoutSeconds <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidTimeout, c.Inspect.TimeoutSeconds)
	}
	if _, err := ParseTLSVersion(c.Inspect.MinTLSVersion); err != nil {
		return err
	}
	return nil
}

// ParseTLSVersion maps "1.2" and "1.3" to their crypto/tls constants.
// Older protocol versions are rejected.
func ParseTLSVersion(s string) (uint16, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "tls") {
	case "1.2", "12":
		return tls.VersionTLS12, nil
	case "1.3", "13":
		return tls.VersionTLS13, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedTLSVersion, s)
	}
}

// Timeout returns the inspection timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Inspect.TimeoutSeconds) * time.Second
}

// Verification returns the per-call verification mode for the inspector.
func (c *Config) Verification() x509inspect.Verification {
	if c.Inspect.SkipVerify {
		return x509inspect.VerifyNone
	}
	return x509inspect.VerifyChain
}

// Connector returns a connector configured from the inspect settings.
// The Config is expected to have passed [Config.Validate].
func (c *Config) Connector() *x509inspect.Connector {
	conn := x509inspect.NewConnector()
	conn.Port = c.Inspect.Port
	conn.Timeout = c.Timeout()
	if v, err := ParseTLSVersion(c.Inspect.MinTLSVersion); err == nil {
		conn.MinVersion = v
	}
	return conn
}

// Inspector returns an inspector wired with [Config.Connector] and
// [Config.Verification].
func (c *Config) Inspector() *x509inspect.Inspector {
	return x509inspect.NewInspector(c.Connector(), c.Verification())
}
