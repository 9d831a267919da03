// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package config_test

import (
	"crypto/tls"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/tls-cert-validator/src/config"
	x509inspect "github.com/H0llyW00dzZ/tls-cert-validator/src/internal/x509/inspect"
)

// clearEnv blanks every variable Load consults so host settings cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		config.EnvConfigFile,
		config.EnvAddress,
		config.EnvTimeout,
		config.EnvSkipVerify,
	} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	c := config.Default()

	assert.Equal(t, "127.0.0.1:8080", c.Server.Address)
	assert.Equal(t, "*", c.Server.AllowOrigins)
	assert.Equal(t, 443, c.Inspect.Port)
	assert.Equal(t, 10, c.Inspect.TimeoutSeconds)
	assert.Equal(t, "1.2", c.Inspect.MinTLSVersion)
	assert.True(t, c.Inspect.SkipVerify)
	assert.NoError(t, c.Validate())
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "No File",
			testFunc: func(t *testing.T) {
				c, err := config.Load("")
				require.NoError(t, err)
				assert.Equal(t, config.Default(), c)
			},
		},
		{
			name: "JSON File",
			testFunc: func(t *testing.T) {
				path := writeFile(t, "config.json", `{
  "server": {"address": "0.0.0.0:9000"},
  "inspect": {"port": 8443, "timeoutSeconds": 3, "minTLSVersion": "1.3", "skipVerify": false}
}`)
				c, err := config.Load(path)
				require.NoError(t, err)

				assert.Equal(t, "0.0.0.0:9000", c.Server.Address)
				assert.Equal(t, "*", c.Server.AllowOrigins, "unset keys keep defaults")
				assert.Equal(t, 8443, c.Inspect.Port)
				assert.Equal(t, 3*time.Second, c.Timeout())
				assert.Equal(t, "1.3", c.Inspect.MinTLSVersion)
				assert.False(t, c.Inspect.SkipVerify)
			},
		},
		{
			name: "YAML File",
			testFunc: func(t *testing.T) {
				path := writeFile(t, "config.yaml", `
server:
  allowOrigins: https://example.com
inspect:
  timeoutSeconds: 5
`)
				c, err := config.Load(path)
				require.NoError(t, err)

				assert.Equal(t, "https://example.com", c.Server.AllowOrigins)
				assert.Equal(t, 5, c.Inspect.TimeoutSeconds)
				assert.Equal(t, 443, c.Inspect.Port)
				assert.True(t, c.Inspect.SkipVerify)
			},
		},
		{
			name: "Path From Environment",
			testFunc: func(t *testing.T) {
				path := writeFile(t, "config.yml", "inspect:\n  port: 9443\n")
				t.Setenv(config.EnvConfigFile, path)

				c, err := config.Load("")
				require.NoError(t, err)
				assert.Equal(t, 9443, c.Inspect.Port)
			},
		},
		{
			name: "Environment Overrides File",
			testFunc: func(t *testing.T) {
				path := writeFile(t, "config.json", `{"inspect": {"timeoutSeconds": 3}}`)
				t.Setenv(config.EnvAddress, "127.0.0.1:9999")
				t.Setenv(config.EnvTimeout, "7")
				t.Setenv(config.EnvSkipVerify, "false")

				c, err := config.Load(path)
				require.NoError(t, err)

				assert.Equal(t, "127.0.0.1:9999", c.Server.Address)
				assert.Equal(t, 7, c.Inspect.TimeoutSeconds)
				assert.False(t, c.Inspect.SkipVerify)
			},
		},
		{
			name: "Missing File",
			testFunc: func(t *testing.T) {
				_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
				assert.ErrorContains(t, err, "does not exist")
			},
		},
		{
			name: "Malformed JSON",
			testFunc: func(t *testing.T) {
				path := writeFile(t, "config.json", `{"server":`)
				_, err := config.Load(path)
				assert.ErrorContains(t, err, "failed to parse JSON")
			},
		},
		{
			name: "Malformed YAML",
			testFunc: func(t *testing.T) {
				path := writeFile(t, "config.yaml", "inspect: [unterminated")
				_, err := config.Load(path)
				assert.ErrorContains(t, err, "failed to parse YAML")
			},
		},
		{
			name: "Invalid Timeout Variable",
			testFunc: func(t *testing.T) {
				t.Setenv(config.EnvTimeout, "soon")
				_, err := config.Load("")
				assert.ErrorContains(t, err, config.EnvTimeout)
			},
		},
		{
			name: "Invalid Skip Verify Variable",
			testFunc: func(t *testing.T) {
				t.Setenv(config.EnvSkipVerify, "maybe")
				_, err := config.Load("")
				assert.ErrorContains(t, err, config.EnvSkipVerify)
			},
		},
		{
			name: "Legacy TLS Floor Rejected",
			testFunc: func(t *testing.T) {
				path := writeFile(t, "config.yaml", "inspect:\n  minTLSVersion: \"1.0\"\n")
				_, err := config.Load(path)
				assert.ErrorIs(t, err, config.ErrUnsupportedTLSVersion)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			tt.testFunc(t)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *config.Config)
		want   error
	}{
		{"Empty Address", func(c *config.Config) { c.Server.Address = " " }, config.ErrEmptyAddress},
		{"Zero Port", func(c *config.Config) { c.Inspect.Port = 0 }, config.ErrInvalidPort},
		{"Port Too Large", func(c *config.Config) { c.Inspect.Port = 70000 }, config.ErrInvalidPort},
		{"Zero Timeout", func(c *config.Config) { c.Inspect.TimeoutSeconds = 0 }, config.ErrInvalidTimeout},
		{"Negative Timeout", func(c *config.Config) { c.Inspect.TimeoutSeconds = -1 }, config.ErrInvalidTimeout},
		{"TLS 1.1", func(c *config.Config) { c.Inspect.MinTLSVersion = "1.1" }, config.ErrUnsupportedTLSVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := config.Default()
			tt.mutate(c)
			assert.ErrorIs(t, c.Validate(), tt.want)
		})
	}
}

func TestParseTLSVersion(t *testing.T) {
	tests := []struct {
		in      string
		want    uint16
		wantErr bool
	}{
		{in: "1.2", want: tls.VersionTLS12},
		{in: "1.3", want: tls.VersionTLS13},
		{in: "TLS1.3", want: tls.VersionTLS13},
		{in: " 1.2 ", want: tls.VersionTLS12},
		{in: "1.1", wantErr: true},
		{in: "1.0", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := config.ParseTLSVersion(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, config.ErrUnsupportedTLSVersion)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInspectorWiring(t *testing.T) {
	c := config.Default()
	c.Inspect.Port = 8443
	c.Inspect.TimeoutSeconds = 2
	c.Inspect.MinTLSVersion = "1.3"
	c.Inspect.SkipVerify = false

	insp := c.Inspector()
	require.NotNil(t, insp.Connector)

	assert.Equal(t, 8443, insp.Connector.Port)
	assert.Equal(t, 2*time.Second, insp.Connector.Timeout)
	assert.Equal(t, uint16(tls.VersionTLS13), insp.Connector.MinVersion)
	assert.Equal(t, x509inspect.VerifyChain, insp.Verification)

	c.Inspect.SkipVerify = true
	assert.Equal(t, x509inspect.VerifyNone, c.Verification())
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	os.Unsetenv(config.EnvAddress)

	path := writeFile(t, ".env", config.EnvAddress+"=10.0.0.1:8080\n")
	require.NoError(t, config.LoadDotEnv(path))
	t.Cleanup(func() { os.Unsetenv(config.EnvAddress) })

	c, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1:8080", c.Server.Address)

	assert.NoError(t, config.LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
}
