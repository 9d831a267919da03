// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"crypto/x509"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/H0llyW00dzZ/tls-cert-validator/src/config"
	x509certs "github.com/H0llyW00dzZ/tls-cert-validator/src/internal/x509/certs"
	x509inspect "github.com/H0llyW00dzZ/tls-cert-validator/src/internal/x509/inspect"
	"github.com/H0llyW00dzZ/tls-cert-validator/src/version"
)

// serverName is the name advertised to MCP clients.
const serverName = "TLS Certificate Validator"

// Inspector runs a live inspection of one host.
// [*x509inspect.Inspector] satisfies it.
type Inspector interface {
	Inspect(ctx context.Context, host string) (*x509inspect.Result, error)
}

// CertificateDecoder reads a leaf certificate from raw input.
// [*x509certs.Codec] satisfies it.
type CertificateDecoder interface {
	Decode(data []byte) (*x509.Certificate, error)
}

// ToolHandler defines the signature for tool handlers that matches [MCP] server expectations.
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
type ToolHandler = func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)

// ResourceHandler defines the signature for resource handlers.
type ResourceHandler = func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error)

// ServerDependencies holds everything needed to create the MCP server.
//
// Fields:
//   - Config: settings used for defaults and the config://template resource
//   - Version: server version string
//   - Inspector: live inspection backend for validate_certificate
//   - Decoder: certificate decoder for validate_certificate_data
//   - Now: clock used for offline validation, time.Now when nil
type ServerDependencies struct {
	Config    *config.Config
	Version   string
	Inspector Inspector
	Decoder   CertificateDecoder
	Now       func() time.Time
}

// ServerBuilder helps construct the [MCP] server with proper dependencies using a fluent interface.
//
// Example:
//
//	s, err := NewServerBuilder().
//	    WithConfig(cfg).
//	    WithVersion("0.1.0").
//	    WithInspector(cfg.Inspector()).
//	    Build()
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
type ServerBuilder struct{ deps ServerDependencies }

// NewServerBuilder creates a new server builder with default empty dependencies.
func NewServerBuilder() *ServerBuilder { return &ServerBuilder{} }

// WithConfig sets the configuration. [config.Default] is used when unset.
func (b *ServerBuilder) WithConfig(c *config.Config) *ServerBuilder {
	b.deps.Config = c
	return b
}

// WithVersion sets the advertised server version, [version.Version] when unset.
func (b *ServerBuilder) WithVersion(version string) *ServerBuilder {
	b.deps.Version = version
	return b
}

// WithInspector sets the live inspection backend. When unset, Build derives
// one from the configuration.
func (b *ServerBuilder) WithInspector(insp Inspector) *ServerBuilder {
	b.deps.Inspector = insp
	return b
}

// WithDecoder sets the certificate decoder. [x509certs.New] is used when unset.
func (b *ServerBuilder) WithDecoder(d CertificateDecoder) *ServerBuilder {
	b.deps.Decoder = d
	return b
}

// WithClock sets the clock used by offline validation.
func (b *ServerBuilder) WithClock(now func() time.Time) *ServerBuilder {
	b.deps.Now = now
	return b
}

// dependencies returns a copy of the builder state with defaults filled in.
func (b *ServerBuilder) dependencies() (ServerDependencies, error) {
	deps := b.deps
	if deps.Config == nil {
		deps.Config = config.Default()
	}
	if err := deps.Config.Validate(); err != nil {
		return deps, err
	}
	if deps.Inspector == nil {
		deps.Inspector = deps.Config.Inspector()
	}
	if deps.Decoder == nil {
		deps.Decoder = x509certs.New()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Version == "" {
		deps.Version = version.Version
	}
	return deps, nil
}

// Tools returns the tool definitions bound to the builder's dependencies.
func (b *ServerBuilder) Tools() ([]server.ServerTool, error) {
	deps, err := b.dependencies()
	if err != nil {
		return nil, err
	}
	return createTools(&handlers{deps: deps}), nil
}

// Resources returns the resource definitions bound to the builder's dependencies.
func (b *ServerBuilder) Resources() ([]server.ServerResource, error) {
	deps, err := b.dependencies()
	if err != nil {
		return nil, err
	}
	return createResources(deps), nil
}

// Build creates the MCP server with every tool and resource registered.
func (b *ServerBuilder) Build() (*server.MCPServer, error) {
	deps, err := b.dependencies()
	if err != nil {
		return nil, err
	}

	s := server.NewMCPServer(
		serverName,
		deps.Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, false),
		server.WithRecovery(),
	)

	for _, tool := range createTools(&handlers{deps: deps}) {
		s.AddTool(tool.Tool, tool.Handler)
	}

	for _, resource := range createResources(deps) {
		s.AddResource(resource.Resource, resource.Handler)
	}

	return s, nil
}
