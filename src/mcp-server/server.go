// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/mark3labs/mcp-go/server"

	"github.com/H0llyW00dzZ/tls-cert-validator/src/config"
	"github.com/H0llyW00dzZ/tls-cert-validator/src/logger"
)

// Options configure [Run].
type Options struct {
	Version string
	Config  *config.Config
	// Log receives server diagnostics. It must not write to Out.
	Log logger.Logger
	In  io.Reader
	Out io.Writer
}

// Run serves the MCP tools over stdio-style streams until ctx is done or the
// input stream closes.
//
// Server Lifecycle:
//  1. Build the MCP server from the configuration
//  2. Serve JSON-RPC messages from In to Out
//  3. Return nil when ctx is cancelled, otherwise the transport error
func Run(ctx context.Context, opts Options) error {
	if opts.In == nil || opts.Out == nil {
		return errors.New("mcpserver: input and output streams are required")
	}

	log := opts.Log
	if log == nil {
		log = logger.NewJSONLogger(nil, true)
	}

	s, err := NewServerBuilder().
		WithConfig(opts.Config).
		WithVersion(opts.Version).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build server: %w", err)
	}

	stdio := server.NewStdioServer(s)
	log.Printf("MCP server %s ready on stdio", opts.Version)

	err = stdio.Listen(ctx, opts.In, opts.Out)
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
