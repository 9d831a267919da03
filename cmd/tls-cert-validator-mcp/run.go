// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// tls-cert-validator-mcp serves the certificate validation tools over the
// Model Context Protocol on stdio. Configuration follows the same file and
// TLS_CERT_VALIDATOR_* environment variables as tls-cert-validator.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/H0llyW00dzZ/tls-cert-validator/src/config"
	"github.com/H0llyW00dzZ/tls-cert-validator/src/logger"
	mcpserver "github.com/H0llyW00dzZ/tls-cert-validator/src/mcp-server"
	verpkg "github.com/H0llyW00dzZ/tls-cert-validator/src/version"
)

var version string // set by ldflags or defaults to imported version

func init() {
	if version == "" {
		version = verpkg.Version
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load("")
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	return mcpserver.Run(ctx, mcpserver.Options{
		Version: version,
		Config:  cfg,
		Log:     logger.NewJSONLogger(os.Stderr, false),
		In:      os.Stdin,
		Out:     os.Stdout,
	})
}
