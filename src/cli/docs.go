// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package cli provides the command-line interface for the TLS certificate validator.
// It implements a Cobra-based CLI with four subcommands:
//
//   - check: inspect the leaf certificate of one or more live domains
//   - file: evaluate a certificate stored on disk
//   - serve: run the HTTP API
//   - mcp: run the MCP server on stdio
//
// Results can be written as text, a markdown table or JSON. Diagnostics go
// through the logger package so that stdout only carries results.
package cli
