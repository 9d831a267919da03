// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package mcpserver exposes [X509] leaf certificate validation as [MCP] tools.
//
// Tools:
//   - validate_certificate: connects to a domain and evaluates its leaf certificate
//   - validate_certificate_data: evaluates a certificate supplied as PEM, base64 DER or a file path
//
// Resources:
//   - config://template: the default configuration as JSON
//   - info://version: server name, version and tool list
//
// The server is assembled with [ServerBuilder] and served over stdio.
//
// [X509]: https://grokipedia.com/page/X.509
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
package mcpserver
