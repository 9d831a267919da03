// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"golang.org/x/sync/errgroup"

	x509inspect "github.com/H0llyW00dzZ/tls-cert-validator/src/internal/x509/inspect"
)

// handlers binds tool handlers to their dependencies.
type handlers struct {
	deps ServerDependencies
}

// batchEntry is one element of the validate_certificates output.
type batchEntry struct {
	Domain string              `json:"domain"`
	Result *x509inspect.Result `json:"result,omitempty"`
	Error  string              `json:"error,omitempty"`
}

// validateCertificate inspects the domain argument and returns the result as JSON.
// Failures are reported as tool errors using the same wording as the HTTP API.
func (h *handlers) validateCertificate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	domain, err := request.RequireString("domain")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("domain parameter required: %v", err)), nil
	}

	domain = strings.TrimSpace(domain)
	if domain == "" {
		return mcp.NewToolResultError("domain parameter must not be empty"), nil
	}

	res, err := h.deps.Inspector.Inspect(ctx, domain)
	if err != nil {
		return mcp.NewToolResultError(describeError(err)), nil
	}

	return jsonResult(res)
}

// validateCertificates inspects each comma-separated domain concurrently.
// Per-domain failures are reported inline; the call itself only fails on bad input.
func (h *handlers) validateCertificates(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := request.RequireString("domains")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("domains parameter required: %v", err)), nil
	}

	var domains []string
	for _, d := range strings.Split(raw, ",") {
		if d = strings.TrimSpace(d); d != "" {
			domains = append(domains, d)
		}
	}

	switch {
	case len(domains) == 0:
		return mcp.NewToolResultError("no domains provided"), nil
	case len(domains) > maxBatchDomains:
		return mcp.NewToolResultError(fmt.Sprintf("too many domains: %d (maximum %d)", len(domains), maxBatchDomains)), nil
	}

	entries := make([]batchEntry, len(domains))
	var g errgroup.Group
	for i, domain := range domains {
		g.Go(func() error {
			entries[i].Domain = domain
			res, err := h.deps.Inspector.Inspect(ctx, domain)
			if err != nil {
				entries[i].Error = describeError(err)
				return nil
			}
			entries[i].Result = res
			return nil
		})
	}
	_ = g.Wait()

	return jsonResult(entries)
}

// validateCertificateData evaluates a certificate given as a file path, PEM
// text or base64 DER against the host argument.
func (h *handlers) validateCertificateData(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := request.RequireString("certificate")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("certificate parameter required: %v", err)), nil
	}

	host, err := request.RequireString("host")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("host parameter required: %v", err)), nil
	}

	cert, err := h.deps.Decoder.Decode(readCertificateInput(input))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to decode certificate: %v", err)), nil
	}

	res, err := x509inspect.Validate(cert, host, h.deps.Now())
	if err != nil {
		return mcp.NewToolResultError(describeError(err)), nil
	}

	return jsonResult(res)
}

// readCertificateInput returns the file contents when input names a readable
// file and the input itself otherwise.
func readCertificateInput(input string) []byte {
	if !strings.Contains(input, "\n") && len(input) < 4096 {
		if data, err := os.ReadFile(input); err == nil {
			return data
		}
	}
	return []byte(input)
}

// describeError renders err with the prefix used by the HTTP API for its class.
func describeError(err error) string {
	if x509inspect.ClassOf(err) == x509inspect.ClassEvaluation {
		return "Validation error: " + err.Error()
	}
	return "Error fetching certificate: " + err.Error()
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
