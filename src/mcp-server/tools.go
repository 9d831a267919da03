// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// maxBatchDomains caps the number of domains accepted by validate_certificates.
const maxBatchDomains = 20

// createTools returns every tool definition bound to h.
//
// The function defines the following tools:
//   - validate_certificate: live inspection of one domain
//   - validate_certificates: live inspection of several domains in parallel
//   - validate_certificate_data: offline evaluation of a supplied certificate
func createTools(h *handlers) []server.ServerTool {
	return []server.ServerTool{
		{
			Tool: mcp.NewTool("validate_certificate",
				mcp.WithDescription("Connect to a domain over TLS and evaluate its leaf certificate: expiry, issuer, subject, SAN match and self-signed status"),
				mcp.WithString("domain",
					mcp.Required(),
					mcp.Description("Domain name to connect to, also used for SNI and SAN matching"),
				),
			),
			Handler: h.validateCertificate,
		},
		{
			Tool: mcp.NewTool("validate_certificates",
				mcp.WithDescription("Evaluate the leaf certificates of several domains in parallel"),
				mcp.WithString("domains",
					mcp.Required(),
					mcp.Description(fmt.Sprintf("Comma-separated list of domain names (at most %d)", maxBatchDomains)),
				),
			),
			Handler: h.validateCertificates,
		},
		{
			Tool: mcp.NewTool("validate_certificate_data",
				mcp.WithDescription("Evaluate a certificate supplied directly instead of fetched over the network"),
				mcp.WithString("certificate",
					mcp.Required(),
					mcp.Description("Certificate file path, PEM text or base64-encoded DER"),
				),
				mcp.WithString("host",
					mcp.Required(),
					mcp.Description("Domain name the certificate is checked against"),
				),
			),
			Handler: h.validateCertificateData,
		},
	}
}
