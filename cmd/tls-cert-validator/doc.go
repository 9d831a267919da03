// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// tls-cert-validator connects to TLS endpoints and reports on the leaf
// certificate they serve: expiry, issuer, subject, whether it covers the
// requested domain and whether it is self-signed.
//
// # Installation
//
// Install with Go 1.25.5 or later:
//
//	go install github.com/H0llyW00dzZ/tls-cert-validator/cmd/tls-cert-validator@latest
//
// # Usage
//
//	tls-cert-validator check DOMAIN... [FLAGS]
//	tls-cert-validator file FILE --host DOMAIN [FLAGS]
//	tls-cert-validator serve [--addr HOST:PORT]
//	tls-cert-validator mcp
//
// # Global Flags
//
//	-c, --config     JSON or YAML config file
//	    --env-file   Load environment variables from these files
//	-v, --verbose    Log connection progress to stderr
//
// # Environment Variables
//
//	TLS_CERT_VALIDATOR_CONFIG       Path to configuration file (alternative to --config)
//	TLS_CERT_VALIDATOR_ADDR         HTTP listen address
//	TLS_CERT_VALIDATOR_TIMEOUT      Connect and handshake timeout in seconds
//	TLS_CERT_VALIDATOR_SKIP_VERIFY  true to report on untrusted certificates (default)
//
// # Examples
//
// Check two domains and print a markdown table:
//
//	tls-cert-validator check example.com www.google.com --output table
//
// Evaluate a certificate on disk:
//
//	tls-cert-validator file cert.pem --host example.com --output json
//
// Serve the HTTP API and query it:
//
//	tls-cert-validator serve
//	curl -s -X POST localhost:8080/validate_certificate -d '{"domain":"example.com"}'
package main
