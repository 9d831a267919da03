// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package config loads runtime settings for the certificate validator.
//
// Settings come from three layers, applied in order:
//
//  1. Built-in defaults ([Default]).
//  2. An optional JSON or YAML file, selected by path or by the
//     TLS_CERT_VALIDATOR_CONFIG environment variable. The format is chosen
//     by file extension (.json, .yaml, .yml).
//  3. Environment overrides (TLS_CERT_VALIDATOR_ADDR,
//     TLS_CERT_VALIDATOR_TIMEOUT, TLS_CERT_VALIDATOR_SKIP_VERIFY), which may
//     themselves be seeded from a .env file via [LoadDotEnv].
//
// Example YAML:
//
//	server:
//	  address: 127.0.0.1:8080
//	  allowOrigins: "*"
//	inspect:
//	  port: 443
//	  timeoutSeconds: 10
//	  minTLSVersion: "1.2"
//	  skipVerify: true
package config
