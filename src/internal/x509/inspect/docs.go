// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509inspect acquires the leaf [X.509] certificate presented by a
// remote TLS endpoint and derives a fixed set of trust-relevant facts from it.
//
// The pipeline has three stages, run once per request with no shared state:
//   - [Connector] resolves the host, opens a TCP connection and drives a TLS
//     handshake with [SNI] under a hard timeout. Whether the peer chain is
//     verified is an explicit per-call [Verification] argument.
//   - [Session.LeafCertificate] pulls the peer's leaf certificate.
//   - [Validate] computes a [Result] from the certificate and the requested host.
//
// [Inspector] wires the three together. Failures are reported as [*Error]
// values whose [Kind] callers can branch on exhaustively.
//
// The checks are a quick health report, not a trust decision: revocation is
// never queried, host matching is an exact SAN comparison, and the
// self-signed flag is a textual heuristic.
//
// [X.509]: https://grokipedia.com/page/X.509
// [SNI]: https://grokipedia.com/page/Server_Name_Indication
package x509inspect
