// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509inspect

import (
	"bytes"
	"crypto/tls"
	"crypto/x509"
)

// Session is one established TLS connection returned by [Connector.Dial].
type Session struct {
	Host string // requested host name, also sent as SNI
	Addr string // address actually connected to

	conn *tls.Conn
}

// ConnectionState returns the negotiated TLS parameters.
func (s *Session) ConnectionState() tls.ConnectionState { return s.conn.ConnectionState() }

// Close releases the underlying connection.
func (s *Session) Close() error { return s.conn.Close() }

// LeafCertificate returns the end-entity certificate the peer presented.
//
// The certificate is parsed again from its DER bytes, so it shares no memory
// with the session and stays valid after Close.
func (s *Session) LeafCertificate() (*x509.Certificate, error) {
	return leafFromState(s.Host, s.conn.ConnectionState())
}

func leafFromState(host string, state tls.ConnectionState) (*x509.Certificate, error) {
	if len(state.PeerCertificates) == 0 || state.PeerCertificates[0] == nil {
		return nil, newError(KindNoCertificate, host, nil)
	}

	leaf, err := x509.ParseCertificate(bytes.Clone(state.PeerCertificates[0].Raw))
	if err != nil {
		return nil, newError(KindNoCertificate, host, err)
	}
	return leaf, nil
}
