// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509inspect_test

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"io"
	"math/big"
	"net"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// certOptions describes a certificate to mint for a test.
type certOptions struct {
	subject   pkix.Name
	dnsNames  []string
	notBefore time.Time
	notAfter  time.Time
	isCA      bool

	// parent and parentKey sign the certificate; nil means self-signed.
	parent    *x509.Certificate
	parentKey *ecdsa.PrivateKey
}

var serialCounter atomic.Int64

func newCert(t *testing.T, opts certOptions) (*x509.Certificate, *ecdsa.PrivateKey) {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	if opts.notBefore.IsZero() {
		opts.notBefore = time.Now().Add(-time.Hour)
	}
	if opts.notAfter.IsZero() {
		opts.notAfter = time.Now().Add(24 * time.Hour)
	}

	tmpl := &x509.Certificate{
		SerialNumber:          big.NewInt(1000 + serialCounter.Add(1)),
		Subject:               opts.subject,
		DNSNames:              opts.dnsNames,
		NotBefore:             opts.notBefore,
		NotAfter:              opts.notAfter,
		KeyUsage:              x509.KeyUsageDigitalSignature,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
		IsCA:                  opts.isCA,
	}

	if opts.isCA {
		tmpl.KeyUsage |= x509.KeyUsageCertSign
	}

	parent, signer := tmpl, key
	if opts.parent != nil {
		parent, signer = opts.parent, opts.parentKey
	}

	der, err := x509.CreateCertificate(rand.Reader, tmpl, parent, &key.PublicKey, signer)
	require.NoError(t, err)

	cert, err := x509.ParseCertificate(der)
	require.NoError(t, err)
	return cert, key
}

// rawNameCert mints a self-signed certificate for example.com whose subject
// and issuer are the given DER name, which crypto/x509 may refuse to parse.
func rawNameCert(t *testing.T, rawName []byte) tls.Certificate {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1000 + serialCounter.Add(1)),
		RawSubject:   rawName,
		DNSNames:     []string{"example.com"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(24 * time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
	}

	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	require.NoError(t, err)

	return tls.Certificate{Certificate: [][]byte{der}, PrivateKey: key}
}

// testPKI is a root CA plus a leaf for example.com it issued.
type testPKI struct {
	root    *x509.Certificate
	rootKey *ecdsa.PrivateKey
	leaf    *x509.Certificate
	leafKey *ecdsa.PrivateKey
}

func newTestPKI(t *testing.T) *testPKI {
	t.Helper()
	root, rootKey := newCert(t, certOptions{
		subject: pkix.Name{Organization: []string{"Example Trust Services"}, CommonName: "Example Root R1"},
		isCA:    true,
	})
	leaf, leafKey := newCert(t, certOptions{
		subject:   pkix.Name{CommonName: "example.com"},
		dnsNames:  []string{"example.com", "www.example.com"},
		parent:    root,
		parentKey: rootKey,
	})
	return &testPKI{root: root, rootKey: rootKey, leaf: leaf, leafKey: leafKey}
}

func (p *testPKI) serverCert() tls.Certificate {
	return tls.Certificate{
		Certificate: [][]byte{p.leaf.Raw, p.root.Raw},
		PrivateKey:  p.leafKey,
		Leaf:        p.leaf,
	}
}

// startTLSServer serves cfg on a loopback port until the test ends.
func startTLSServer(t *testing.T, cfg *tls.Config) int {
	t.Helper()

	ln, err := tls.Listen("tcp", "127.0.0.1:0", cfg)
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	go func() {
		for {
			c, err := ln.Accept()
			if err != nil {
				return
			}
			go func(c net.Conn) {
				defer c.Close()
				if err := c.(*tls.Conn).Handshake(); err != nil {
					return
				}
				_, _ = io.Copy(io.Discard, c)
			}(c)
		}
	}()

	return ln.Addr().(*net.TCPAddr).Port
}

// startRawServer accepts TCP connections and hands each to handle.
func startRawServer(t *testing.T, handle func(net.Conn)) int {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	var (
		mu    sync.Mutex
		conns []net.Conn
	)
	t.Cleanup(func() {
		ln.Close()
		mu.Lock()
		defer mu.Unlock()
		for _, c := range conns {
			c.Close()
		}
	})

	go func() {
		for {
			c, err := ln.Accept()
			if err != nil {
				return
			}
			mu.Lock()
			conns = append(conns, c)
			mu.Unlock()
			go handle(c)
		}
	}()

	return ln.Addr().(*net.TCPAddr).Port
}

// closedPort returns a loopback port nothing listens on.
func closedPort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())
	return port
}

// staticResolver resolves the listed hosts and reports NXDOMAIN for the rest.
type staticResolver map[string][]net.IPAddr

func (r staticResolver) LookupIPAddr(_ context.Context, host string) ([]net.IPAddr, error) {
	if addrs, ok := r[host]; ok {
		return addrs, nil
	}
	return nil, &net.DNSError{Err: "no such host", Name: host, IsNotFound: true}
}

var loopback = []net.IPAddr{{IP: net.IPv4(127, 0, 0, 1)}}

func exampleResolver() staticResolver {
	return staticResolver{"example.com": loopback, "www.example.com": loopback}
}
