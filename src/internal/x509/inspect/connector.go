// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509inspect

import (
	"context"
	"crypto/tls"
	"errors"
	"net"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultPort is the TLS port probed when [Connector.Port] is zero.
	DefaultPort = 443
	// DefaultTimeout bounds the TCP connect and the TLS handshake.
	DefaultTimeout = 10 * time.Second
	// DefaultMinVersion is the lowest TLS version the client offers.
	DefaultMinVersion uint16 = tls.VersionTLS12
)

// Verification selects how the peer's certificate chain is treated during
// the handshake. It is passed on every [Connector.Dial] call so the choice
// stays visible where the connection is made.
type Verification int

const (
	// VerifyNone accepts whatever certificate the server presents, including
	// expired, self-signed or mismatched ones. Nothing protects the session
	// from a network intermediary substituting its own certificate.
	VerifyNone Verification = iota
	// VerifyChain verifies the chain against the system roots and the host
	// name; an untrusted endpoint then fails with a [KindHandshake] error.
	VerifyChain
)

// String returns "none" or "chain".
func (v Verification) String() string {
	if v == VerifyChain {
		return "chain"
	}
	return "none"
}

// Resolver looks up the addresses of a host. [*net.Resolver] satisfies it.
type Resolver interface {
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

var errNoAddress = errors.New("no addresses returned")

// Connector opens one TLS session per [Connector.Dial] call. It holds only
// configuration and is safe for concurrent use once set up.
type Connector struct {
	Port       int           // TCP port, DefaultPort when zero
	Timeout    time.Duration // connect and handshake bound, DefaultTimeout when zero
	MinVersion uint16        // TLS version floor, DefaultMinVersion when zero
	Resolver   Resolver      // net.DefaultResolver when nil
	Observer   Observer      // NopObserver when nil
}

// NewConnector returns a Connector with the default port, timeout and
// TLS 1.2 floor.
func NewConnector() *Connector {
	return &Connector{
		Port:       DefaultPort,
		Timeout:    DefaultTimeout,
		MinVersion: DefaultMinVersion,
	}
}

func (c *Connector) port() int {
	if c.Port <= 0 {
		return DefaultPort
	}
	return c.Port
}

func (c *Connector) timeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultTimeout
	}
	return c.Timeout
}

func (c *Connector) minVersion() uint16 {
	if c.MinVersion == 0 {
		return DefaultMinVersion
	}
	return c.MinVersion
}

func (c *Connector) resolver() Resolver {
	if c.Resolver == nil {
		return net.DefaultResolver
	}
	return c.Resolver
}

func (c *Connector) observer() Observer {
	if c.Observer == nil {
		return NopObserver{}
	}
	return c.Observer
}

// Dial resolves host, connects to the first resolved address and completes
// a TLS handshake with SNI set to host.
//
// Only the first address is tried. The TCP connect and the handshake share
// one deadline of the configured timeout; running out of it, or hitting a
// deadline on ctx, yields a [KindTimeout] error. On success the caller owns the returned
// Session and must Close it; on failure nothing is left open.
func (c *Connector) Dial(ctx context.Context, host string, verify Verification) (*Session, error) {
	return c.dial(ctx, "", host, verify)
}

func (c *Connector) dial(ctx context.Context, traceID, host string, verify Verification) (*Session, error) {
	obs := c.observer()
	start := time.Now()
	fail := func(err *Error, addr string) (*Session, error) {
		obs.Observe(Event{TraceID: traceID, Host: host, Addr: addr, Stage: StageFailed, Err: err, Elapsed: time.Since(start)})
		return nil, err
	}

	addrs, err := c.resolver().LookupIPAddr(ctx, host)
	if err != nil {
		return fail(newError(KindResolution, host, err), "")
	}
	if len(addrs) == 0 {
		return fail(newError(KindResolution, host, errNoAddress), "")
	}

	addr := net.JoinHostPort(addrs[0].String(), strconv.Itoa(c.port()))
	obs.Observe(Event{TraceID: traceID, Host: host, Addr: addr, Stage: StageResolved, Elapsed: time.Since(start)})

	dctx, cancel := context.WithTimeout(ctx, c.timeout())
	defer cancel()

	var dialer net.Dialer
	raw, err := dialer.DialContext(dctx, "tcp", addr)
	if err != nil {
		if isTimeout(err) {
			return fail(newError(KindTimeout, host, err), addr)
		}
		return fail(newError(KindConnect, host, err), addr)
	}
	obs.Observe(Event{TraceID: traceID, Host: host, Addr: addr, Stage: StageConnected, Elapsed: time.Since(start)})

	conn := tls.Client(raw, &tls.Config{
		ServerName: host,
		MinVersion: c.minVersion(),
		// Controlled per call by verify; see VerifyNone.
		InsecureSkipVerify: verify != VerifyChain,
	})

	if err := conn.HandshakeContext(dctx); err != nil {
		raw.Close()
		switch {
		case isTimeout(err):
			return fail(newError(KindTimeout, host, err), addr)
		case isNameParseFailure(err):
			return fail(newError(KindEncoding, host, err), addr)
		}
		return fail(newError(KindHandshake, host, err), addr)
	}
	obs.Observe(Event{TraceID: traceID, Host: host, Addr: addr, Stage: StageHandshake, Elapsed: time.Since(start)})

	return &Session{Host: host, Addr: addr, conn: conn}, nil
}

// isTimeout reports whether a dial or handshake error came from a deadline
// rather than from the peer.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// rdnParseFailure is the text crypto/tls reports when the peer's certificate
// carries a distinguished name crypto/x509 cannot decode. The error is
// created with errors.New, so the message is the only thing to match on.
const rdnParseFailure = "tls: failed to parse certificate from server: x509: invalid RDNSequence"

// isNameParseFailure reports whether a handshake failed because the
// certificate's subject or issuer name could not be decoded.
func isNameParseFailure(err error) bool {
	return strings.Contains(err.Error(), rdnParseFailure)
}
