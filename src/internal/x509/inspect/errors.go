// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509inspect

import (
	"errors"
	"fmt"
)

// Kind identifies one terminal failure of the inspection pipeline.
type Kind int

const (
	// KindResolution means the host name could not be resolved to an address.
	KindResolution Kind = iota + 1
	// KindConnect means the TCP connection could not be established.
	KindConnect
	// KindHandshake means TLS negotiation failed.
	KindHandshake
	// KindTimeout means the connect or handshake did not complete within the bound.
	KindTimeout
	// KindNoCertificate means the session completed without a peer certificate.
	KindNoCertificate
	// KindEncoding means a distinguished name entry could not be decoded as text.
	KindEncoding
)

// String returns the taxonomy name of k.
func (k Kind) String() string {
	switch k {
	case KindResolution:
		return "ResolutionError"
	case KindConnect:
		return "ConnectError"
	case KindHandshake:
		return "HandshakeError"
	case KindTimeout:
		return "TimeoutError"
	case KindNoCertificate:
		return "NoCertificateError"
	case KindEncoding:
		return "EncodingError"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Class groups failure kinds the way callers surface them.
type Class int

const (
	// ClassNone is returned for errors outside the taxonomy.
	ClassNone Class = iota
	// ClassAcquisition covers failures to obtain a certificate from the target.
	ClassAcquisition
	// ClassEvaluation covers failures while deriving the result from a certificate.
	ClassEvaluation
)

// String returns a lower-case label for c.
func (c Class) String() string {
	switch c {
	case ClassAcquisition:
		return "acquisition"
	case ClassEvaluation:
		return "evaluation"
	default:
		return "none"
	}
}

// Class reports whether k is an acquisition or an evaluation failure.
func (k Kind) Class() Class {
	switch k {
	case KindResolution, KindConnect, KindHandshake, KindTimeout, KindNoCertificate:
		return ClassAcquisition
	case KindEncoding:
		return ClassEvaluation
	default:
		return ClassNone
	}
}

// Error is the single error type returned by this package.
type Error struct {
	Kind Kind
	Host string
	Err  error
}

var (
	// ErrResolution matches any [KindResolution] error via errors.Is.
	ErrResolution = &Error{Kind: KindResolution}
	// ErrConnect matches any [KindConnect] error via errors.Is.
	ErrConnect = &Error{Kind: KindConnect}
	// ErrHandshake matches any [KindHandshake] error via errors.Is.
	ErrHandshake = &Error{Kind: KindHandshake}
	// ErrTimeout matches any [KindTimeout] error via errors.Is.
	ErrTimeout = &Error{Kind: KindTimeout}
	// ErrNoCertificate matches any [KindNoCertificate] error via errors.Is.
	ErrNoCertificate = &Error{Kind: KindNoCertificate}
	// ErrEncoding matches any [KindEncoding] error via errors.Is.
	ErrEncoding = &Error{Kind: KindEncoding}
)

func newError(kind Kind, host string, err error) *Error {
	return &Error{Kind: kind, Host: host, Err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	var msg string
	switch e.Kind {
	case KindResolution:
		msg = "unable to resolve " + e.Host
	case KindConnect:
		msg = "failed to connect to " + e.Host
	case KindHandshake:
		msg = "TLS handshake with " + e.Host + " failed"
	case KindTimeout:
		msg = "TLS connection to " + e.Host + " timed out"
	case KindNoCertificate:
		msg = "no certificate found for " + e.Host
	case KindEncoding:
		msg = "failed to decode distinguished name"
	default:
		msg = e.Kind.String()
	}

	if e.Err != nil {
		return "x509inspect: " + msg + ": " + e.Err.Error()
	}
	return "x509inspect: " + msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// ClassOf returns the class of err, or [ClassNone] for foreign errors.
func ClassOf(err error) Class {
	kind, ok := KindOf(err)
	if !ok {
		return ClassNone
	}
	return kind.Class()
}
