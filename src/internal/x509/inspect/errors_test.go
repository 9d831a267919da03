// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509inspect_test

import (
	"errors"
	"fmt"
	"testing"

	x509inspect "github.com/H0llyW00dzZ/tls-cert-validator/src/internal/x509/inspect"
	"github.com/stretchr/testify/assert"
)

func TestKindClass(t *testing.T) {
	tests := []struct {
		kind  x509inspect.Kind
		name  string
		class x509inspect.Class
	}{
		{x509inspect.KindResolution, "ResolutionError", x509inspect.ClassAcquisition},
		{x509inspect.KindConnect, "ConnectError", x509inspect.ClassAcquisition},
		{x509inspect.KindHandshake, "HandshakeError", x509inspect.ClassAcquisition},
		{x509inspect.KindTimeout, "TimeoutError", x509inspect.ClassAcquisition},
		{x509inspect.KindNoCertificate, "NoCertificateError", x509inspect.ClassAcquisition},
		{x509inspect.KindEncoding, "EncodingError", x509inspect.ClassEvaluation},
		{x509inspect.Kind(0), "Kind(0)", x509inspect.ClassNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.kind.String())
			assert.Equal(t, tt.class, tt.kind.Class())
		})
	}
}

func TestErrorMatching(t *testing.T) {
	cause := errors.New("connection refused")
	err := &x509inspect.Error{Kind: x509inspect.KindConnect, Host: "example.com", Err: cause}
	wrapped := fmt.Errorf("check failed: %w", err)

	assert.ErrorIs(t, wrapped, x509inspect.ErrConnect)
	assert.NotErrorIs(t, wrapped, x509inspect.ErrHandshake)
	assert.ErrorIs(t, wrapped, cause)

	kind, ok := x509inspect.KindOf(wrapped)
	assert.True(t, ok)
	assert.Equal(t, x509inspect.KindConnect, kind)
	assert.Equal(t, x509inspect.ClassAcquisition, x509inspect.ClassOf(wrapped))

	assert.Equal(t, "x509inspect: failed to connect to example.com: connection refused", err.Error())
}

func TestClassOfForeignError(t *testing.T) {
	_, ok := x509inspect.KindOf(errors.New("other"))
	assert.False(t, ok)
	assert.Equal(t, x509inspect.ClassNone, x509inspect.ClassOf(errors.New("other")))
	assert.Equal(t, "none", x509inspect.ClassNone.String())
	assert.Equal(t, "acquisition", x509inspect.ClassAcquisition.String())
	assert.Equal(t, "evaluation", x509inspect.ClassEvaluation.String())
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  *x509inspect.Error
		want string
	}{
		{&x509inspect.Error{Kind: x509inspect.KindResolution, Host: "nowhere.invalid"}, "x509inspect: unable to resolve nowhere.invalid"},
		{&x509inspect.Error{Kind: x509inspect.KindTimeout, Host: "slow.test"}, "x509inspect: TLS connection to slow.test timed out"},
		{&x509inspect.Error{Kind: x509inspect.KindNoCertificate, Host: "psk.test"}, "x509inspect: no certificate found for psk.test"},
		{&x509inspect.Error{Kind: x509inspect.KindEncoding, Err: errors.New("invalid UTF-8")}, "x509inspect: failed to decode distinguished name: invalid UTF-8"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}
