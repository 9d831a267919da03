// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs

import (
	"bytes"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"

	"github.com/cloudflare/cfssl/crypto/pkcs7"
)

// BlockType is the PEM block type for certificates.
const BlockType = "CERTIFICATE"

var (
	// ErrEmptyInput is returned when there is nothing to decode.
	ErrEmptyInput = errors.New("x509certs: empty input")

	// ErrNoCertificateBlock is returned when PEM input holds no CERTIFICATE block.
	ErrNoCertificateBlock = errors.New("x509certs: no CERTIFICATE block in PEM input")

	// ErrParseCertificate indicates a failure to parse the certificate from the provided data.
	ErrParseCertificate = errors.New("x509certs: failed to parse certificate")

	// ErrNoCertificatesInPKCS indicates that no certificates were found in the PKCS7 data.
	ErrNoCertificatesInPKCS = errors.New("x509certs: no certificates found in PKCS7 data")
)

// Codec reads leaf certificates from files or request bodies and writes
// them back out as PEM.
//
// Accepted inputs are PEM (the first CERTIFICATE block wins, other blocks
// such as private keys are skipped), raw DER, base64-encoded DER, and PKCS7
// bundles, in which case the first certificate of the bundle is the leaf.
type Codec struct {
	blockType string
}

// New returns a Codec with default settings.
func New() *Codec {
	return &Codec{blockType: BlockType}
}

// IsPEM reports whether data starts with a decodable PEM block.
func (c *Codec) IsPEM(data []byte) bool {
	block, _ := pem.Decode(data)
	return block != nil
}

// Decode returns the leaf certificate contained in data.
func (c *Codec) Decode(data []byte) (*x509.Certificate, error) {
	certs, err := c.DecodeAll(data)
	if err != nil {
		return nil, err
	}
	return certs[0], nil
}

// DecodeAll returns every certificate in data, leaf first.
func (c *Codec) DecodeAll(data []byte) ([]*x509.Certificate, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}

	if c.IsPEM(data) {
		return c.decodePEM(data)
	}

	if der, ok := decodeBase64(data); ok {
		data = der
	}

	return decodeDER(data)
}

func (c *Codec) decodePEM(data []byte) ([]*x509.Certificate, error) {
	var certs []*x509.Certificate
	for {
		block, rest := pem.Decode(data)
		if block == nil {
			break
		}
		data = rest

		switch block.Type {
		case c.blockType:
			cert, err := x509.ParseCertificate(block.Bytes)
			if err != nil {
				return nil, ErrParseCertificate
			}
			certs = append(certs, cert)
		case "PKCS7":
			bundle, err := decodePKCS7(block.Bytes)
			if err != nil {
				return nil, err
			}
			certs = append(certs, bundle...)
		}
	}

	if len(certs) == 0 {
		return nil, ErrNoCertificateBlock
	}
	return certs, nil
}

func decodeDER(data []byte) ([]*x509.Certificate, error) {
	certs, err := x509.ParseCertificates(data)
	if err == nil && len(certs) > 0 {
		return certs, nil
	}

	bundle, perr := decodePKCS7(data)
	if perr == nil {
		return bundle, nil
	}
	if errors.Is(perr, ErrNoCertificatesInPKCS) {
		return nil, perr
	}
	return nil, ErrParseCertificate
}

func decodePKCS7(data []byte) ([]*x509.Certificate, error) {
	p, err := pkcs7.ParsePKCS7(data)
	if err != nil {
		return nil, ErrParseCertificate
	}
	if p.Content.SignedData.Certificates == nil || len(p.Content.SignedData.Certificates) == 0 {
		return nil, ErrNoCertificatesInPKCS
	}
	return p.Content.SignedData.Certificates, nil
}

// decodeBase64 accepts standard base64 with optional line breaks.
func decodeBase64(data []byte) ([]byte, bool) {
	compact := bytes.Join(bytes.Fields(data), nil)
	der := make([]byte, base64.StdEncoding.DecodedLen(len(compact)))
	n, err := base64.StdEncoding.Decode(der, compact)
	if err != nil || n == 0 {
		return nil, false
	}
	return der[:n], true
}

// EncodePEM encodes a certificate to PEM format.
func (c *Codec) EncodePEM(cert *x509.Certificate) []byte {
	return pem.EncodeToMemory(&pem.Block{
		Type:  c.blockType,
		Bytes: cert.Raw,
	})
}
