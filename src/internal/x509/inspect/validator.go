// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509inspect

import (
	"crypto/x509"
	"slices"
	"time"
)

const (
	// RevocationUnknown is the only revocation status ever reported; no
	// OCSP or CRL lookup is made.
	RevocationUnknown = "Unknown"

	// ExpirationLayout renders notAfter the way OpenSSL prints ASN.1 times.
	ExpirationLayout = "Jan _2 15:04:05 2006 GMT"
)

// Result is the report derived from one leaf certificate.
type Result struct {
	ValidityStatus   bool   `json:"validity_status"`
	ExpirationDate   string `json:"expiration_date"`
	IssuerDetails    string `json:"issuer_details"`
	SubjectDetails   string `json:"subject_details"`
	IsValidForDomain bool   `json:"is_valid_for_domain"`
	IsNotSelfSigned  bool   `json:"is_not_self_signed"`
	RevocationStatus string `json:"revocation_status"`
}

// Validate derives a [Result] from cert for the requested host, evaluated at now.
//
//   - ValidityStatus is true iff NotAfter is strictly after now. NotBefore
//     is not consulted, so a certificate that is not yet valid still passes.
//   - IsValidForDomain is true iff a SAN DNS entry equals host exactly. There
//     is no wildcard expansion, no case folding and no Common Name fallback.
//   - IsNotSelfSigned compares the rendered issuer and subject text; it is
//     not a signature check.
//
// Validate has no side effects. It fails only when a distinguished name
// cannot be rendered, with a [KindEncoding] error.
func Validate(cert *x509.Certificate, host string, now time.Time) (*Result, error) {
	issuer, err := RenderName(cert.RawIssuer)
	if err != nil {
		return nil, withHost(err, host)
	}
	subject, err := RenderName(cert.RawSubject)
	if err != nil {
		return nil, withHost(err, host)
	}

	return &Result{
		ValidityStatus:   cert.NotAfter.After(now),
		ExpirationDate:   cert.NotAfter.UTC().Format(ExpirationLayout),
		IssuerDetails:    issuer,
		SubjectDetails:   subject,
		IsValidForDomain: slices.Contains(cert.DNSNames, host),
		IsNotSelfSigned:  issuer != subject,
		RevocationStatus: RevocationUnknown,
	}, nil
}

func withHost(err error, host string) error {
	if e, ok := err.(*Error); ok {
		e.Host = host
	}
	return err
}
