// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509inspect

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/cryptobyte"
	cbasn1 "golang.org/x/crypto/cryptobyte/asn1"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

// NameSeparator joins the entry values of a rendered distinguished name.
const NameSeparator = ", "

// Directory string tags that cryptobyte/asn1 does not name.
const (
	tagNumericString   = cbasn1.Tag(18)
	tagVisibleString   = cbasn1.Tag(26)
	tagUniversalString = cbasn1.Tag(28)
	tagBMPString       = cbasn1.Tag(30)
)

var (
	errMalformedName = errors.New("malformed name")
	errNotASCII      = errors.New("non-ASCII byte in ASCII-only string")
	errInvalidUTF8   = errors.New("invalid UTF-8")
)

// RenderName renders a DER-encoded distinguished name (for example
// [x509.Certificate.RawIssuer]) as its entry values joined with
// [NameSeparator], in encoding order.
//
// Attribute types are dropped, so "CN=a, O=b" and "O=a, CN=b" render the
// same. An entry that cannot be decoded to text yields a [KindEncoding] error.
//
// [x509.Certificate.RawIssuer]: https://pkg.go.dev/crypto/x509#Certificate
func RenderName(der []byte) (string, error) {
	values, err := nameValues(der)
	if err != nil {
		return "", newError(KindEncoding, "", err)
	}
	return strings.Join(values, NameSeparator), nil
}

func nameValues(der []byte) ([]string, error) {
	input := cryptobyte.String(der)
	var rdnSeq cryptobyte.String
	if !input.ReadASN1(&rdnSeq, cbasn1.SEQUENCE) || !input.Empty() {
		return nil, errMalformedName
	}

	var values []string
	for !rdnSeq.Empty() {
		var rdnSet cryptobyte.String
		if !rdnSeq.ReadASN1(&rdnSet, cbasn1.SET) {
			return nil, errMalformedName
		}
		for !rdnSet.Empty() {
			var atav cryptobyte.String
			if !rdnSet.ReadASN1(&atav, cbasn1.SEQUENCE) {
				return nil, errMalformedName
			}
			var oid cryptobyte.String
			if !atav.ReadASN1(&oid, cbasn1.OBJECT_IDENTIFIER) {
				return nil, errMalformedName
			}
			var (
				raw cryptobyte.String
				tag cbasn1.Tag
			)
			if !atav.ReadAnyASN1(&raw, &tag) {
				return nil, errMalformedName
			}

			v, err := decodeDirectoryString(tag, raw)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
	}
	return values, nil
}

// decodeDirectoryString converts one attribute value to UTF-8.
func decodeDirectoryString(tag cbasn1.Tag, raw []byte) (string, error) {
	switch tag {
	case cbasn1.UTF8String:
		if !utf8.Valid(raw) {
			return "", errInvalidUTF8
		}
		return string(raw), nil
	case cbasn1.PrintableString, cbasn1.IA5String, tagNumericString, tagVisibleString:
		for _, b := range raw {
			if b >= utf8.RuneSelf {
				return "", errNotASCII
			}
		}
		return string(raw), nil
	case cbasn1.T61String:
		// Latin-1 is the usual reading of T61String in certificates.
		return decodeWith(charmap.ISO8859_1, raw)
	case tagBMPString:
		if len(raw)%2 != 0 {
			return "", fmt.Errorf("BMPString of odd length %d", len(raw))
		}
		return decodeWith(unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), raw)
	case tagUniversalString:
		if len(raw)%4 != 0 {
			return "", fmt.Errorf("UniversalString of length %d", len(raw))
		}
		return decodeWith(utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM), raw)
	default:
		return "", fmt.Errorf("unsupported string type (tag %d)", int(tag))
	}
}

func decodeWith(enc encoding.Encoding, raw []byte) (string, error) {
	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(out) {
		return "", errInvalidUTF8
	}
	return string(out), nil
}
