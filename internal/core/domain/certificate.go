package domain

import (
	"bytes"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"strings"
)

// Certificate is normalized X.509 certificate material. The canonical form
// is the raw DER encoding; PEM armor, line wrapping, and trailing blank
// lines are incidental and never affect equality.
type Certificate struct {
	der []byte
}

// NewCertificate builds a Certificate from raw DER bytes. The bytes must
// parse as a single X.509 certificate.
func NewCertificate(der []byte) (Certificate, error) {
	if _, err := x509.ParseCertificate(der); err != nil {
		return Certificate{}, CertificateError("certificate is not valid DER", err)
	}
	return Certificate{der: bytes.Clone(der)}, nil
}

// CertificateFromBase64 builds a Certificate from a base64 DER body, as
// carried in ds:X509Certificate elements. Embedded whitespace is ignored.
func CertificateFromBase64(text string) (Certificate, error) {
	compact := strings.Join(strings.Fields(text), "")
	der, err := base64.StdEncoding.DecodeString(compact)
	if err != nil {
		return Certificate{}, CertificateError("certificate is not valid base64", err)
	}
	return NewCertificate(der)
}

// DER returns the raw DER encoding.
func (c Certificate) DER() []byte {
	return bytes.Clone(c.der)
}

// Base64 returns the DER encoding as a single-line base64 string, the form
// embedded in KeyInfo blocks.
func (c Certificate) Base64() string {
	return base64.StdEncoding.EncodeToString(c.der)
}

// PEM returns the PEM encoding.
func (c Certificate) PEM() []byte {
	return pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: c.der})
}

// X509 parses the certificate into the standard library representation.
func (c Certificate) X509() (*x509.Certificate, error) {
	cert, err := x509.ParseCertificate(c.der)
	if err != nil {
		return nil, CertificateError("certificate is not valid DER", err)
	}
	return cert, nil
}

// Equal reports whether two certificates have identical decoded content.
func (c Certificate) Equal(other Certificate) bool {
	return bytes.Equal(c.der, other.der)
}

// IsZero reports whether the certificate is the zero value.
func (c Certificate) IsZero() bool {
	return len(c.der) == 0
}

// KeyUsage selects which certificates a metadata resolver should return.
type KeyUsage string

const (
	// UsageSigning selects certificates published for signature verification.
	UsageSigning KeyUsage = "signing"
	// UsageEncryption selects certificates published for encryption.
	UsageEncryption KeyUsage = "encryption"
)
