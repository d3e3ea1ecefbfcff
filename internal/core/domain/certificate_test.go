//go:build unit

package domain

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"math/big"
	"strings"
	"testing"
	"time"
)

// testDER generates a valid certificate DER for codec tests.
func testDER(t *testing.T) []byte {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	template := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "Test"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
	}
	der, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	if err != nil {
		t.Fatalf("create certificate: %v", err)
	}
	return der
}

func TestNewCertificate_RoundTrip(t *testing.T) {
	der := testDER(t)
	cert, err := NewCertificate(der)
	if err != nil {
		t.Fatalf("NewCertificate: %v", err)
	}

	again, err := CertificateFromBase64(cert.Base64())
	if err != nil {
		t.Fatalf("CertificateFromBase64: %v", err)
	}
	if !cert.Equal(again) {
		t.Error("re-encoded certificate should equal the original")
	}
}

func TestNewCertificate_RejectsGarbage(t *testing.T) {
	if _, err := NewCertificate([]byte("not a certificate")); err == nil {
		t.Fatal("expected error for garbage DER")
	} else if !IsCertificateError(err) {
		t.Errorf("expected certificate error, got %v", err)
	}
}

func TestCertificateFromBase64_IgnoresWhitespace(t *testing.T) {
	der := testDER(t)
	cert, err := NewCertificate(der)
	if err != nil {
		t.Fatalf("NewCertificate: %v", err)
	}

	// Wrap the base64 body across lines with surrounding blank lines.
	body := cert.Base64()
	var wrapped strings.Builder
	for i := 0; i < len(body); i += 64 {
		end := i + 64
		if end > len(body) {
			end = len(body)
		}
		wrapped.WriteString(body[i:end])
		wrapped.WriteString("\r\n")
	}
	wrapped.WriteString("\n\n")

	fromWrapped, err := CertificateFromBase64(wrapped.String())
	if err != nil {
		t.Fatalf("CertificateFromBase64: %v", err)
	}
	if !cert.Equal(fromWrapped) {
		t.Error("line wrapping and trailing blank lines must not affect equality")
	}
}

func TestCertificateFromBase64_RejectsBadPadding(t *testing.T) {
	if _, err := CertificateFromBase64("%%%not-base64%%%"); err == nil {
		t.Fatal("expected error for invalid base64")
	} else if !IsCertificateError(err) {
		t.Errorf("expected certificate error, got %v", err)
	}
}

func TestCertificate_Equal(t *testing.T) {
	derA := testDER(t)
	derB := testDER(t)

	a, err := NewCertificate(derA)
	if err != nil {
		t.Fatalf("NewCertificate: %v", err)
	}
	b, err := NewCertificate(derB)
	if err != nil {
		t.Fatalf("NewCertificate: %v", err)
	}
	aAgain, err := NewCertificate(derA)
	if err != nil {
		t.Fatalf("NewCertificate: %v", err)
	}

	if !a.Equal(aAgain) {
		t.Error("certificates with identical content should be equal")
	}
	if a.Equal(b) {
		t.Error("distinct certificates should not be equal")
	}
}

func TestCertificate_IsZero(t *testing.T) {
	var zero Certificate
	if !zero.IsZero() {
		t.Error("zero value should report IsZero")
	}
	cert, err := NewCertificate(testDER(t))
	if err != nil {
		t.Fatalf("NewCertificate: %v", err)
	}
	if cert.IsZero() {
		t.Error("populated certificate should not report IsZero")
	}
}
