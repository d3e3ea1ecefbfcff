// Package certs parses, normalizes, and compares X.509 certificate
// material, and extracts certificates embedded in signed XML structures.
package certs

import (
	"encoding/pem"
	"fmt"
	"os"

	"github.com/beevik/etree"

	"github.com/philiph/saml-sigtrust/internal/core/domain"
)

// Format selects how raw certificate bytes are interpreted.
type Format string

const (
	FormatPEM Format = "pem"
	FormatDER Format = "der"
)

// ReadCertificate parses certificate bytes into the normalized form.
// PEM input tolerates missing armor (a bare base64 body), platform line
// endings, and trailing blank lines; none of these affect the resulting
// value. Malformed input returns a certificate error, never a truncated
// certificate.
func ReadCertificate(data []byte, format Format) (domain.Certificate, error) {
	switch format {
	case FormatDER:
		return domain.NewCertificate(data)
	case FormatPEM, "":
		return readPEM(data)
	default:
		return domain.Certificate{}, domain.CertificateError(
			fmt.Sprintf("unknown certificate format %q", format), nil)
	}
}

// ReadCertificateFile loads a certificate from a file. An empty format
// defaults to PEM.
func ReadCertificateFile(path string, format Format) (domain.Certificate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Certificate{}, domain.CertificateError("read certificate file", err)
	}
	return ReadCertificate(data, format)
}

func readPEM(data []byte) (domain.Certificate, error) {
	if block, _ := pem.Decode(data); block != nil {
		if block.Type != "CERTIFICATE" {
			return domain.Certificate{}, domain.CertificateError(
				fmt.Sprintf("expected CERTIFICATE PEM block, got %q", block.Type), nil)
		}
		return domain.NewCertificate(block.Bytes)
	}
	// No armor: treat the whole input as a base64 DER body.
	return domain.CertificateFromBase64(string(data))
}

// Equal reports whether two certificates carry identical decoded content.
func Equal(a, b domain.Certificate) bool {
	return a.Equal(b)
}

// ExtractCertificates scans an XML subtree for signatures and returns the
// certificate embedded in each signature's KeyInfo, in document order.
// A signature carrying more than one certificate is ambiguous and rejected;
// a signature carrying none (for example a bare KeyName reference) is
// skipped. A structurally malformed certificate is a certificate error.
func ExtractCertificates(root *etree.Element) ([]domain.Certificate, error) {
	var out []domain.Certificate
	for _, sig := range findAll(root, "Signature") {
		blocks := findAll(sig, "X509Certificate")
		switch len(blocks) {
		case 0:
			continue
		case 1:
			cert, err := domain.CertificateFromBase64(blocks[0].Text())
			if err != nil {
				return nil, err
			}
			out = append(out, cert)
		default:
			return nil, domain.CertificateError(
				"signature carries multiple certificates, refusing to pick one", nil)
		}
	}
	return out, nil
}

// findAll returns every descendant (or root itself) whose local name
// matches tag, in document order, regardless of namespace prefix.
func findAll(el *etree.Element, tag string) []*etree.Element {
	var out []*etree.Element
	if el.Tag == tag {
		out = append(out, el)
	}
	for _, child := range el.ChildElements() {
		out = append(out, findAll(child, tag)...)
	}
	return out
}
