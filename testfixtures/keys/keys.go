// Package keys provides generated key material and protocol document
// fixtures for tests.
package keys

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// KeyPair is a generated RSA key with a matching self-signed certificate,
// written out as PEM files for engines that load key material from disk.
type KeyPair struct {
	Key      *rsa.PrivateKey
	Cert     *x509.Certificate
	KeyFile  string
	CertFile string
}

// Generate creates a key pair under dir (usually t.TempDir()).
func Generate(t testing.TB, dir, commonName string) *KeyPair {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}

	template := &x509.Certificate{
		SerialNumber: big.NewInt(time.Now().UnixNano()),
		Subject: pkix.Name{
			CommonName: commonName,
		},
		NotBefore: time.Now().Add(-time.Hour),
		NotAfter:  time.Now().Add(24 * time.Hour),
		KeyUsage:  x509.KeyUsageDigitalSignature | x509.KeyUsageKeyEncipherment,
	}
	der, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	if err != nil {
		t.Fatalf("create certificate: %v", err)
	}
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		t.Fatalf("parse certificate: %v", err)
	}

	keyFile := filepath.Join(dir, commonName+".key")
	keyPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	if err := os.WriteFile(keyFile, keyPEM, 0o600); err != nil {
		t.Fatalf("write key file: %v", err)
	}

	certFile := filepath.Join(dir, commonName+".pem")
	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	if err := os.WriteFile(certFile, certPEM, 0o600); err != nil {
		t.Fatalf("write cert file: %v", err)
	}

	return &KeyPair{Key: key, Cert: cert, KeyFile: keyFile, CertFile: certFile}
}

// AssertionXML builds a minimal standalone assertion document.
func AssertionXML(id, issuer string) []byte {
	return []byte(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<saml:Assertion xmlns:saml="urn:oasis:names:tc:SAML:2.0:assertion" ID=%q Version="2.0" IssueInstant="2009-10-30T13:20:28Z">
  <saml:Issuer>%s</saml:Issuer>
  <saml:AttributeStatement>
    <saml:Attribute Name="surName"><saml:AttributeValue>Foo</saml:AttributeValue></saml:Attribute>
    <saml:Attribute Name="givenName"><saml:AttributeValue>Bar</saml:AttributeValue></saml:Attribute>
  </saml:AttributeStatement>
</saml:Assertion>
`, id, issuer))
}

// ResponseXML builds a minimal response document embedding assertion XML.
// The assertion argument must be a bare element, not a full document.
func ResponseXML(id, issuer, assertion string) []byte {
	return []byte(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<samlp:Response xmlns:samlp="urn:oasis:names:tc:SAML:2.0:protocol" xmlns:saml="urn:oasis:names:tc:SAML:2.0:assertion" ID=%q Version="2.0" IssueInstant="2099-10-30T13:20:28Z">
  <saml:Issuer>%s</saml:Issuer>
  <samlp:Status><samlp:StatusCode Value="urn:oasis:names:tc:SAML:2.0:status:Success"/></samlp:Status>
  %s
</samlp:Response>
`, id, issuer, assertion))
}

// MetadataXML builds entity metadata publishing cert material for signing.
func MetadataXML(entityID, certBase64 string) []byte {
	return []byte(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<EntityDescriptor xmlns="urn:oasis:names:tc:SAML:2.0:metadata" entityID=%q>
  <IDPSSODescriptor protocolSupportEnumeration="urn:oasis:names:tc:SAML:2.0:protocol">
    <KeyDescriptor use="signing">
      <KeyInfo xmlns="http://www.w3.org/2000/09/xmldsig#">
        <X509Data><X509Certificate>%s</X509Certificate></X509Data>
      </KeyInfo>
    </KeyDescriptor>
    <SingleSignOnService Binding="urn:oasis:names:tc:SAML:2.0:bindings:HTTP-Redirect" Location="https://idp.example.com/sso"/>
  </IDPSSODescriptor>
</EntityDescriptor>
`, entityID, certBase64))
}
