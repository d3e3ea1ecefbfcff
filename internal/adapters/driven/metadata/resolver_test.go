//go:build unit

package metadata

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/philiph/saml-sigtrust/internal/core/domain"
	"github.com/philiph/saml-sigtrust/testfixtures/keys"
)

func entityMetadata(t *testing.T, entityID, use string) ([]byte, domain.Certificate) {
	t.Helper()
	pair := keys.Generate(t, t.TempDir(), "idp")
	cert, err := domain.NewCertificate(pair.Cert.Raw)
	if err != nil {
		t.Fatalf("NewCertificate: %v", err)
	}
	useAttr := ""
	if use != "" {
		useAttr = fmt.Sprintf(" use=%q", use)
	}
	md := []byte(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<EntityDescriptor xmlns="urn:oasis:names:tc:SAML:2.0:metadata" entityID=%q>
  <IDPSSODescriptor protocolSupportEnumeration="urn:oasis:names:tc:SAML:2.0:protocol">
    <KeyDescriptor%s>
      <KeyInfo xmlns="http://www.w3.org/2000/09/xmldsig#">
        <X509Data><X509Certificate>%s</X509Certificate></X509Data>
      </KeyInfo>
    </KeyDescriptor>
  </IDPSSODescriptor>
</EntityDescriptor>
`, entityID, useAttr, cert.Base64()))
	return md, cert
}

func TestLoad_SingleEntity(t *testing.T) {
	md, cert := entityMetadata(t, "https://idp.example.com", "signing")

	store := NewStore()
	if err := store.Load(md); err != nil {
		t.Fatalf("Load: %v", err)
	}

	found, err := store.TrustedCertificates("https://idp.example.com", domain.UsageSigning)
	if err != nil {
		t.Fatalf("TrustedCertificates: %v", err)
	}
	if len(found) != 1 || !found[0].Equal(cert) {
		t.Fatalf("expected the published signing certificate, got %d certs", len(found))
	}
}

func TestLoad_UseAttributeScopesTrust(t *testing.T) {
	md, _ := entityMetadata(t, "https://idp.example.com", "signing")

	store := NewStore()
	if err := store.Load(md); err != nil {
		t.Fatalf("Load: %v", err)
	}

	found, err := store.TrustedCertificates("https://idp.example.com", domain.UsageEncryption)
	if err != nil {
		t.Fatalf("TrustedCertificates: %v", err)
	}
	if len(found) != 0 {
		t.Errorf("a signing-only key must not be trusted for encryption, got %d", len(found))
	}
}

func TestLoad_NoUseCountsForBoth(t *testing.T) {
	md, cert := entityMetadata(t, "https://idp.example.com", "")

	store := NewStore()
	if err := store.Load(md); err != nil {
		t.Fatalf("Load: %v", err)
	}

	for _, usage := range []domain.KeyUsage{domain.UsageSigning, domain.UsageEncryption} {
		found, err := store.TrustedCertificates("https://idp.example.com", usage)
		if err != nil {
			t.Fatalf("TrustedCertificates(%v): %v", usage, err)
		}
		if len(found) != 1 || !found[0].Equal(cert) {
			t.Errorf("usage %v: expected the published certificate", usage)
		}
	}
}

func TestLoad_EntitiesAggregate(t *testing.T) {
	first, _ := entityMetadata(t, "https://one.example.com", "signing")
	second, _ := entityMetadata(t, "https://two.example.com", "signing")

	aggregate := []byte(`<?xml version="1.0" encoding="UTF-8"?>
<EntitiesDescriptor xmlns="urn:oasis:names:tc:SAML:2.0:metadata">
` + stripDeclaration(first) + stripDeclaration(second) + `</EntitiesDescriptor>
`)

	store := NewStore()
	if err := store.Load(aggregate); err != nil {
		t.Fatalf("Load aggregate: %v", err)
	}

	for _, entityID := range []string{"https://one.example.com", "https://two.example.com"} {
		found, err := store.TrustedCertificates(entityID, domain.UsageSigning)
		if err != nil {
			t.Fatalf("TrustedCertificates(%s): %v", entityID, err)
		}
		if len(found) != 1 {
			t.Errorf("entity %s: expected 1 certificate, got %d", entityID, len(found))
		}
	}
}

func TestTrustedCertificates_UnknownEntity(t *testing.T) {
	store := NewStore()
	found, err := store.TrustedCertificates("https://nobody.example.com", domain.UsageSigning)
	if err != nil {
		t.Fatalf("TrustedCertificates: %v", err)
	}
	if len(found) != 0 {
		t.Errorf("unknown entity must yield no certificates, got %d", len(found))
	}
}

func TestLoad_MalformedCertificate(t *testing.T) {
	md := []byte(`<?xml version="1.0" encoding="UTF-8"?>
<EntityDescriptor xmlns="urn:oasis:names:tc:SAML:2.0:metadata" entityID="https://bad.example.com">
  <IDPSSODescriptor protocolSupportEnumeration="urn:oasis:names:tc:SAML:2.0:protocol">
    <KeyDescriptor use="signing">
      <KeyInfo xmlns="http://www.w3.org/2000/09/xmldsig#">
        <X509Data><X509Certificate>bm90IGEgY2VydA==</X509Certificate></X509Data>
      </KeyInfo>
    </KeyDescriptor>
  </IDPSSODescriptor>
</EntityDescriptor>
`)
	store := NewStore()
	err := store.Load(md)
	if err == nil {
		t.Fatal("malformed certificate material must be rejected")
	}
	if !domain.IsCertificateError(err) {
		t.Errorf("expected certificate error, got %v", err)
	}
}

func TestLoad_Garbage(t *testing.T) {
	store := NewStore()
	if err := store.Load([]byte("not xml at all")); err == nil {
		t.Fatal("garbage input must be rejected")
	}
}

func TestLoadFile(t *testing.T) {
	md, _ := entityMetadata(t, "https://idp.example.com", "signing")
	path := filepath.Join(t.TempDir(), "metadata.xml")
	if err := os.WriteFile(path, md, 0o600); err != nil {
		t.Fatalf("write metadata: %v", err)
	}

	store := NewStore()
	if err := store.LoadFile(path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	found, _ := store.TrustedCertificates("https://idp.example.com", domain.UsageSigning)
	if len(found) != 1 {
		t.Errorf("expected 1 certificate after LoadFile, got %d", len(found))
	}

	if err := store.LoadFile(filepath.Join(t.TempDir(), "missing.xml")); err == nil {
		t.Error("missing file must be reported")
	}
}

// stripDeclaration removes the XML declaration so documents can be nested.
func stripDeclaration(doc []byte) string {
	s := string(doc)
	if i := strings.Index(s, "?>"); i >= 0 {
		return s[i+2:]
	}
	return s
}
