//go:build unit

package xmlsec

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/philiph/saml-sigtrust/internal/core/domain"
	"github.com/philiph/saml-sigtrust/testfixtures/keys"
)

func TestNew_MissingBinaryIsError(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	_, err := New("")
	if err == nil {
		t.Fatal("expected error when no xmlsec binary exists on PATH")
	}
	if !domain.IsXmlsecError(err) {
		t.Errorf("expected engine error, got %v", err)
	}
}

func TestNew_ExplicitBinaryAccepted(t *testing.T) {
	// An explicit path is taken as-is; existence is checked at invocation.
	engine, err := New("/opt/nowhere/xmlsec1")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if engine.binary != "/opt/nowhere/xmlsec1" {
		t.Errorf("binary = %q", engine.binary)
	}
}

func TestSignStatement_UnrunnableBinary(t *testing.T) {
	engine, err := New(filepath.Join(t.TempDir(), "missing-binary"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	pair := keys.Generate(t, t.TempDir(), "engine-test")

	_, err = engine.SignStatement(context.Background(),
		keys.AssertionXML("id-1", "the-issuer"),
		"urn:oasis:names:tc:SAML:2.0:assertion:Assertion", "id-1", pair.KeyFile)
	if err == nil {
		t.Fatal("expected error for unrunnable binary")
	}
	if !domain.IsXmlsecError(err) {
		t.Errorf("execution failure must be an engine error, got %v", err)
	}
}

func TestVerifySignature_UnrunnableBinary(t *testing.T) {
	engine, err := New(filepath.Join(t.TempDir(), "missing-binary"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	pair := keys.Generate(t, t.TempDir(), "engine-test")
	cert, err := domain.NewCertificate(pair.Cert.Raw)
	if err != nil {
		t.Fatalf("NewCertificate: %v", err)
	}

	err = engine.VerifySignature(context.Background(),
		keys.AssertionXML("id-1", "the-issuer"), cert,
		"urn:oasis:names:tc:SAML:2.0:assertion:Assertion", "id-1")
	if err == nil {
		t.Fatal("expected error for unrunnable binary")
	}
	if !domain.IsXmlsecError(err) {
		t.Errorf("execution failure must be an engine error, got %v", err)
	}
}

func TestVerifySignature_RequiresCertificate(t *testing.T) {
	engine, err := New("/opt/nowhere/xmlsec1")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	err = engine.VerifySignature(context.Background(), []byte("<doc/>"),
		domain.Certificate{}, "Response", "id-1")
	if err == nil {
		t.Fatal("verification without a trusted certificate must fail")
	}
}

func TestVersion_UnrunnableBinary(t *testing.T) {
	engine, err := New("/opt/nowhere/xmlsec1")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if v := engine.Version(context.Background()); v != "unknown" {
		t.Errorf("Version = %q, want unknown", v)
	}
}
