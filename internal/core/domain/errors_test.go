//go:build unit

package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorClassifiers(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"certificate", CertificateError("bad cert", nil), IsCertificateError},
		{"xmlsec", XmlsecError("engine down", nil), IsXmlsecError},
		{"signature", SignatureError("id-1", "mismatch", nil), IsSignatureError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.check(tt.err) {
				t.Errorf("%v should classify as %s error", tt.err, tt.name)
			}
		})
	}
}

func TestClassifiers_WrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", SignatureError("id-5", "digest mismatch", nil))
	if !IsSignatureError(wrapped) {
		t.Error("classification should see through wrapping")
	}
	if got := FailedNode(wrapped); got != "id-5" {
		t.Errorf("FailedNode = %q, want id-5", got)
	}
}

func TestSignatureError_NamesNode(t *testing.T) {
	err := SignatureError("id-23456", "signature check failed", nil)
	if !strings.Contains(err.Error(), "id-23456") {
		t.Errorf("error text should name the failing node, got %q", err.Error())
	}
	if FailedNode(err) != "id-23456" {
		t.Errorf("FailedNode = %q, want id-23456", FailedNode(err))
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := XmlsecError("invocation failed", cause)
	if !errors.Is(err, cause) {
		t.Error("Unwrap should expose the cause")
	}
}

func TestXmlsecOutputError_CarriesDiagnostics(t *testing.T) {
	err := XmlsecOutputError("engine reported failure", "func=foo\nFAIL\ndetails")
	var ae *AppError
	if !errors.As(err, &ae) {
		t.Fatal("expected AppError")
	}
	if !strings.Contains(ae.Output, "FAIL") {
		t.Errorf("raw engine output should be attached, got %q", ae.Output)
	}
}

func TestFailedNode_NonAppError(t *testing.T) {
	if FailedNode(errors.New("plain")) != "" {
		t.Error("plain errors carry no node")
	}
}
