//go:build unit

package xmlsec

import (
	"strings"
	"testing"

	"github.com/philiph/saml-sigtrust/internal/core/domain"
)

func TestParseOutput(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		wantErr bool
	}{
		{"ok with surrounding text", "prefix\nOK\npostfix", false},
		{"fail with surrounding text", "prefix\nFAIL\npostfix", true},
		{"ok with crlf", "prefix\r\nOK\r\npostfix", false},
		{"fail with crlf", "prefix\r\nFAIL\r\npostfix", true},
		{"ok alone", "OK", false},
		{"ok at end", "some\nlines\nOK", false},
		{"no sentinel", "nothing to see here", true},
		{"empty output", "", true},
		{"sentinel not on own line", "NOT OK\nstill not OKAY", true},
		{"embedded ok token", "LOOKS OK TO ME", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ParseOutput(tt.output)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseOutput(%q) error = %v, wantErr %v", tt.output, err, tt.wantErr)
			}
			if err != nil && !domain.IsXmlsecError(err) {
				t.Errorf("ParseOutput errors must be engine errors, got %v", err)
			}
		})
	}
}

func TestParseOutput_FailCarriesDiagnostics(t *testing.T) {
	output := "func=xmlSecDSigResult\nFAIL\nError: signature does not verify"
	err := ParseOutput(output)
	if err == nil {
		t.Fatal("expected failure")
	}
	ae, ok := err.(*domain.AppError)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if ae.Output != output {
		t.Errorf("diagnostic output not preserved: %q", ae.Output)
	}
}

func TestParseOutput_FirstSentinelWins(t *testing.T) {
	// OK before FAIL: the first sentinel line decides.
	if err := ParseOutput("OK\nFAIL"); err != nil {
		t.Errorf("leading OK should win, got %v", err)
	}
	if err := ParseOutput("FAIL\nOK"); err == nil {
		t.Error("leading FAIL should win")
	}
}

func TestHasSentinel(t *testing.T) {
	if !hasSentinel("x\r\nFAIL\r\ny") {
		t.Error("FAIL line should count as a sentinel")
	}
	if hasSentinel(strings.Repeat("noise\n", 3)) {
		t.Error("noise should not count as a sentinel")
	}
}
