package xmlsec

import (
	"strings"

	"github.com/philiph/saml-sigtrust/internal/core/domain"
)

// Sentinel tokens the engine prints on their own line to signal a verdict.
const (
	sentinelOK   = "OK"
	sentinelFail = "FAIL"
)

// ParseOutput interprets the engine's combined textual output. The literal
// token OK on its own line anywhere in the output is success; FAIL on its
// own line is a validation failure carrying the full output as diagnostic
// context. Output containing neither sentinel signals an engine or
// environment problem, not a validation verdict, and is also an error.
// Both \n and \r\n line endings are accepted, with arbitrary text before
// and after the sentinel line.
func ParseOutput(output string) error {
	for _, line := range strings.Split(output, "\n") {
		switch strings.TrimSuffix(line, "\r") {
		case sentinelOK:
			return nil
		case sentinelFail:
			return domain.XmlsecOutputError("engine reported verification failure", output)
		}
	}
	return domain.XmlsecOutputError("engine output carries no verdict", output)
}
