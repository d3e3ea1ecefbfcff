// Package xmlsec adapts the external xmlsec1 binary as a crypto engine.
// Every operation serializes its input to a scoped temporary workspace,
// invokes the binary across a process boundary, and parses the textual
// result into a typed outcome.
package xmlsec

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"github.com/philiph/saml-sigtrust/internal/core/domain"
	"github.com/philiph/saml-sigtrust/internal/core/ports"
)

// binaryNames are the executable names probed on PATH when no explicit
// binary is configured.
var binaryNames = []string{"xmlsec1"}

// encryptedKeyName is the id-attr selector xmlsec needs to resolve
// EncryptedKey references during decryption.
const encryptedKeyName = "EncryptedKey"

// Engine invokes the xmlsec1 binary. Immutable after construction and safe
// for concurrent use; each call runs in its own workspace.
type Engine struct {
	binary string
	retain bool
	logger *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithRetainFiles keeps per-call temporary files around for debugging
// instead of removing them when the call completes.
func WithRetainFiles() Option {
	return func(e *Engine) { e.retain = true }
}

// WithLogger attaches a logger for invocation diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// New creates an engine for the binary at path. An empty path probes PATH
// for a known xmlsec executable; failure to find one is an engine error.
func New(path string, opts ...Option) (*Engine, error) {
	if path == "" {
		found, err := locateBinary()
		if err != nil {
			return nil, err
		}
		path = found
	}
	e := &Engine{binary: path}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

func locateBinary() (string, error) {
	for _, name := range binaryNames {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", domain.XmlsecError(
		fmt.Sprintf("no xmlsec binary found on PATH (tried %s)", strings.Join(binaryNames, ", ")), nil)
}

// SignStatement fills in the placeholder referencing nodeID and returns the
// completed document.
func (e *Engine) SignStatement(ctx context.Context, document []byte, nodeName, nodeID, keyFile string) ([]byte, error) {
	ws, err := newWorkspace(e.retain)
	if err != nil {
		return nil, err
	}
	defer ws.Close()

	in, err := ws.write("in.xml", document)
	if err != nil {
		return nil, err
	}
	out := ws.path("out.xml")

	args := []string{"--sign", "--privkey-pem", keyFile, "--id-attr:ID", nodeName}
	if nodeID != "" {
		args = append(args, "--node-id", nodeID)
	}
	args = append(args, "--output", out, in)

	combined, runErr := e.run(ctx, args)
	if runErr != nil {
		return nil, domain.XmlsecOutputError("engine signing failed: "+runErr.Error(), combined)
	}
	signed, err := ws.read("out.xml")
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(signed)) == 0 {
		return nil, domain.XmlsecOutputError("engine produced no signed output", combined)
	}
	return signed, nil
}

// VerifySignature checks the signature on the named node against the
// trusted certificate. The certificate is always passed to the engine so it
// refuses to validate against a different, attacker-supplied key embedded
// in the document.
func (e *Engine) VerifySignature(ctx context.Context, document []byte, cert domain.Certificate, nodeName, nodeID string) error {
	if cert.IsZero() {
		return domain.XmlsecError("no trusted certificate supplied for verification", nil)
	}
	ws, err := newWorkspace(e.retain)
	if err != nil {
		return err
	}
	defer ws.Close()

	in, err := ws.write("in.xml", document)
	if err != nil {
		return err
	}
	certFile, err := ws.write("trusted.pem", cert.PEM())
	if err != nil {
		return err
	}

	args := []string{
		"--verify",
		"--enabled-reference-uris", "empty,same-doc",
		"--enabled-key-data", "raw-x509-cert",
		"--pubkey-cert-pem", certFile,
		"--id-attr:ID", nodeName,
	}
	if nodeID != "" {
		args = append(args, "--node-id", nodeID)
	}
	args = append(args, in)

	combined, runErr := e.run(ctx, args)
	// The sentinel is authoritative: xmlsec exits non-zero on a FAIL
	// verdict, which is a validation outcome, not an execution failure.
	verdict := ParseOutput(combined)
	if verdict == nil {
		return nil
	}
	if !hasSentinel(combined) && runErr != nil {
		return domain.XmlsecError("engine verification could not run: "+runErr.Error(), runErr)
	}
	return verdict
}

// hasSentinel reports whether the output carries either verdict sentinel.
func hasSentinel(output string) bool {
	for _, line := range strings.Split(output, "\n") {
		switch strings.TrimSuffix(line, "\r") {
		case sentinelOK, sentinelFail:
			return true
		}
	}
	return false
}

// Encrypt encrypts document for the recipient using the given template.
func (e *Engine) Encrypt(ctx context.Context, document []byte, recipient domain.Certificate, template []byte, cipher domain.SymmetricCipher, dataXPath string) ([]byte, error) {
	if recipient.IsZero() {
		return nil, domain.XmlsecError("no recipient certificate supplied for encryption", nil)
	}
	ws, err := newWorkspace(e.retain)
	if err != nil {
		return nil, err
	}
	defer ws.Close()

	data, err := ws.write("data.xml", document)
	if err != nil {
		return nil, err
	}
	tmpl, err := ws.write("template.xml", template)
	if err != nil {
		return nil, err
	}
	certFile, err := ws.write("recipient.pem", recipient.PEM())
	if err != nil {
		return nil, err
	}
	out := ws.path("out.xml")

	args := []string{
		"--encrypt",
		"--pubkey-cert-pem", certFile,
		"--session-key", cipher.SessionKeySpec(),
		"--xml-data", data,
	}
	if dataXPath != "" {
		args = append(args, "--node-xpath", dataXPath)
	}
	args = append(args, "--output", out, tmpl)

	combined, runErr := e.run(ctx, args)
	if runErr != nil {
		return nil, domain.XmlsecOutputError("engine encryption failed: "+runErr.Error(), combined)
	}
	return ws.read("out.xml")
}

// Decrypt decrypts the EncryptedData in document with the given private key.
func (e *Engine) Decrypt(ctx context.Context, document []byte, keyFile string) ([]byte, error) {
	ws, err := newWorkspace(e.retain)
	if err != nil {
		return nil, err
	}
	defer ws.Close()

	in, err := ws.write("in.xml", document)
	if err != nil {
		return nil, err
	}
	out := ws.path("out.xml")

	args := []string{
		"--decrypt",
		"--privkey-pem", keyFile,
		"--id-attr:ID", encryptedKeyName,
		"--output", out, in,
	}

	combined, runErr := e.run(ctx, args)
	if runErr != nil {
		return nil, domain.XmlsecOutputError("engine decryption failed: "+runErr.Error(), combined)
	}
	return ws.read("out.xml")
}

// Version reports the engine binary's version line, or "unknown" when the
// binary cannot be queried.
func (e *Engine) Version(ctx context.Context) string {
	out, err := exec.CommandContext(ctx, e.binary, "--version").CombinedOutput()
	if err != nil {
		return "unknown"
	}
	return strings.TrimSpace(string(out))
}

// run executes the binary with args and returns its combined output.
// Context cancellation terminates the process; the caller's deferred
// workspace Close still removes partial files.
func (e *Engine) run(ctx context.Context, args []string) (string, error) {
	cmd := exec.CommandContext(ctx, e.binary, args...)
	out, err := cmd.CombinedOutput()
	if e.logger != nil {
		e.logger.Debug("xmlsec invocation",
			zap.String("binary", e.binary),
			zap.Strings("args", args),
			zap.Bool("success", err == nil),
		)
	}
	return string(out), err
}

var _ ports.CryptoEngine = (*Engine)(nil)
