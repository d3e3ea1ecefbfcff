package ports

import (
	"context"

	"github.com/philiph/saml-sigtrust/internal/core/domain"
)

// CryptoEngine is the capability interface over the low-level XML crypto
// primitive. This is a port interface - implementations are adapters: the
// xmlsec adapter invokes the external xmlsec1 binary across a process
// boundary, the xmldsig adapter runs in-process on goxmldsig.
//
// All methods are synchronous, blocking units of work. The context carries
// cancellation and any deadline the calling layer imposes; expiry surfaces
// as an engine invocation error.
type CryptoEngine interface {
	// SignStatement computes the signature for the placeholder referencing
	// nodeID inside document and returns the completed document. nodeName is
	// the namespace-qualified element name carrying the ID attribute.
	// keyFile is a PEM private key path.
	SignStatement(ctx context.Context, document []byte, nodeName, nodeID, keyFile string) ([]byte, error)

	// VerifySignature checks the signature on the named node against the
	// given trusted certificate. A cryptographic mismatch and an engine
	// execution failure are both reported as errors; the caller translates
	// verdicts into its own error taxonomy.
	VerifySignature(ctx context.Context, document []byte, cert domain.Certificate, nodeName, nodeID string) error

	// Encrypt encrypts document for the recipient certificate using the
	// provided encryption template. dataXPath optionally selects the node to
	// encrypt within a surrounding document; empty means the whole input.
	Encrypt(ctx context.Context, document []byte, recipient domain.Certificate, template []byte, cipher domain.SymmetricCipher, dataXPath string) ([]byte, error)

	// Decrypt decrypts the EncryptedData in document with the private key
	// at keyFile and returns the plaintext document.
	Decrypt(ctx context.Context, document []byte, keyFile string) ([]byte, error)

	// Version identifies the underlying engine, for diagnostics.
	Version(ctx context.Context) string
}
