package ports

import (
	"github.com/philiph/saml-sigtrust/internal/core/domain"
)

// MetadataResolver resolves the certificates a federation's metadata
// publishes for an entity. This is a port interface - implementations are
// adapters backed by a metadata store.
type MetadataResolver interface {
	// TrustedCertificates returns the certificates published for entityID
	// with the given usage, in document order. An entity unknown to the
	// metadata returns an empty list, not an error.
	TrustedCertificates(entityID string, usage domain.KeyUsage) ([]domain.Certificate, error)
}
