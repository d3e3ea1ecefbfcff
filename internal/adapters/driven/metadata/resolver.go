// Package metadata resolves trusted certificates from federation metadata.
// It backs the trust policy that only accepts keys published for an entity,
// ignoring whatever certificate a document itself carries.
package metadata

import (
	"encoding/xml"
	"fmt"
	"os"
	"sync"

	"github.com/crewjam/saml"

	"github.com/philiph/saml-sigtrust/internal/core/domain"
	"github.com/philiph/saml-sigtrust/internal/core/ports"
)

// Store is an in-memory certificate resolver fed by SAML metadata.
// Safe for concurrent readers; loading and resolving may interleave.
type Store struct {
	mu    sync.RWMutex
	certs map[certKey][]domain.Certificate
}

type certKey struct {
	entityID string
	usage    domain.KeyUsage
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{certs: make(map[certKey][]domain.Certificate)}
}

// LoadFile parses a metadata file and registers its entities.
func (s *Store) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read metadata file: %w", err)
	}
	return s.Load(data)
}

// Load parses metadata XML, accepting either a single EntityDescriptor or
// an EntitiesDescriptor aggregate, and registers every entity found.
func (s *Store) Load(data []byte) error {
	var entities saml.EntitiesDescriptor
	if err := xml.Unmarshal(data, &entities); err == nil && len(entities.EntityDescriptors) > 0 {
		for i := range entities.EntityDescriptors {
			if err := s.AddEntity(&entities.EntityDescriptors[i]); err != nil {
				return err
			}
		}
		return nil
	}

	var entity saml.EntityDescriptor
	if err := xml.Unmarshal(data, &entity); err != nil {
		return fmt.Errorf("parse metadata: %w", err)
	}
	return s.AddEntity(&entity)
}

// AddEntity registers the certificates an entity descriptor publishes.
// A KeyDescriptor without a use attribute counts for both usages.
func (s *Store) AddEntity(entity *saml.EntityDescriptor) error {
	var descriptors []saml.KeyDescriptor
	for _, role := range entity.IDPSSODescriptors {
		descriptors = append(descriptors, role.KeyDescriptors...)
	}
	for _, role := range entity.SPSSODescriptors {
		descriptors = append(descriptors, role.KeyDescriptors...)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, kd := range descriptors {
		for _, x509Cert := range kd.KeyInfo.X509Data.X509Certificates {
			cert, err := domain.CertificateFromBase64(x509Cert.Data)
			if err != nil {
				return domain.CertificateError(
					fmt.Sprintf("metadata for %s carries a malformed certificate", entity.EntityID),
					err)
			}
			for _, usage := range usagesFor(kd.Use) {
				key := certKey{entityID: entity.EntityID, usage: usage}
				s.certs[key] = append(s.certs[key], cert)
			}
		}
	}
	return nil
}

func usagesFor(use string) []domain.KeyUsage {
	switch use {
	case "signing":
		return []domain.KeyUsage{domain.UsageSigning}
	case "encryption":
		return []domain.KeyUsage{domain.UsageEncryption}
	default:
		return []domain.KeyUsage{domain.UsageSigning, domain.UsageEncryption}
	}
}

// TrustedCertificates returns the certificates published for entityID with
// the given usage. An unknown entity yields an empty list.
func (s *Store) TrustedCertificates(entityID string, usage domain.KeyUsage) ([]domain.Certificate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	found := s.certs[certKey{entityID: entityID, usage: usage}]
	out := make([]domain.Certificate, len(found))
	copy(out, found)
	return out, nil
}

var _ ports.MetadataResolver = (*Store)(nil)
