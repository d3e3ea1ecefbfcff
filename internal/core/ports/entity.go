package ports

// Entity is the protocol object contract consumed by the security context.
// SAML assertions and responses satisfy it through thin adapters; the
// security context never depends on concrete protocol types.
type Entity interface {
	// EntityID returns the stable identifier attribute used as the
	// signature Reference target.
	EntityID() string

	// ElementName returns the namespace-qualified element name, in the
	// "namespace-uri:local-name" form the engine's id-attr selector expects.
	ElementName() string

	// Issuer returns the issuing entity's identifier, used to resolve
	// trusted certificates from metadata. Empty when the entity carries no
	// issuer.
	Issuer() string

	// SerializeXML renders the entity as a standalone XML document.
	SerializeXML() ([]byte, error)
}
