package domain

// VerifiedEntity is the outcome of a successful signature check: the node
// that was verified plus the certificate that validated it. Produced only
// by verification; an unsigned node accepted under a lenient policy yields
// a VerifiedEntity with no certificate.
type VerifiedEntity struct {
	nodeName string
	nodeID   string
	cert     Certificate
	document []byte
}

// NewVerifiedEntity records a successful verification of the named node.
func NewVerifiedEntity(nodeName, nodeID string, cert Certificate, document []byte) *VerifiedEntity {
	return &VerifiedEntity{nodeName: nodeName, nodeID: nodeID, cert: cert, document: document}
}

// NewUnsignedEntity records an unsigned node accepted under an optional
// signing policy.
func NewUnsignedEntity(nodeName, nodeID string, document []byte) *VerifiedEntity {
	return &VerifiedEntity{nodeName: nodeName, nodeID: nodeID, document: document}
}

// NodeName returns the namespace-qualified element name that was checked.
func (v *VerifiedEntity) NodeName() string { return v.nodeName }

// NodeID returns the ID of the node that was checked.
func (v *VerifiedEntity) NodeID() string { return v.nodeID }

// Certificate returns the certificate that validated the signature. The
// zero value means the node was unsigned and accepted as such.
func (v *VerifiedEntity) Certificate() Certificate { return v.cert }

// Signed reports whether a signature was actually verified.
func (v *VerifiedEntity) Signed() bool { return !v.cert.IsZero() }

// Document returns the serialized document the check ran against.
func (v *VerifiedEntity) Document() []byte { return v.document }
