package domain

// EncryptionKeyPair is a private key and its matching certificate, used
// only for decrypting payloads encrypted to that certificate.
type EncryptionKeyPair struct {
	KeyFile  string
	CertFile string
}

// KeyMaterial holds the key material a security context owns: the signing
// key with its certificate, and zero or more decryption key pairs. Signing
// keys are never used to decrypt and decryption keys never sign.
// Immutable after construction.
type KeyMaterial struct {
	KeyFile            string
	CertFile           string
	Certificate        Certificate
	EncryptionKeyPairs []EncryptionKeyPair
}

// DecryptionKeyFiles returns the private key files to try, in configured
// order, when decrypting.
func (k KeyMaterial) DecryptionKeyFiles() []string {
	files := make([]string, 0, len(k.EncryptionKeyPairs))
	for _, pair := range k.EncryptionKeyPairs {
		files = append(files, pair.KeyFile)
	}
	return files
}

// TrustPolicy determines which certificates are acceptable when verifying
// a signature. Read-only configuration, safe for concurrent use.
type TrustPolicy struct {
	// OnlyUseKeysInMetadata restricts verification to certificates published
	// in federation metadata for the issuing entity; certificates embedded
	// in the document itself are ignored for trust decisions.
	OnlyUseKeysInMetadata bool

	// RequireSignedResponses makes the absence of a signature on a
	// top-level response an error instead of an accepted unsigned outcome.
	RequireSignedResponses bool
}
