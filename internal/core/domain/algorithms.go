package domain

// SignatureAlgorithm is an XML-DSig signature method identifier.
type SignatureAlgorithm string

const (
	SigRSASHA1   SignatureAlgorithm = "http://www.w3.org/2000/09/xmldsig#rsa-sha1"
	SigRSASHA256 SignatureAlgorithm = "http://www.w3.org/2001/04/xmldsig-more#rsa-sha256"
	SigRSASHA384 SignatureAlgorithm = "http://www.w3.org/2001/04/xmldsig-more#rsa-sha384"
	SigRSASHA512 SignatureAlgorithm = "http://www.w3.org/2001/04/xmldsig-more#rsa-sha512"
)

// DefaultSignatureAlgorithm is used when no explicit algorithm is configured.
const DefaultSignatureAlgorithm = SigRSASHA1

// DigestAlgorithm returns the digest method URI matching the signature
// method. Unknown algorithms fall back to SHA-1.
func (a SignatureAlgorithm) DigestAlgorithm() string {
	switch a {
	case SigRSASHA256:
		return "http://www.w3.org/2001/04/xmlenc#sha256"
	case SigRSASHA384:
		return "http://www.w3.org/2001/04/xmldsig-more#sha384"
	case SigRSASHA512:
		return "http://www.w3.org/2001/04/xmlenc#sha512"
	default:
		return "http://www.w3.org/2000/09/xmldsig#sha1"
	}
}

// Valid reports whether the algorithm is one this module can produce.
func (a SignatureAlgorithm) Valid() bool {
	switch a {
	case SigRSASHA1, SigRSASHA256, SigRSASHA384, SigRSASHA512:
		return true
	}
	return false
}

// SymmetricCipher is an XML Encryption block cipher identifier used for the
// session key wrapping assertion payloads.
type SymmetricCipher string

const (
	CipherTripleDES SymmetricCipher = "http://www.w3.org/2001/04/xmlenc#tripledes-cbc"
	CipherAES128CBC SymmetricCipher = "http://www.w3.org/2001/04/xmlenc#aes128-cbc"
	CipherAES256CBC SymmetricCipher = "http://www.w3.org/2001/04/xmlenc#aes256-cbc"
)

// DefaultSymmetricCipher matches the engine's historical default.
const DefaultSymmetricCipher = CipherTripleDES

// SessionKeySpec returns the session key generator spec the xmlsec binary
// expects for this cipher.
func (c SymmetricCipher) SessionKeySpec() string {
	switch c {
	case CipherAES128CBC:
		return "aes-128"
	case CipherAES256CBC:
		return "aes-256"
	default:
		return "des-192"
	}
}

// Valid reports whether the cipher is supported.
func (c SymmetricCipher) Valid() bool {
	switch c {
	case CipherTripleDES, CipherAES128CBC, CipherAES256CBC:
		return true
	}
	return false
}

// KeyTransportRSAOAEP is the key transport algorithm used when encrypting
// the session key for a recipient certificate.
const KeyTransportRSAOAEP = "http://www.w3.org/2001/04/xmlenc#rsa-oaep-mgf1p"
