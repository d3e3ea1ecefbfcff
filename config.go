package samlsigtrust

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/philiph/saml-sigtrust/internal/core/domain"
)

// Crypto backend selectors.
const (
	BackendXmlsec1 = "xmlsec1"
	BackendXMLDsig = "xmldsig"
)

// KeyPairConfig names a private key and its matching certificate.
type KeyPairConfig struct {
	KeyFile  string `yaml:"key_file"`
	CertFile string `yaml:"cert_file"`
}

// Config carries the key material and trust settings a security context is
// built from.
type Config struct {
	// CryptoBackend selects the engine: "xmlsec1" (external binary,
	// default) or "xmldsig" (in-process, sign/verify only).
	CryptoBackend string `yaml:"crypto_backend"`

	// XmlsecBinary is an explicit path to the xmlsec executable. Empty
	// means probe PATH.
	XmlsecBinary string `yaml:"xmlsec_binary"`

	// KeyFile and CertFile are the signing key pair.
	KeyFile  string `yaml:"key_file"`
	CertFile string `yaml:"cert_file"`

	// EncryptionKeyPairs are tried in order when decrypting. These keys
	// are never used for signing.
	EncryptionKeyPairs []KeyPairConfig `yaml:"encryption_keypairs"`

	// OnlyUseKeysInMetadata restricts verification to certificates
	// published in federation metadata for the issuer.
	OnlyUseKeysInMetadata bool `yaml:"only_use_keys_in_metadata"`

	// RequireSignedResponses rejects top-level responses that carry no
	// signature. The default accepts unsigned responses, matching common
	// federation practice; a present-but-invalid signature is always an
	// error regardless of this setting.
	RequireSignedResponses bool `yaml:"require_signed_responses"`

	// SignatureAlgorithm is the signature method for new signatures.
	// Empty means RSA-SHA1.
	SignatureAlgorithm string `yaml:"signature_algorithm"`

	// RetainTempFiles keeps engine temp files for debugging.
	RetainTempFiles bool `yaml:"retain_tmpfiles"`
}

// LoadConfig reads a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.ConfigError("read config file: " + err.Error())
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, domain.ConfigError("parse config file: " + err.Error())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects unusable configurations.
func (c *Config) Validate() error {
	switch c.CryptoBackend {
	case "", BackendXmlsec1, BackendXMLDsig:
	default:
		return domain.ConfigError(fmt.Sprintf("unknown crypto backend %q", c.CryptoBackend))
	}
	if c.SignatureAlgorithm != "" && !domain.SignatureAlgorithm(c.SignatureAlgorithm).Valid() {
		return domain.ConfigError(fmt.Sprintf("unknown signature algorithm %q", c.SignatureAlgorithm))
	}
	for i, pair := range c.EncryptionKeyPairs {
		if pair.KeyFile == "" {
			return domain.ConfigError(fmt.Sprintf("encryption keypair %d has no key file", i))
		}
	}
	return nil
}

// signatureAlgorithm returns the configured algorithm or the default.
func (c *Config) signatureAlgorithm() domain.SignatureAlgorithm {
	if c.SignatureAlgorithm == "" {
		return domain.DefaultSignatureAlgorithm
	}
	return domain.SignatureAlgorithm(c.SignatureAlgorithm)
}

// keyMaterial builds the immutable key material view of the config.
func (c *Config) keyMaterial(cert domain.Certificate) domain.KeyMaterial {
	pairs := make([]domain.EncryptionKeyPair, 0, len(c.EncryptionKeyPairs))
	for _, pair := range c.EncryptionKeyPairs {
		pairs = append(pairs, domain.EncryptionKeyPair{
			KeyFile:  pair.KeyFile,
			CertFile: pair.CertFile,
		})
	}
	return domain.KeyMaterial{
		KeyFile:            c.KeyFile,
		CertFile:           c.CertFile,
		Certificate:        cert,
		EncryptionKeyPairs: pairs,
	}
}

// trustPolicy builds the immutable trust policy view of the config.
func (c *Config) trustPolicy() domain.TrustPolicy {
	return domain.TrustPolicy{
		OnlyUseKeysInMetadata:  c.OnlyUseKeysInMetadata,
		RequireSignedResponses: c.RequireSignedResponses,
	}
}
