// Package samlsigtrust is the cryptographic trust core of a SAML2
// federation toolkit: it produces and verifies XML digital signatures over
// protocol messages and encrypts/decrypts assertion payloads.
//
// The package is organized around a SecurityContext that owns key material
// and trust configuration and drives the sign/verify/encrypt/decrypt
// pipelines. The low-level crypto primitive is a pluggable engine: the
// default adapter invokes the external xmlsec1 binary across a process
// boundary, and an in-process goxmldsig backend covers signing and
// verification without external dependencies.
package samlsigtrust

import (
	"github.com/philiph/saml-sigtrust/internal/adapters/driven/certs"
	"github.com/philiph/saml-sigtrust/internal/adapters/driven/metadata"
	"github.com/philiph/saml-sigtrust/internal/adapters/driven/protocol"
	"github.com/philiph/saml-sigtrust/internal/adapters/driven/template"
	"github.com/philiph/saml-sigtrust/internal/core/domain"
	"github.com/philiph/saml-sigtrust/internal/core/ports"
)

// Re-export domain types for callers that do not reach into internal
// packages.
type (
	Certificate        = domain.Certificate
	KeyMaterial        = domain.KeyMaterial
	EncryptionKeyPair  = domain.EncryptionKeyPair
	TrustPolicy        = domain.TrustPolicy
	SignatureAlgorithm = domain.SignatureAlgorithm
	SymmetricCipher    = domain.SymmetricCipher
	KeyUsage           = domain.KeyUsage
	SignatureStep      = domain.SignatureStep
	MultiSignaturePlan = domain.MultiSignaturePlan
	VerifiedEntity     = domain.VerifiedEntity
)

// Re-export port interfaces.
type (
	CryptoEngine      = ports.CryptoEngine
	MetadataResolver  = ports.MetadataResolver
	Entity            = ports.Entity
	OperationRecorder = ports.OperationRecorder
)

// Signature algorithms.
const (
	SigRSASHA1   = domain.SigRSASHA1
	SigRSASHA256 = domain.SigRSASHA256
	SigRSASHA384 = domain.SigRSASHA384
	SigRSASHA512 = domain.SigRSASHA512
)

// Symmetric ciphers.
const (
	CipherTripleDES = domain.CipherTripleDES
	CipherAES128CBC = domain.CipherAES128CBC
	CipherAES256CBC = domain.CipherAES256CBC
)

// Key usages.
const (
	UsageSigning    = domain.UsageSigning
	UsageEncryption = domain.UsageEncryption
)

// Certificate codec.
type CertFormat = certs.Format

const (
	CertFormatPEM = certs.FormatPEM
	CertFormatDER = certs.FormatDER
)

var (
	ReadCertificate     = certs.ReadCertificate
	ReadCertificateFile = certs.ReadCertificateFile
	ExtractCertificates = certs.ExtractCertificates
	CertificatesEqual   = certs.Equal
)

// Template builder.
var (
	PreSignature   = template.PreSignature
	PreEncryption  = template.PreEncryption
	InsertTemplate = template.InsertSignature
)

// Metadata store.
type MetadataStore = metadata.Store

var NewMetadataStore = metadata.NewStore

// Protocol entity adapters.
type (
	AssertionEntity = protocol.Assertion
	ResponseEntity  = protocol.Response
)

var (
	WrapAssertion  = protocol.WrapAssertion
	WrapResponse   = protocol.WrapResponse
	ParseAssertion = protocol.ParseAssertion
	ParseResponse  = protocol.ParseResponse
)

// Qualified element names used as engine id-attr selectors.
const (
	NameAssertion          = protocol.NameAssertion
	NameEncryptedAssertion = protocol.NameEncryptedAssertion
	NameResponse           = protocol.NameResponse
)
