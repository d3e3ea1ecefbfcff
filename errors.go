package samlsigtrust

import (
	"github.com/philiph/saml-sigtrust/internal/core/domain"
)

// Re-export error types from domain package so callers can handle the
// three error kinds without importing internal packages.
type ErrorCode = domain.ErrorCode
type AppError = domain.AppError

// Re-export error code constants
const (
	ErrCodeCertificateInvalid = domain.ErrCodeCertificateInvalid
	ErrCodeXmlsecFailure      = domain.ErrCodeXmlsecFailure
	ErrCodeSignatureInvalid   = domain.ErrCodeSignatureInvalid
	ErrCodeConfigMissing      = domain.ErrCodeConfigMissing
	ErrCodeBadRequest         = domain.ErrCodeBadRequest
)

// Re-export error constructors and classifiers
var (
	CertificateError = domain.CertificateError
	XmlsecError      = domain.XmlsecError
	SignatureError   = domain.SignatureError
	ConfigError      = domain.ConfigError

	IsCertificateError = domain.IsCertificateError
	IsXmlsecError      = domain.IsXmlsecError
	IsSignatureError   = domain.IsSignatureError
	IsBadRequest       = domain.IsBadRequest
	FailedNode         = domain.FailedNode
)
