package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents categorized error types.
// These codes are stable and can be used for programmatic error handling.
type ErrorCode string

const (
	ErrCodeCertificateInvalid ErrorCode = "certificate_invalid"
	ErrCodeXmlsecFailure      ErrorCode = "xmlsec_failure"
	ErrCodeSignatureInvalid   ErrorCode = "signature_invalid"
	ErrCodeConfigMissing      ErrorCode = "config_missing"
	ErrCodeBadRequest         ErrorCode = "bad_request"
)

// String returns the error code as a string.
func (c ErrorCode) String() string {
	return string(c)
}

// AppError is a structured error with code, message, and optional cause.
// Node carries the identifier of the XML node an operation failed on, so
// callers can recover which signature failed rather than just "some
// signature failed". Output carries raw diagnostic text from the external
// crypto engine when one was involved.
type AppError struct {
	Code    ErrorCode
	Message string
	Node    string
	Output  string
	Cause   error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Node != "" {
		return fmt.Sprintf("%s (node %q)", e.Message, e.Node)
	}
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// CertificateError creates an error for malformed or ambiguous certificate
// material.
func CertificateError(message string, cause error) *AppError {
	return &AppError{Code: ErrCodeCertificateInvalid, Message: message, Cause: cause}
}

// XmlsecError creates an error for a failed crypto engine invocation.
func XmlsecError(message string, cause error) *AppError {
	return &AppError{Code: ErrCodeXmlsecFailure, Message: message, Cause: cause}
}

// XmlsecOutputError creates an engine failure error carrying the engine's
// raw combined output for diagnostics.
func XmlsecOutputError(message, output string) *AppError {
	return &AppError{Code: ErrCodeXmlsecFailure, Message: message, Output: output}
}

// SignatureError creates an error for a failed trust or cryptographic
// signature check. The node argument names the XML node that failed.
func SignatureError(node, message string, cause error) *AppError {
	return &AppError{Code: ErrCodeSignatureInvalid, Message: message, Node: node, Cause: cause}
}

// ConfigError creates a configuration error.
func ConfigError(message string) *AppError {
	return &AppError{Code: ErrCodeConfigMissing, Message: message}
}

// BadRequestError creates an error for an invalid caller request, such as a
// signing plan that does not cover every placeholder.
func BadRequestError(message string) *AppError {
	return &AppError{Code: ErrCodeBadRequest, Message: message}
}

// codeOf extracts the ErrorCode from err, or "" if err is not an AppError.
func codeOf(err error) ErrorCode {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ""
}

// IsCertificateError reports whether err is a certificate material error.
func IsCertificateError(err error) bool {
	return codeOf(err) == ErrCodeCertificateInvalid
}

// IsXmlsecError reports whether err is a crypto engine invocation error.
func IsXmlsecError(err error) bool {
	return codeOf(err) == ErrCodeXmlsecFailure
}

// IsSignatureError reports whether err is a signature verification error.
func IsSignatureError(err error) bool {
	return codeOf(err) == ErrCodeSignatureInvalid
}

// IsBadRequest reports whether err is an invalid caller request.
func IsBadRequest(err error) bool {
	return codeOf(err) == ErrCodeBadRequest
}

// FailedNode returns the node identifier attached to a signature error,
// or "" if err carries none.
func FailedNode(err error) string {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Node
	}
	return ""
}
