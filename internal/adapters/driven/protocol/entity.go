// Package protocol adapts crewjam/saml assertion and response objects to
// the entity contract the security context consumes.
package protocol

import (
	"encoding/xml"

	"github.com/beevik/etree"
	"github.com/crewjam/saml"

	"github.com/philiph/saml-sigtrust/internal/core/domain"
)

// Namespace-qualified element names, in the form the engine's id-attr
// selector expects.
const (
	NameAssertion          = "urn:oasis:names:tc:SAML:2.0:assertion:Assertion"
	NameEncryptedAssertion = "urn:oasis:names:tc:SAML:2.0:assertion:EncryptedAssertion"
	NameResponse           = "urn:oasis:names:tc:SAML:2.0:protocol:Response"
)

// Assertion adapts a SAML assertion to the entity contract.
type Assertion struct {
	*saml.Assertion
}

// WrapAssertion wraps a parsed assertion.
func WrapAssertion(a *saml.Assertion) Assertion {
	return Assertion{Assertion: a}
}

// EntityID returns the assertion's ID attribute.
func (a Assertion) EntityID() string { return a.ID }

// ElementName returns the qualified Assertion element name.
func (a Assertion) ElementName() string { return NameAssertion }

// Issuer returns the issuing entity identifier.
func (a Assertion) Issuer() string { return a.Assertion.Issuer.Value }

// SerializeXML renders the assertion as a standalone document.
func (a Assertion) SerializeXML() ([]byte, error) {
	return serialize(a.Element())
}

// Response adapts a SAML response to the entity contract.
type Response struct {
	*saml.Response
}

// WrapResponse wraps a parsed response.
func WrapResponse(r *saml.Response) Response {
	return Response{Response: r}
}

// EntityID returns the response's ID attribute.
func (r Response) EntityID() string { return r.ID }

// ElementName returns the qualified Response element name.
func (r Response) ElementName() string { return NameResponse }

// Issuer returns the issuing entity identifier, or "" when absent.
func (r Response) Issuer() string {
	if r.Response.Issuer == nil {
		return ""
	}
	return r.Response.Issuer.Value
}

// SerializeXML renders the response as a standalone document.
func (r Response) SerializeXML() ([]byte, error) {
	return serialize(r.Element())
}

// ParseAssertion parses a standalone assertion document.
func ParseAssertion(data []byte) (*saml.Assertion, error) {
	var assertion saml.Assertion
	if err := xml.Unmarshal(data, &assertion); err != nil {
		return nil, domain.BadRequestError("malformed assertion XML: " + err.Error())
	}
	return &assertion, nil
}

// ParseResponse parses a standalone response document.
func ParseResponse(data []byte) (*saml.Response, error) {
	var response saml.Response
	if err := xml.Unmarshal(data, &response); err != nil {
		return nil, domain.BadRequestError("malformed response XML: " + err.Error())
	}
	return &response, nil
}

func serialize(el *etree.Element) ([]byte, error) {
	doc := etree.NewDocument()
	doc.SetRoot(el)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, domain.BadRequestError("serialize entity: " + err.Error())
	}
	return out, nil
}
