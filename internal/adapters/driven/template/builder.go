// Package template synthesizes the unsigned signature and encryption
// placeholder structures the crypto engine fills in. Templates are inert:
// they contain no computed cryptographic values.
package template

import (
	"github.com/beevik/etree"

	"github.com/philiph/saml-sigtrust/internal/core/domain"
)

const (
	dsNS   = "http://www.w3.org/2000/09/xmldsig#"
	xencNS = "http://www.w3.org/2001/04/xmlenc#"

	c14nExclusive      = "http://www.w3.org/2001/10/xml-exc-c14n#"
	transformEnveloped = "http://www.w3.org/2000/09/xmldsig#enveloped-signature"
)

// PreSignature builds the unsigned ds:Signature skeleton for the node with
// the given ID: a Reference at "#nodeID" with enveloped-signature and
// exclusive-c14n transforms, the requested signature and digest methods,
// empty DigestValue/SignatureValue, and a KeyInfo carrying the signer's
// certificate.
func PreSignature(nodeID string, cert domain.Certificate, alg domain.SignatureAlgorithm) *etree.Element {
	if !alg.Valid() {
		alg = domain.DefaultSignatureAlgorithm
	}

	sig := etree.NewElement("ds:Signature")
	sig.CreateAttr("xmlns:ds", dsNS)

	signedInfo := sig.CreateElement("ds:SignedInfo")
	signedInfo.CreateElement("ds:CanonicalizationMethod").
		CreateAttr("Algorithm", c14nExclusive)
	signedInfo.CreateElement("ds:SignatureMethod").
		CreateAttr("Algorithm", string(alg))

	ref := signedInfo.CreateElement("ds:Reference")
	ref.CreateAttr("URI", "#"+nodeID)
	transforms := ref.CreateElement("ds:Transforms")
	transforms.CreateElement("ds:Transform").
		CreateAttr("Algorithm", transformEnveloped)
	transforms.CreateElement("ds:Transform").
		CreateAttr("Algorithm", c14nExclusive)
	ref.CreateElement("ds:DigestMethod").
		CreateAttr("Algorithm", alg.DigestAlgorithm())
	ref.CreateElement("ds:DigestValue")

	sig.CreateElement("ds:SignatureValue")

	if !cert.IsZero() {
		keyInfo := sig.CreateElement("ds:KeyInfo")
		keyInfo.CreateElement("ds:X509Data").
			CreateElement("ds:X509Certificate").
			SetText(cert.Base64())
	}
	return sig
}

// InsertSignature places a signature element at the schema-valid position
// among parent's children. index is the child position to insert at; a
// negative index means "immediately after the Issuer element" (or first if
// the parent has no Issuer), the placement SAML schemas require.
func InsertSignature(parent, sig *etree.Element, index int) {
	if index < 0 {
		index = 0
		for i, child := range parent.ChildElements() {
			if child.Tag == "Issuer" {
				index = i + 1
				break
			}
		}
	}
	children := parent.ChildElements()
	if index >= len(children) {
		parent.AddChild(sig)
		return
	}
	parent.InsertChildAt(children[index].Index(), sig)
}

// PreEncryption builds the unsigned EncryptedData/EncryptedKey skeleton the
// engine fills in when encrypting: the block cipher for the payload, an
// EncryptedKey wrapping the session key for the recipient, and empty
// CipherValue slots.
func PreEncryption(cipher domain.SymmetricCipher, keyTransport string) *etree.Document {
	if !cipher.Valid() {
		cipher = domain.DefaultSymmetricCipher
	}
	if keyTransport == "" {
		keyTransport = domain.KeyTransportRSAOAEP
	}

	doc := etree.NewDocument()
	encData := doc.CreateElement("xenc:EncryptedData")
	encData.CreateAttr("xmlns:xenc", xencNS)
	encData.CreateAttr("Type", xencNS+"Element")
	encData.CreateElement("xenc:EncryptionMethod").
		CreateAttr("Algorithm", string(cipher))

	keyInfo := encData.CreateElement("ds:KeyInfo")
	keyInfo.CreateAttr("xmlns:ds", dsNS)
	encKey := keyInfo.CreateElement("xenc:EncryptedKey")
	encKey.CreateElement("xenc:EncryptionMethod").
		CreateAttr("Algorithm", keyTransport)
	encKey.CreateElement("ds:KeyInfo").CreateElement("ds:KeyName")
	encKey.CreateElement("xenc:CipherData").CreateElement("xenc:CipherValue")

	encData.CreateElement("xenc:CipherData").CreateElement("xenc:CipherValue")
	return doc
}
