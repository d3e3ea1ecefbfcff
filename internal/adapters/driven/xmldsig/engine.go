// Package xmldsig is the in-process crypto engine built on goxmldsig. It
// satisfies the same capability interface as the external xmlsec adapter
// for signing and verification; XML encryption is not implemented by the
// underlying library and reports unsupported.
package xmldsig

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"strings"

	"github.com/beevik/etree"
	dsig "github.com/russellhaering/goxmldsig"

	"github.com/philiph/saml-sigtrust/internal/adapters/driven/certs"
	"github.com/philiph/saml-sigtrust/internal/core/domain"
	"github.com/philiph/saml-sigtrust/internal/core/ports"
)

// Engine signs and verifies XML signatures in-process. Stateless and safe
// for concurrent use.
type Engine struct{}

// New creates an in-process engine.
func New() *Engine {
	return &Engine{}
}

// SignStatement completes the signature placeholder referencing nodeID.
// The placeholder supplies the signer certificate and signature method, so
// both engine implementations consume the same templates.
func (e *Engine) SignStatement(ctx context.Context, document []byte, nodeName, nodeID, keyFile string) ([]byte, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(document); err != nil {
		return nil, domain.XmlsecError("parse document to sign", err)
	}

	target := findByID(doc.Root(), localName(nodeName), nodeID)
	if target == nil {
		return nil, domain.XmlsecError("node to sign not found: "+nodeID, nil)
	}

	placeholder, index := removePlaceholder(target, nodeID)
	if placeholder == nil {
		return nil, domain.XmlsecError("no signature placeholder for node "+nodeID, nil)
	}

	cert, err := placeholderCertificate(placeholder)
	if err != nil {
		return nil, err
	}
	key, err := loadPrivateKey(keyFile)
	if err != nil {
		return nil, err
	}

	keyStore := dsig.TLSCertKeyStore(tls.Certificate{
		Certificate: [][]byte{cert.DER()},
		PrivateKey:  key,
	})
	sctx := dsig.NewDefaultSigningContext(keyStore)
	sctx.Canonicalizer = dsig.MakeC14N10ExclusiveCanonicalizerWithPrefixList("")
	if alg := placeholderAlgorithm(placeholder); alg != "" {
		if err := sctx.SetSignatureMethod(alg); err != nil {
			return nil, domain.XmlsecError("unsupported signature method "+alg, err)
		}
	}

	sig, err := sctx.ConstructSignature(target, true)
	if err != nil {
		return nil, domain.XmlsecError("construct signature", err)
	}
	insertAt(target, sig, index)

	signed, err := doc.WriteToBytes()
	if err != nil {
		return nil, domain.XmlsecError("serialize signed document", err)
	}
	return signed, nil
}

// VerifySignature validates the signature on the named node against the
// trusted certificate. Validation of any other node never satisfies the
// request.
func (e *Engine) VerifySignature(ctx context.Context, document []byte, cert domain.Certificate, nodeName, nodeID string) error {
	if cert.IsZero() {
		return domain.XmlsecError("no trusted certificate supplied for verification", nil)
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(document); err != nil {
		return domain.XmlsecError("parse document to verify", err)
	}

	target := findByID(doc.Root(), localName(nodeName), nodeID)
	if target == nil {
		return domain.XmlsecError("node to verify not found: "+nodeID, nil)
	}

	x509Cert, err := cert.X509()
	if err != nil {
		return err
	}
	vctx := dsig.NewDefaultValidationContext(&dsig.MemoryX509CertificateStore{
		Roots: []*x509.Certificate{x509Cert},
	})

	validated, err := vctx.Validate(target)
	if err != nil {
		return domain.XmlsecOutputError("signature validation failed", err.Error())
	}
	if nodeID != "" && validated.SelectAttrValue("ID", "") != nodeID {
		return domain.XmlsecOutputError(
			"validated node does not match requested node "+nodeID, "")
	}
	return nil
}

// Encrypt is not supported by this backend.
func (e *Engine) Encrypt(ctx context.Context, document []byte, recipient domain.Certificate, template []byte, cipher domain.SymmetricCipher, dataXPath string) ([]byte, error) {
	return nil, domain.XmlsecError("xml encryption is not supported by the xmldsig backend", nil)
}

// Decrypt is not supported by this backend.
func (e *Engine) Decrypt(ctx context.Context, document []byte, keyFile string) ([]byte, error) {
	return nil, domain.XmlsecError("xml decryption is not supported by the xmldsig backend", nil)
}

// Version identifies the backend.
func (e *Engine) Version(ctx context.Context) string {
	return "goxmldsig (in-process)"
}

// findByID locates the element with the given local name and ID attribute.
// An empty id matches the first element with the local name.
func findByID(el *etree.Element, tag, id string) *etree.Element {
	if el == nil {
		return nil
	}
	if el.Tag == tag && (id == "" || el.SelectAttrValue("ID", "") == id) {
		return el
	}
	for _, child := range el.ChildElements() {
		if found := findByID(child, tag, id); found != nil {
			return found
		}
	}
	return nil
}

// removePlaceholder detaches the direct-child signature template
// referencing "#id" (or the whole document via an empty URI) and returns it
// with the child index it occupied.
func removePlaceholder(parent *etree.Element, id string) (*etree.Element, int) {
	for i, child := range parent.ChildElements() {
		if child.Tag != "Signature" {
			continue
		}
		ref := childByTag(childByTag(child, "SignedInfo"), "Reference")
		if ref == nil {
			continue
		}
		uri := ref.SelectAttrValue("URI", "")
		if uri == "#"+id || uri == "" {
			parent.RemoveChild(child)
			return child, i
		}
	}
	return nil, -1
}

// childByTag returns the first direct child with the given local name.
func childByTag(el *etree.Element, tag string) *etree.Element {
	if el == nil {
		return nil
	}
	for _, child := range el.ChildElements() {
		if child.Tag == tag {
			return child
		}
	}
	return nil
}

// placeholderCertificate extracts the signer certificate the placeholder
// carries in its KeyInfo.
func placeholderCertificate(placeholder *etree.Element) (domain.Certificate, error) {
	found, err := certs.ExtractCertificates(placeholder)
	if err != nil {
		return domain.Certificate{}, err
	}
	if len(found) != 1 {
		return domain.Certificate{}, domain.XmlsecError(
			"signature placeholder carries no signer certificate", nil)
	}
	return found[0], nil
}

// placeholderAlgorithm reads the requested signature method, if present.
func placeholderAlgorithm(placeholder *etree.Element) string {
	method := childByTag(childByTag(placeholder, "SignedInfo"), "SignatureMethod")
	if method == nil {
		return ""
	}
	return method.SelectAttrValue("Algorithm", "")
}

// insertAt places sig back at the child position the placeholder occupied.
func insertAt(parent, sig *etree.Element, index int) {
	children := parent.ChildElements()
	if index < 0 || index >= len(children) {
		parent.AddChild(sig)
		return
	}
	parent.InsertChildAt(children[index].Index(), sig)
}

func localName(name string) string {
	if i := strings.LastIndex(name, ":"); i >= 0 {
		return name[i+1:]
	}
	return name
}

var _ ports.CryptoEngine = (*Engine)(nil)
