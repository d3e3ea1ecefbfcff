package samlsigtrust

import (
	"context"
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/crewjam/saml"
	"go.uber.org/zap"

	"github.com/philiph/saml-sigtrust/internal/adapters/driven/certs"
	"github.com/philiph/saml-sigtrust/internal/adapters/driven/protocol"
	"github.com/philiph/saml-sigtrust/internal/adapters/driven/template"
	"github.com/philiph/saml-sigtrust/internal/adapters/driven/xmldsig"
	"github.com/philiph/saml-sigtrust/internal/adapters/driven/xmlsec"
	"github.com/philiph/saml-sigtrust/internal/core/domain"
	"github.com/philiph/saml-sigtrust/internal/core/ports"
)

// SecurityContext owns key material and trust configuration and drives the
// sign/verify/encrypt/decrypt pipelines. Immutable after construction and
// safe for concurrent use; each operation is an independent blocking unit
// of work.
type SecurityContext struct {
	keys     domain.KeyMaterial
	policy   domain.TrustPolicy
	sigAlg   domain.SignatureAlgorithm
	engine   ports.CryptoEngine
	resolver ports.MetadataResolver
	logger   *zap.Logger
	metrics  ports.OperationRecorder
}

// Option configures a SecurityContext.
type Option func(*SecurityContext)

// WithMetadataResolver attaches the federation metadata resolver used when
// trust policy restricts verification to metadata-published keys.
func WithMetadataResolver(resolver ports.MetadataResolver) Option {
	return func(s *SecurityContext) { s.resolver = resolver }
}

// WithEngine overrides the crypto engine selected by the config.
func WithEngine(engine ports.CryptoEngine) Option {
	return func(s *SecurityContext) { s.engine = engine }
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *SecurityContext) { s.logger = logger }
}

// WithMetrics attaches an operation recorder.
func WithMetrics(recorder ports.OperationRecorder) Option {
	return func(s *SecurityContext) { s.metrics = recorder }
}

// New builds a SecurityContext from config. The trust policy and key
// material are resolved once here, not re-derived per call.
func New(cfg *Config, opts ...Option) (*SecurityContext, error) {
	if cfg == nil {
		return nil, domain.ConfigError("nil config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var ownCert domain.Certificate
	if cfg.CertFile != "" {
		cert, err := certs.ReadCertificateFile(cfg.CertFile, certs.FormatPEM)
		if err != nil {
			return nil, err
		}
		ownCert = cert
	}

	s := &SecurityContext{
		keys:    cfg.keyMaterial(ownCert),
		policy:  cfg.trustPolicy(),
		sigAlg:  cfg.signatureAlgorithm(),
		logger:  zap.NewNop(),
		metrics: NewNoopOperationRecorder(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.engine == nil {
		engine, err := buildEngine(cfg, s.logger)
		if err != nil {
			return nil, err
		}
		s.engine = engine
	}

	if s.policy.OnlyUseKeysInMetadata && s.resolver == nil {
		return nil, domain.ConfigError(
			"only_use_keys_in_metadata requires a metadata resolver")
	}
	return s, nil
}

func buildEngine(cfg *Config, logger *zap.Logger) (ports.CryptoEngine, error) {
	switch cfg.CryptoBackend {
	case BackendXMLDsig:
		return xmldsig.New(), nil
	default:
		var opts []xmlsec.Option
		if cfg.RetainTempFiles {
			opts = append(opts, xmlsec.WithRetainFiles())
		}
		opts = append(opts, xmlsec.WithLogger(logger))
		return xmlsec.New(cfg.XmlsecBinary, opts...)
	}
}

// OwnCertificate returns the configured signing certificate, or the zero
// value when none is configured.
func (s *SecurityContext) OwnCertificate() domain.Certificate {
	return s.keys.Certificate
}

// EngineVersion reports the active crypto backend, for diagnostics.
func (s *SecurityContext) EngineVersion(ctx context.Context) string {
	return s.engine.Version(ctx)
}

// ApplySignaturePlaceholder inserts an unsigned signature template for the
// named node into the document, at the schema-valid position after the
// node's Issuer child. The template carries the context's own certificate
// and configured signature algorithm; it holds no computed values until
// SignStatement runs.
func (s *SecurityContext) ApplySignaturePlaceholder(document []byte, nodeName, nodeID string) ([]byte, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(document); err != nil {
		return nil, domain.BadRequestError("malformed document: " + err.Error())
	}
	target := findByID(doc.Root(), localName(nodeName), nodeID)
	if target == nil {
		return nil, domain.BadRequestError("node not found: " + nodeID)
	}
	sig := template.PreSignature(nodeID, s.keys.Certificate, s.sigAlg)
	template.InsertSignature(target, sig, -1)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, domain.BadRequestError("serialize document: " + err.Error())
	}
	return out, nil
}

// SignStatement computes the signature for the placeholder referencing
// nodeID using the configured signing key and returns the signed document.
func (s *SecurityContext) SignStatement(ctx context.Context, document []byte, nodeName, nodeID string) ([]byte, error) {
	return s.SignWithKey(ctx, document, nodeName, nodeID, s.keys.KeyFile)
}

// SignWithKey is SignStatement with an explicit per-call signing key file.
func (s *SecurityContext) SignWithKey(ctx context.Context, document []byte, nodeName, nodeID, keyFile string) ([]byte, error) {
	if keyFile == "" {
		return nil, domain.ConfigError("no signing key configured")
	}
	signed, err := s.engine.SignStatement(ctx, document, nodeName, nodeID, keyFile)
	s.metrics.RecordSign(err == nil)
	if err != nil {
		s.logger.Warn("signing failed",
			zap.String("node_id", nodeID),
			zap.Error(err),
		)
		return nil, err
	}
	s.logger.Debug("statement signed", zap.String("node_id", nodeID))
	return signed, nil
}

// MultipleSignatures applies the plan's signing steps strictly in order.
// Each step re-serializes the current state of the whole document, so a
// later signature covers already-signed inner content verbatim; the plan
// must be ordered innermost first and must cover every pre-inserted
// placeholder, or the operation fails before any engine call.
func (s *SecurityContext) MultipleSignatures(ctx context.Context, document []byte, plan domain.MultiSignaturePlan) ([]byte, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	ids, err := placeholderIDs(document)
	if err != nil {
		return nil, err
	}
	if err := plan.Covers(ids); err != nil {
		return nil, err
	}

	current := document
	for _, step := range plan {
		current, err = s.SignStatement(ctx, current, step.NodeName, step.NodeID)
		if err != nil {
			return nil, err
		}
	}
	return current, nil
}

// CheckSignature verifies the signature on the entity's node within the
// raw document and returns the verification outcome. With must false an
// unsigned node is accepted and reported as such; with must true its
// absence is a signature error. Failures always name the node that failed.
func (s *SecurityContext) CheckSignature(ctx context.Context, entity ports.Entity, raw []byte, must bool) (*domain.VerifiedEntity, error) {
	nodeName := entity.ElementName()
	nodeID := entity.EntityID()

	if raw == nil {
		serialized, err := entity.SerializeXML()
		if err != nil {
			return nil, err
		}
		raw = serialized
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(raw); err != nil {
		return nil, domain.BadRequestError("malformed document: " + err.Error())
	}
	target := findByID(doc.Root(), localName(nodeName), nodeID)
	if target == nil {
		return nil, domain.SignatureError(nodeID, "node to verify not found", nil)
	}

	if !hasDirectSignature(target) {
		if must {
			s.metrics.RecordVerify(nodeName, false)
			return nil, domain.SignatureError(nodeID, "required signature is missing", nil)
		}
		return domain.NewUnsignedEntity(nodeName, nodeID, raw), nil
	}

	candidates, err := s.trustedCertificates(entity, target)
	if err != nil {
		s.metrics.RecordVerify(nodeName, false)
		return nil, err
	}

	var lastErr error
	for _, cert := range candidates {
		if err := s.engine.VerifySignature(ctx, raw, cert, nodeName, nodeID); err != nil {
			lastErr = err
			continue
		}
		s.metrics.RecordVerify(nodeName, true)
		s.logger.Debug("signature verified", zap.String("node_id", nodeID))
		return domain.NewVerifiedEntity(nodeName, nodeID, cert, raw), nil
	}

	s.metrics.RecordVerify(nodeName, false)
	s.logger.Warn("signature check failed",
		zap.String("node_id", nodeID),
		zap.Error(lastErr),
	)
	return nil, domain.SignatureError(nodeID, "signature check failed", lastErr)
}

// trustedCertificates resolves the certificate set a signature may be
// checked against, per the trust policy fixed at construction.
func (s *SecurityContext) trustedCertificates(entity ports.Entity, target *etree.Element) ([]domain.Certificate, error) {
	nodeID := entity.EntityID()

	if s.policy.OnlyUseKeysInMetadata {
		trusted, err := s.resolver.TrustedCertificates(entity.Issuer(), domain.UsageSigning)
		if err != nil {
			return nil, domain.SignatureError(nodeID, "metadata lookup failed", err)
		}
		if len(trusted) == 0 {
			return nil, domain.SignatureError(nodeID,
				fmt.Sprintf("no trusted keys in metadata for issuer %q", entity.Issuer()), nil)
		}
		return trusted, nil
	}

	embedded, err := certs.ExtractCertificates(target)
	if err != nil {
		return nil, domain.SignatureError(nodeID, "embedded certificate is unusable", err)
	}
	if len(embedded) > 0 {
		return embedded, nil
	}
	if !s.keys.Certificate.IsZero() {
		return []domain.Certificate{s.keys.Certificate}, nil
	}
	return nil, domain.SignatureError(nodeID, "no certificate available to verify against", nil)
}

// VerifySignature is the relaxed boolean variant of CheckSignature: best
// effort verification of the first element with the given name, without
// structured failure propagation. A missing signature is simply false.
func (s *SecurityContext) VerifySignature(ctx context.Context, raw []byte, cert *domain.Certificate, nodeName string) bool {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(raw); err != nil {
		return false
	}
	target := findByID(doc.Root(), localName(nodeName), "")
	if target == nil || !hasDirectSignature(target) {
		return false
	}
	nodeID := target.SelectAttrValue("ID", "")

	trusted := s.keys.Certificate
	if cert != nil {
		trusted = *cert
	}
	if trusted.IsZero() {
		if embedded, err := certs.ExtractCertificates(target); err == nil && len(embedded) == 1 {
			trusted = embedded[0]
		}
	}

	err := s.engine.VerifySignature(ctx, raw, trusted, nodeName, nodeID)
	s.metrics.RecordVerify(nodeName, err == nil)
	return err == nil
}

// CorrectlySignedResponse parses and validates a top-level response.
// An unsigned well-formed response is accepted unless the trust policy
// requires signed responses; a present-but-invalid signature is always an
// error.
func (s *SecurityContext) CorrectlySignedResponse(ctx context.Context, raw []byte) (*saml.Response, error) {
	parsed, err := protocol.ParseResponse(raw)
	if err != nil {
		return nil, err
	}
	entity := protocol.WrapResponse(parsed)

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(raw); err != nil {
		return nil, domain.BadRequestError("malformed document: " + err.Error())
	}
	target := findByID(doc.Root(), "Response", entity.EntityID())
	if target == nil || !hasDirectSignature(target) {
		if s.policy.RequireSignedResponses {
			return nil, domain.SignatureError(entity.EntityID(),
				"response is not signed and policy requires signed responses", nil)
		}
		return parsed, nil
	}

	if _, err := s.CheckSignature(ctx, entity, raw, true); err != nil {
		return nil, err
	}
	return parsed, nil
}

// EncryptAssertion encrypts the document for the recipient certificate,
// producing an EncryptedData structure built from a fresh encryption
// template.
func (s *SecurityContext) EncryptAssertion(ctx context.Context, document []byte, recipient domain.Certificate, cipher domain.SymmetricCipher) ([]byte, error) {
	tmpl, err := template.PreEncryption(cipher, "").WriteToBytes()
	if err != nil {
		return nil, domain.XmlsecError("serialize encryption template", err)
	}
	encrypted, err := s.engine.Encrypt(ctx, document, recipient, tmpl, cipher, "")
	s.metrics.RecordEncrypt(err == nil)
	if err != nil {
		return nil, err
	}
	return encrypted, nil
}

// Decrypt decrypts the encrypted payload. With keyFile empty, each
// configured decryption key is tried in order and the first the engine
// accepts wins. The error never names which keys were tried.
func (s *SecurityContext) Decrypt(ctx context.Context, document []byte, keyFile string) ([]byte, error) {
	keyFiles := []string{keyFile}
	if keyFile == "" {
		keyFiles = s.keys.DecryptionKeyFiles()
	}
	if len(keyFiles) == 0 {
		s.metrics.RecordDecrypt(false)
		return nil, domain.XmlsecError("no decryption keys configured", nil)
	}

	for _, kf := range keyFiles {
		plaintext, err := s.engine.Decrypt(ctx, document, kf)
		if err == nil {
			s.metrics.RecordDecrypt(true)
			return plaintext, nil
		}
		s.logger.Debug("decryption key rejected", zap.Error(err))
	}
	s.metrics.RecordDecrypt(false)
	return nil, domain.XmlsecError("unable to decrypt payload with any configured key", nil)
}

// placeholderIDs collects the node IDs referenced by unsigned signature
// templates in the document. A signature whose SignatureValue already holds
// content is complete, not a placeholder.
func placeholderIDs(document []byte) ([]string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(document); err != nil {
		return nil, domain.BadRequestError("malformed document: " + err.Error())
	}
	var ids []string
	seen := make(map[string]bool)
	walk(doc.Root(), func(el *etree.Element) {
		if el.Tag != "Signature" || !signatureValueEmpty(el) {
			return
		}
		walk(el, func(inner *etree.Element) {
			if inner.Tag != "Reference" {
				return
			}
			uri := inner.SelectAttrValue("URI", "")
			if !strings.HasPrefix(uri, "#") {
				return
			}
			id := uri[1:]
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		})
	})
	return ids, nil
}

func signatureValueEmpty(sig *etree.Element) bool {
	for _, child := range sig.ChildElements() {
		if child.Tag == "SignatureValue" {
			return strings.TrimSpace(child.Text()) == ""
		}
	}
	return true
}

func walk(el *etree.Element, visit func(*etree.Element)) {
	if el == nil {
		return
	}
	visit(el)
	for _, child := range el.ChildElements() {
		walk(child, visit)
	}
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

// hasDirectSignature reports whether el carries a Signature child of its
// own, as opposed to a signature on some nested entity.
func hasDirectSignature(el *etree.Element) bool {
	for _, child := range el.ChildElements() {
		if child.Tag == "Signature" {
			return true
		}
	}
	return false
}

func localName(name string) string {
	if i := strings.LastIndex(name, ":"); i >= 0 {
		return name[i+1:]
	}
	return name
}
