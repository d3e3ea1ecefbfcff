package samlsigtrust

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/philiph/saml-sigtrust/internal/core/ports"
)

// NoopOperationRecorder is a no-op implementation for when metrics are
// disabled. All methods are safe to call and do nothing.
type NoopOperationRecorder struct{}

// NewNoopOperationRecorder creates a new no-op recorder.
func NewNoopOperationRecorder() *NoopOperationRecorder {
	return &NoopOperationRecorder{}
}

// RecordSign is a no-op.
func (n *NoopOperationRecorder) RecordSign(success bool) {}

// RecordVerify is a no-op.
func (n *NoopOperationRecorder) RecordVerify(nodeName string, success bool) {}

// RecordEncrypt is a no-op.
func (n *NoopOperationRecorder) RecordEncrypt(success bool) {}

// RecordDecrypt is a no-op.
func (n *NoopOperationRecorder) RecordDecrypt(success bool) {}

// PrometheusOperationRecorder records crypto operation metrics using
// Prometheus.
type PrometheusOperationRecorder struct {
	signsTotal    *prometheus.CounterVec
	verifiesTotal *prometheus.CounterVec
	encryptsTotal *prometheus.CounterVec
	decryptsTotal *prometheus.CounterVec
}

// NewPrometheusOperationRecorder creates a recorder using the default
// Prometheus registry.
func NewPrometheusOperationRecorder() *PrometheusOperationRecorder {
	return NewPrometheusOperationRecorderWithRegistry(prometheus.DefaultRegisterer)
}

// NewPrometheusOperationRecorderWithRegistry creates a recorder with a
// custom registry. Use this for testing.
func NewPrometheusOperationRecorderWithRegistry(reg prometheus.Registerer) *PrometheusOperationRecorder {
	signsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "saml_sigtrust_sign_operations_total",
		Help: "Total signing operations",
	}, []string{"result"})

	verifiesTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "saml_sigtrust_verify_operations_total",
		Help: "Total signature verification operations",
	}, []string{"node", "result"})

	encryptsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "saml_sigtrust_encrypt_operations_total",
		Help: "Total encryption operations",
	}, []string{"result"})

	decryptsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "saml_sigtrust_decrypt_operations_total",
		Help: "Total decryption operations",
	}, []string{"result"})

	reg.MustRegister(signsTotal, verifiesTotal, encryptsTotal, decryptsTotal)

	return &PrometheusOperationRecorder{
		signsTotal:    signsTotal,
		verifiesTotal: verifiesTotal,
		encryptsTotal: encryptsTotal,
		decryptsTotal: decryptsTotal,
	}
}

func resultLabel(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}

// RecordSign records a signing attempt.
func (p *PrometheusOperationRecorder) RecordSign(success bool) {
	p.signsTotal.WithLabelValues(resultLabel(success)).Inc()
}

// RecordVerify records a verification attempt against the named node.
func (p *PrometheusOperationRecorder) RecordVerify(nodeName string, success bool) {
	p.verifiesTotal.WithLabelValues(nodeName, resultLabel(success)).Inc()
}

// RecordEncrypt records an encryption attempt.
func (p *PrometheusOperationRecorder) RecordEncrypt(success bool) {
	p.encryptsTotal.WithLabelValues(resultLabel(success)).Inc()
}

// RecordDecrypt records a decryption attempt.
func (p *PrometheusOperationRecorder) RecordDecrypt(success bool) {
	p.decryptsTotal.WithLabelValues(resultLabel(success)).Inc()
}

// Ensure implementations satisfy the port
var _ ports.OperationRecorder = (*NoopOperationRecorder)(nil)
var _ ports.OperationRecorder = (*PrometheusOperationRecorder)(nil)
