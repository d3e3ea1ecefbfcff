package ports

// OperationRecorder is the port interface for recording crypto operation
// metrics. Implementations are adapters (PrometheusOperationRecorder for
// production, NoopOperationRecorder for disabled/testing).
type OperationRecorder interface {
	// RecordSign records a signing attempt.
	RecordSign(success bool)

	// RecordVerify records a verification attempt against the named node.
	RecordVerify(nodeName string, success bool)

	// RecordEncrypt records an encryption attempt.
	RecordEncrypt(success bool)

	// RecordDecrypt records a decryption attempt.
	RecordDecrypt(success bool)
}
