package xmldsig

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"

	"github.com/philiph/saml-sigtrust/internal/core/domain"
)

// loadPrivateKey reads an RSA private key from a PEM file. Both PKCS#1 and
// PKCS#8 encodings are accepted.
func loadPrivateKey(path string) (*rsa.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.XmlsecError("read private key file", err)
	}
	for {
		var block *pem.Block
		block, data = pem.Decode(data)
		if block == nil {
			break
		}
		switch block.Type {
		case "RSA PRIVATE KEY":
			key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
			if err != nil {
				return nil, domain.XmlsecError("parse PKCS#1 private key", err)
			}
			return key, nil
		case "PRIVATE KEY":
			key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
			if err != nil {
				return nil, domain.XmlsecError("parse PKCS#8 private key", err)
			}
			rsaKey, ok := key.(*rsa.PrivateKey)
			if !ok {
				return nil, domain.XmlsecError(
					fmt.Sprintf("unsupported private key type %T, need RSA", key), nil)
			}
			return rsaKey, nil
		}
	}
	return nil, domain.XmlsecError("no private key found in "+path, nil)
}
