package tlsroots

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
)

// ErrNoCertsFound is returned when PEM data holds no certificates.
var ErrNoCertsFound = errors.New("tlsroots: no certificates found in PEM data")

// Pool holds trusted root certificates.
type Pool struct {
	certPool *x509.CertPool
}

// NewPool creates a pool seeded with the system roots, or an empty pool
// where the system pool is unavailable.
func NewPool() *Pool {
	pool, err := x509.SystemCertPool()
	if err != nil {
		pool = x509.NewCertPool()
	}
	return &Pool{certPool: pool}
}

// AddCertFile adds every certificate in a PEM file.
func (p *Pool) AddCertFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("tlsroots: read cert file %s: %w", path, err)
	}
	return p.AddCertPEM(data)
}

// AddCertPEM adds every CERTIFICATE block in pemData.
func (p *Pool) AddCertPEM(pemData []byte) error {
	added := 0
	for len(pemData) > 0 {
		var block *pem.Block
		block, pemData = pem.Decode(pemData)
		if block == nil {
			break
		}
		if block.Type != "CERTIFICATE" {
			continue
		}
		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return fmt.Errorf("tlsroots: parse certificate: %w", err)
		}
		p.certPool.AddCert(cert)
		added++
	}
	if added == 0 {
		return ErrNoCertsFound
	}
	return nil
}

// CertPool returns the underlying pool.
func (p *Pool) CertPool() *x509.CertPool {
	return p.certPool
}

// ClientConfig builds a client TLS configuration.
// caFile, when set, is added to the system roots. insecure disables
// verification and is meant for local development only.
func ClientConfig(caFile string, insecure bool) (*tls.Config, error) {
	pool := NewPool()
	if caFile != "" {
		if err := pool.AddCertFile(caFile); err != nil {
			return nil, err
		}
	}
	return &tls.Config{
		MinVersion:         tls.VersionTLS12,
		RootCAs:            pool.CertPool(),
		InsecureSkipVerify: insecure, //nolint:gosec // opt-in via --insecure
	}, nil
}
