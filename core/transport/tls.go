package transport

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"

	"github.com/joelittlejohn/ring-jetty9-adapter/core/config"
)

// alpnProtocols is offered during the TLS handshake when HTTP/2 is enabled
// on the secure connector. The negotiated protocol determines per-connection
// behavior; clients that offer neither fall back to HTTP/1.1.
var alpnProtocols = []string{"h2", "http/1.1"}

// NewTLSConfig builds the secure-channel negotiation surface for the secure
// connector from PEM files named in cfg. The result is read-only after
// construction and may be shared across connectors.
func NewTLSConfig(cfg config.Config) (*tls.Config, error) {
	tc := &tls.Config{
		MinVersion: tls.VersionTLS12,
	}

	if cfg.CertFile != "" && cfg.KeyFile != "" {
		cert, err := tls.LoadX509KeyPair(cfg.CertFile, cfg.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("%w: %s, %s: %v", ErrLoadCert, cfg.CertFile, cfg.KeyFile, err)
		}
		tc.Certificates = []tls.Certificate{cert}
	}

	if cfg.ClientCAFile != "" {
		pem, err := os.ReadFile(cfg.ClientCAFile)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrLoadClientCA, cfg.ClientCAFile, err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("%w: %s: no certificates found", ErrLoadClientCA, cfg.ClientCAFile)
		}
		tc.ClientCAs = pool
	}

	auth, err := clientAuthType(cfg.ClientAuth)
	if err != nil {
		return nil, err
	}
	tc.ClientAuth = auth

	return tc, nil
}

func clientAuthType(mode config.ClientAuth) (tls.ClientAuthType, error) {
	switch mode {
	case config.ClientAuthNone, "":
		return tls.NoClientCert, nil
	case config.ClientAuthWant:
		return tls.VerifyClientCertIfGiven, nil
	case config.ClientAuthNeed:
		return tls.RequireAndVerifyClientCert, nil
	default:
		return tls.NoClientCert, fmt.Errorf("%w: %q", config.ErrInvalidClientAuth, mode)
	}
}
