// Package tls loads an mTLS server configuration from the SPIRE Workload
// API when TLS is enabled.
package tls

import (
	"context"
	"crypto/tls"
	"fmt"

	"github.com/spiffe/go-spiffe/v2/spiffetls/tlsconfig"
	"github.com/spiffe/go-spiffe/v2/workloadapi"
	"go.uber.org/zap"
)

type Settings struct {
	Enabled    bool
	SocketPath string
}

// Source wraps the SPIRE X509 source so the caller can close it on
// shutdown. SPIRE rotates certificates itself; no reload hook is needed.
type Source struct {
	x509Source *workloadapi.X509Source
}

// Load builds the server TLS config. It returns (nil, nil, nil) when TLS is
// disabled.
func Load(ctx context.Context, settings Settings, logger *zap.Logger) (*tls.Config, *Source, error) {
	if !settings.Enabled {
		logger.Info("TLS is disabled")
		return nil, nil, nil
	}

	source, err := workloadapi.NewX509Source(
		ctx,
		workloadapi.WithClientOptions(
			workloadapi.WithAddr(settings.SocketPath),
		),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to create X509Source: %w", err)
	}

	tlsConfig := tlsconfig.MTLSServerConfig(source, source, tlsconfig.AuthorizeAny())
	tlsConfig.MinVersion = tls.VersionTLS12

	logger.Info("SPIRE TLS configuration loaded",
		zap.String("socket_path", settings.SocketPath),
		zap.Bool("mtls_enabled", true))

	return tlsConfig, &Source{x509Source: source}, nil
}

func (s *Source) Close() {
	if s != nil && s.x509Source != nil {
		s.x509Source.Close()
	}
}
