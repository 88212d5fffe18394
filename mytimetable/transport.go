package mytimetable

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"

	"github.com/hashicorp/go-cleanhttp"

	"github.com/eveoh/mytimetable-api-client/config"
)

// newPooledClient builds an HTTP client honoring the connection settings of cfg.
// The returned transport is safe for concurrent use.
func newPooledClient(cfg *config.Configuration) (*http.Client, *http.Transport) {
	transport := cleanhttp.DefaultPooledTransport()

	dialer := &net.Dialer{
		Timeout:   cfg.ConnectTimeout(),
		KeepAlive: 30 * time.Second,
	}
	transport.DialContext = dialer.DialContext
	transport.TLSHandshakeTimeout = cfg.ConnectTimeout()
	transport.ResponseHeaderTimeout = cfg.SocketTimeout()

	if cfg.APIMaxConnections > 0 {
		transport.MaxConnsPerHost = cfg.APIMaxConnections
		transport.MaxIdleConnsPerHost = cfg.APIMaxConnections
		transport.MaxIdleConns = cfg.APIMaxConnections
	}

	transport.DisableCompression = !cfg.APIEnableGzip

	if !cfg.APISSLCNCheck {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // explicitly configured
	}

	// No overall deadline: a body that keeps streaming may take as long as it needs.
	// Callers bound whole requests through their context.
	client := &http.Client{
		Transport: transport,
	}

	return client, transport
}
