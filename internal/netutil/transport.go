package netutil

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// NewTransport builds the pooled HTTP transport used for Porta API
// calls. Connection reuse matters here: an audit run performs one request
// per charger against the same host, with a throttle delay in between.
func NewTransport(logger *logrus.Logger) *http.Transport {
	transport := &http.Transport{
		TLSHandshakeTimeout:   10 * time.Second,
		IdleConnTimeout:       90 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		MaxIdleConns:          10,
		MaxIdleConnsPerHost:   2,
	}
	logger.Debug("HTTP transport ready")
	return transport
}

// NewHTTPClient creates an HTTP client with the pooled transport and the
// given per-request timeout.
func NewHTTPClient(timeout time.Duration, logger *logrus.Logger) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: NewTransport(logger),
	}
}
