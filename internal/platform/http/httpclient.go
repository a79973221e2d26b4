// Package http builds the outbound HTTP clients used by platform adapters.
package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient creates a client for calls to the object store.
//
// The whole request is bounded by timeout. Dial and TLS handshake have
// their own shorter limits, and idle connections are pooled so uploads
// reuse them. http.DefaultClient has no timeout and must not be used.
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   20,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
