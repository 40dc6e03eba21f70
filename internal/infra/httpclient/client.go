// Package httpclient builds the pooled HTTP client shared by outbound adapters.
package httpclient

import (
	"net"
	"net/http"
	"time"

	"github.com/uniedit/orderflow/internal/infra/config"
	"github.com/uniedit/orderflow/internal/utils/requestctx"
)

// Option adjusts the client built by New.
type Option func(*http.Client, *transport)

// WithTimeout overrides the configured response timeout when d is positive.
func WithTimeout(d time.Duration) Option {
	return func(c *http.Client, _ *transport) {
		if d > 0 {
			c.Timeout = d
		}
	}
}

// WithUserAgent sets User-Agent on requests that carry none.
func WithUserAgent(ua string) Option {
	return func(_ *http.Client, t *transport) {
		t.userAgent = ua
	}
}

// New creates a pooled HTTP client from cfg. Requests made with a context
// carrying a request ID forward it as X-Request-ID.
func New(cfg config.HTTPClientConfig, opts ...Option) *http.Client {
	base := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.DialTimeout,
			KeepAlive: cfg.KeepAlive,
		}).DialContext,
		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		MaxConnsPerHost:     cfg.MaxConnsPerHost,
		IdleConnTimeout:     cfg.IdleConnTimeout,
		TLSHandshakeTimeout: cfg.TLSHandshakeTimeout,
		ForceAttemptHTTP2:   true,
	}

	t := &transport{next: base}
	client := &http.Client{Transport: t, Timeout: cfg.ResponseTimeout}
	for _, opt := range opts {
		opt(client, t)
	}
	return client
}

type transport struct {
	next      http.RoundTripper
	userAgent string
}

func (t *transport) RoundTrip(req *http.Request) (*http.Response, error) {
	id := requestctx.RequestID(req.Context())
	setUA := t.userAgent != "" && req.Header.Get("User-Agent") == ""
	if id == "" && !setUA {
		return t.next.RoundTrip(req)
	}

	// RoundTrippers must not mutate the caller's request.
	req = req.Clone(req.Context())
	if id != "" && req.Header.Get("X-Request-ID") == "" {
		req.Header.Set("X-Request-ID", id)
	}
	if setUA {
		req.Header.Set("User-Agent", t.userAgent)
	}
	return t.next.RoundTrip(req)
}
