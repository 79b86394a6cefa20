package common

import (
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

// DefaultTimeout bounds a single catalog request when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// HttpClient is the transport capability the catalog client needs.
// This allows mocking or custom transport layers in testing.
type HttpClient interface {
	Do(req *http.Request) (*http.Response, error)
	CloseIdleConnections()
}

// HTTPError is a custom error that captures unexpected status codes and response bodies.
type HTTPError struct {
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("unexpected status code: %d, body: %s", e.StatusCode, string(e.Body))
}

// HttpClientOptions tunes NewHttpClient.
type HttpClientOptions struct {
	UserAgent string
	Timeout   time.Duration
	// TokenSource, when set, authorizes every request with an OAuth2 bearer token.
	TokenSource oauth2.TokenSource
}

// userAgentRoundTripper is a custom RoundTripper that adds a User-Agent header.
type userAgentRoundTripper struct {
	Wrapped   http.RoundTripper
	UserAgent string
}

func (rt *userAgentRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	// clone request to avoid mutating the original
	clone := req.Clone(req.Context())
	clone.Header.Set("User-Agent", rt.UserAgent)
	return rt.Wrapped.RoundTrip(clone)
}

type httpClient struct {
	client *http.Client
}

// NewHttpClient wraps base with the configured User-Agent, timeout and optional bearer auth.
func NewHttpClient(base *http.Client, opts HttpClientOptions) HttpClient {
	if base == nil {
		base = &http.Client{}
	}
	transport := base.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	if opts.TokenSource != nil {
		transport = &oauth2.Transport{
			Source: oauth2.ReuseTokenSource(nil, opts.TokenSource),
			Base:   transport,
		}
	}
	if opts.UserAgent != "" {
		transport = &userAgentRoundTripper{
			Wrapped:   transport,
			UserAgent: opts.UserAgent,
		}
	}
	base.Transport = transport

	base.Timeout = opts.Timeout
	if base.Timeout <= 0 {
		base.Timeout = DefaultTimeout
	}

	return &httpClient{client: base}
}

func (h *httpClient) Do(req *http.Request) (*http.Response, error) {
	return h.client.Do(req)
}

func (h *httpClient) CloseIdleConnections() {
	h.client.CloseIdleConnections()
}
