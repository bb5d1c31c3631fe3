package http

import (
	"context"
	"crypto/tls"
	"io"
	nethttp "net/http"
	"time"
)

const (
	// DefaultMaxRedirects is the maximum number of redirects to follow
	DefaultMaxRedirects = 10
	// DefaultMaxIdleConnsPerHost is the maximum number of idle connections per host
	DefaultMaxIdleConnsPerHost = 10
	// DefaultIdleConnTimeout is how long idle connections stay in the pool
	DefaultIdleConnTimeout = 90 * time.Second
)

// Doer sends one request and returns the response. All three backends
// implement it; tests substitute their own.
type Doer interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// Options configures a backend client. The zero value means no
// timeout, verified TLS and no cookie jar.
type Options struct {
	Timeout  time.Duration
	Insecure bool
	Jar      nethttp.CookieJar
}

func newTransport(insecure bool) *nethttp.Transport {
	transport := &nethttp.Transport{
		MaxIdleConnsPerHost: DefaultMaxIdleConnsPerHost,
		IdleConnTimeout:     DefaultIdleConnTimeout,
	}
	if insecure {
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true,
		}
	}
	return transport
}

func redirectPolicy(req *nethttp.Request, via []*nethttp.Request) error {
	if len(via) >= DefaultMaxRedirects {
		return nethttp.ErrUseLastResponse
	}
	return nil
}

func newStdClient(transport *nethttp.Transport, opts Options) *nethttp.Client {
	client := &nethttp.Client{
		Transport:     transport,
		Timeout:       opts.Timeout,
		CheckRedirect: redirectPolicy,
	}
	if opts.Jar != nil {
		client.Jar = opts.Jar
	}
	return client
}

// buildStdRequest assembles a net/http request, applying headers in
// command-line order. length >= 0 pins Content-Length; -1 leaves the
// transfer encoding to the transport.
func buildStdRequest(ctx context.Context, r *Request, body io.Reader, length int64) (*nethttp.Request, error) {
	req, err := nethttp.NewRequestWithContext(ctx, r.Method, r.URL.String(), body)
	if err != nil {
		return nil, err
	}
	for _, h := range r.Headers {
		req.Header.Add(h.Key, h.Value)
	}
	if body != nil && length >= 0 {
		req.ContentLength = length
	}
	return req, nil
}

// readerOrNil keeps a nil *os.File (or other nil ReadCloser) from
// turning into a non-nil io.Reader interface value.
func readerOrNil(rc io.ReadCloser) io.Reader {
	if rc == nil {
		return nil
	}
	return rc
}

func fromStdResponse(resp *nethttp.Response) *Response {
	return &Response{
		Proto:      resp.Proto,
		Status:     resp.Status,
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       resp.Body,
	}
}
