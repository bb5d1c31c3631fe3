package http

import (
	"bytes"
	"context"
	"crypto/tls"
	"io"
	nethttp "net/http"
)

// H1Client is the default backend: net/http pinned to HTTP/1.1. It
// cannot stream a request body, so the whole body (including piped
// stdin) is buffered before sending and every request carries a known
// Content-Length.
type H1Client struct {
	client *nethttp.Client
}

func NewH1Client(opts Options) *H1Client {
	transport := newTransport(opts.Insecure)
	// an empty next-proto map keeps the transport off HTTP/2
	transport.ForceAttemptHTTP2 = false
	transport.TLSNextProto = map[string]func(string, *tls.Conn) nethttp.RoundTripper{}
	return &H1Client{client: newStdClient(transport, opts)}
}

func (c *H1Client) Do(ctx context.Context, r *Request) (*Response, error) {
	buf, err := r.Body.Buffer()
	if err != nil {
		return nil, err
	}

	var body io.Reader
	length := int64(-1)
	if buf != nil {
		body = bytes.NewReader(buf)
		length = int64(len(buf))
	}

	req, err := buildStdRequest(ctx, r, body, length)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	return fromStdResponse(resp), nil
}
