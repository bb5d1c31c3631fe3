package http

import (
	"context"
	"fmt"
	nethttp "net/http"

	"golang.org/x/net/http2"
)

// HyperClient is net/http with HTTP/2 configured on the transport. It
// negotiates h2 over TLS where the server offers it and falls back to
// HTTP/1.1 otherwise. Bodies stream.
type HyperClient struct {
	client *nethttp.Client
}

func NewHyperClient(opts Options) *HyperClient {
	transport := newTransport(opts.Insecure)
	if err := http2.ConfigureTransport(transport); err != nil {
		// only fails on a transport that was already configured; ours never is
		panic(fmt.Sprintf("http2: %v", err))
	}
	return &HyperClient{client: newStdClient(transport, opts)}
}

func (c *HyperClient) Do(ctx context.Context, r *Request) (*Response, error) {
	body, length, err := r.Body.Open()
	if err != nil {
		return nil, err
	}

	req, err := buildStdRequest(ctx, r, readerOrNil(body), length)
	if err != nil {
		if body != nil {
			body.Close()
		}
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	return fromStdResponse(resp), nil
}
