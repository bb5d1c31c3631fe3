package http

import (
	"bytes"
	"context"
	"crypto/tls"
	"io"
	"math"
	nethttp "net/http"
	"strconv"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
)

// CurlClient sends through fasthttp, an HTTP/1.1 engine independent of
// net/http. Request bodies stream; when the body is replayable (or
// absent) it follows redirects like the other backends.
type CurlClient struct {
	client  *fasthttp.Client
	timeout time.Duration
	jar     nethttp.CookieJar
}

func NewCurlClient(opts Options) *CurlClient {
	client := &fasthttp.Client{
		NoDefaultUserAgentHeader: true,
	}
	if opts.Insecure {
		client.TLSConfig = &tls.Config{
			InsecureSkipVerify: true,
		}
	}
	return &CurlClient{client: client, timeout: opts.Timeout, jar: opts.Jar}
}

func (c *CurlClient) Do(ctx context.Context, r *Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.Header.SetMethod(r.Method)
	req.SetRequestURI(r.URL.String())
	for _, h := range r.Headers {
		req.Header.Add(h.Key, h.Value)
	}

	if c.jar != nil {
		if cookie := cookieHeader(c.jar.Cookies(r.URL)); cookie != "" {
			req.Header.Set("Cookie", cookie)
		}
	}

	body, length, err := r.Body.Open()
	if err != nil {
		return nil, err
	}
	if body != nil {
		defer body.Close()
		req.SetBodyStream(body, streamBodySize(length))
	}

	switch {
	case body != nil && c.timeout > 0:
		// a streamed body cannot be replayed across redirects
		err = c.client.DoTimeout(req, resp, c.timeout)
	case body != nil:
		err = c.client.Do(req, resp)
	case c.timeout > 0:
		err = c.doRedirectsDeadline(req, resp, time.Now().Add(c.timeout))
	default:
		err = c.client.DoRedirects(req, resp, DefaultMaxRedirects)
	}
	if err != nil {
		return nil, err
	}

	header := make(nethttp.Header)
	resp.Header.VisitAll(func(k, v []byte) {
		header.Add(string(k), string(v))
	})

	if c.jar != nil {
		if cookies := (&nethttp.Response{Header: header}).Cookies(); len(cookies) > 0 {
			c.jar.SetCookies(r.URL, cookies)
		}
	}

	code := resp.StatusCode()
	buf := append([]byte(nil), resp.Body()...)
	return &Response{
		Proto:      "HTTP/1.1",
		Status:     statusLine(code),
		StatusCode: code,
		Header:     header,
		Body:       io.NopCloser(bytes.NewReader(buf)),
	}, nil
}

// doRedirectsDeadline follows redirects like DoRedirects does, but the
// deadline spans all hops instead of restarting per request.
func (c *CurlClient) doRedirectsDeadline(req *fasthttp.Request, resp *fasthttp.Response, deadline time.Time) error {
	for hops := 0; ; hops++ {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			return err
		}
		if hops >= DefaultMaxRedirects || !fasthttp.StatusCodeIsRedirect(resp.StatusCode()) {
			return nil
		}
		location := resp.Header.Peek(fasthttp.HeaderLocation)
		if len(location) == 0 {
			return nil
		}
		req.URI().UpdateBytes(location)
		resp.Reset()
	}
}

// streamBodySize narrows a body length for SetBodyStream; a length that
// does not fit in int falls back to chunked transfer.
func streamBodySize(length int64) int {
	if length < 0 || length > int64(math.MaxInt) {
		return -1
	}
	return int(length)
}

func statusLine(code int) string {
	text := nethttp.StatusText(code)
	if text == "" {
		return strconv.Itoa(code)
	}
	return strconv.Itoa(code) + " " + text
}

// cookieHeader joins request cookies the way net/http writes them: a
// single Cookie header with `; ` separators.
func cookieHeader(cookies []*nethttp.Cookie) string {
	parts := make([]string, 0, len(cookies))
	for _, c := range cookies {
		parts = append(parts, c.Name+"="+c.Value)
	}
	return strings.Join(parts, "; ")
}
