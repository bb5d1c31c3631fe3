package http

import (
	"net/url"
	"strings"
)

// Header is a single name/value pair. Requests keep headers as an
// ordered slice so they are applied in the order given on the command
// line, repeats included.
type Header struct {
	Key   string
	Value string
}

// ParseHeader splits a KEY=VALUE token at the first `=`. A token
// without `=` is a parse error.
func ParseHeader(s string) (Header, error) {
	pos := strings.Index(s, "=")
	if pos < 0 {
		return Header{}, parseErrorf("invalid KEY=VALUE: no `=` found in %q", s)
	}
	return Header{Key: s[:pos], Value: s[pos+1:]}, nil
}

// Request describes the one outgoing request: built once from
// command-line input, consumed once by a backend.
type Request struct {
	Method  string
	URL     *url.URL
	Headers []Header
	Body    BodySource
}

func NewRequest(method, rawURL string) (*Request, error) {
	u, err := ParseURL(rawURL)
	if err != nil {
		return nil, err
	}
	return &Request{Method: method, URL: u}, nil
}

func (r *Request) AddHeader(key, value string) *Request {
	r.Headers = append(r.Headers, Header{Key: key, Value: value})
	return r
}

// ParseURL parses and validates a request URL: it must be absolute,
// use http or https and carry a host.
func ParseURL(rawURL string) (*url.URL, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, parseErrorf("invalid URL %q: %v", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, parseErrorf("unsupported URL scheme %q (only http and https are allowed)", u.Scheme)
	}
	if u.Host == "" {
		return nil, parseErrorf("URL %q must have a host", rawURL)
	}
	return u, nil
}
