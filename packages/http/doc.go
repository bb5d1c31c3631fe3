// Package http builds the single outgoing request and sends it through
// one of three interchangeable client backends:
//   - h1: net/http restricted to HTTP/1.1, buffered bodies only
//   - curl: fasthttp, streams request bodies
//   - hyper: net/http with HTTP/2 enabled on the transport
//
// All backends honor ordered headers, an optional timeout, optional
// insecure TLS and an optional cookie jar.
package http
