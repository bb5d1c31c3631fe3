// Package output renders the response. With a terminal attached the
// body is buffered and shown as three labeled, syntax-highlighted
// sections (headers, status, body); with output redirected the body
// bytes are copied through verbatim. Terminal detection is the only
// branch point.
package output
