package http

import "strings"

// Backend selects one of the interchangeable client implementations.
// Chosen once at startup, immutable afterwards.
type Backend int

const (
	BackendH1 Backend = iota
	BackendCurl
	BackendHyper
)

// ParseBackend maps a backend name (or documented alias) to a Backend.
func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(s) {
	case "h1", "async-h1":
		return BackendH1, nil
	case "curl", "isahc":
		return BackendCurl, nil
	case "hyper":
		return BackendHyper, nil
	}
	return 0, parseErrorf("unrecognized backend %q (options: h1, curl, hyper)", s)
}

func (b Backend) String() string {
	switch b {
	case BackendH1:
		return "h1"
	case BackendCurl:
		return "curl"
	case BackendHyper:
		return "hyper"
	}
	return "unknown"
}

// CanStream reports whether the backend can send a body of unknown
// length. h1 buffers everything before sending.
func (b Backend) CanStream() bool {
	return b != BackendH1
}

// New constructs the client for a backend.
func New(b Backend, opts Options) Doer {
	switch b {
	case BackendCurl:
		return NewCurlClient(opts)
	case BackendHyper:
		return NewHyperClient(opts)
	default:
		return NewH1Client(opts)
	}
}
