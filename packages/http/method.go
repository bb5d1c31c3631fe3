package http

import (
	nethttp "net/http"
	"strings"
)

// ParseMethod parses an HTTP verb case-insensitively. The verb set is
// closed; anything outside it is a parse error.
func ParseMethod(s string) (string, error) {
	m := strings.ToUpper(s)
	switch m {
	case nethttp.MethodGet,
		nethttp.MethodHead,
		nethttp.MethodPost,
		nethttp.MethodPut,
		nethttp.MethodPatch,
		nethttp.MethodDelete,
		nethttp.MethodConnect,
		nethttp.MethodOptions,
		nethttp.MethodTrace:
		return m, nil
	}
	return "", parseErrorf("unrecognized method %q", s)
}
