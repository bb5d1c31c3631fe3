package http

import (
	"io"
	"mime"
	nethttp "net/http"
	"strconv"
	"strings"
)

// Response is the result of one request: consumed immediately by the
// renderer, then discarded. Body is a stream so piped output can copy
// it without buffering.
type Response struct {
	Proto      string
	Status     string
	StatusCode int
	Header     nethttp.Header
	Body       io.ReadCloser
}

// Reason returns the reason phrase for the status line.
func (r *Response) Reason() string {
	if rest, ok := strings.CutPrefix(r.Status, strconv.Itoa(r.StatusCode)+" "); ok {
		return rest
	}
	return nethttp.StatusText(r.StatusCode)
}

// ContentType returns the response media type with any parameters
// (charset etc.) stripped.
func (r *Response) ContentType() string {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return ct
	}
	return mt
}

func (r *Response) IsJSON() bool {
	mt := r.ContentType()
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}

func (r *Response) Close() error {
	if r.Body == nil {
		return nil
	}
	return r.Body.Close()
}
