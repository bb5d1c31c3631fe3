package http

import (
	"io"
	"os"
	"strings"
)

// BodySource names where the request body comes from. Precedence when
// several are set: file path, then inline string, then piped stdin.
// Stdin is only a candidate; it must be nil when standard input is a
// terminal.
type BodySource struct {
	FilePath  string
	Inline    string
	HasInline bool
	Stdin     io.Reader
}

// Empty reports whether the request carries no body at all.
func (b BodySource) Empty() bool {
	return b.FilePath == "" && !b.HasInline && b.Stdin == nil
}

// Open returns a streaming reader for the body and its length, or -1
// when the length is unknown (piped stdin). A nil reader means no
// body. The caller owns closing the reader.
func (b BodySource) Open() (io.ReadCloser, int64, error) {
	switch {
	case b.FilePath != "":
		f, err := os.Open(b.FilePath)
		if err != nil {
			return nil, 0, err
		}
		info, err := f.Stat()
		if err != nil {
			f.Close()
			return nil, 0, err
		}
		return f, info.Size(), nil
	case b.HasInline:
		return io.NopCloser(strings.NewReader(b.Inline)), int64(len(b.Inline)), nil
	case b.Stdin != nil:
		return io.NopCloser(b.Stdin), -1, nil
	}
	return nil, 0, nil
}

// Buffer reads the whole body into memory, for the h1 backend, which
// cannot stream. Returns nil when there is no body.
func (b BodySource) Buffer() ([]byte, error) {
	switch {
	case b.FilePath != "":
		return os.ReadFile(b.FilePath)
	case b.HasInline:
		return []byte(b.Inline), nil
	case b.Stdin != nil:
		return io.ReadAll(b.Stdin)
	}
	return nil, nil
}
