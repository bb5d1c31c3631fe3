package http

import "fmt"

// ParseError marks failures that happen while interpreting command-line
// input (method, URL, header, backend name). The CLI maps these to a
// usage exit code; everything else is treated as an I/O or transport
// failure.
type ParseError struct {
	Msg string
}

func (e *ParseError) Error() string {
	return e.Msg
}

func parseErrorf(format string, args ...any) *ParseError {
	return &ParseError{Msg: fmt.Sprintf(format, args...)}
}
