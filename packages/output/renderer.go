package output

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"

	"github.com/abdul-hamid-achik/longboard/packages/http"
)

const (
	ruleWidth      = 60
	highlightStyle = "monokai"
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

type Renderer struct {
	writer   io.Writer
	terminal bool
	noColor  bool
}

type RendererOption func(*Renderer)

func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.noColor {
		color.NoColor = true
	}
	return r
}

func WithWriter(w io.Writer) RendererOption {
	return func(r *Renderer) {
		r.writer = w
	}
}

func WithTerminal(t bool) RendererOption {
	return func(r *Renderer) {
		r.terminal = t
	}
}

func WithNoColor(nc bool) RendererOption {
	return func(r *Renderer) {
		r.noColor = nc
	}
}

// Render consumes and closes the response body. Piped output gets the
// raw bytes; a terminal gets the three pretty-printed sections.
func (r *Renderer) Render(resp *http.Response, u *url.URL) error {
	defer resp.Close()

	if !r.terminal {
		if resp.Body == nil {
			return nil
		}
		_, err := io.Copy(r.writer, resp.Body)
		return err
	}

	var body []byte
	if resp.Body != nil {
		var err error
		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
	}

	if err := r.section("response headers", formatHeaders(resp.Header), "headers.http", "HTTP"); err != nil {
		return err
	}
	statusLine := fmt.Sprintf("%d %s", resp.StatusCode, resp.Reason())
	if err := r.section("status", statusLine, "", ""); err != nil {
		return err
	}

	contentType := resp.ContentType()
	title := "response body"
	if contentType != "" {
		title = fmt.Sprintf("response body (%s)", contentType)
	}
	if resp.IsJSON() && gjson.ValidBytes(body) {
		body = pretty.Pretty(body)
	}
	return r.section(title, string(body), bodyFilename(resp, u), "")
}

// bodyFilename picks the display name that drives language detection:
// body.json for JSON responses, otherwise the base of the URL path.
func bodyFilename(resp *http.Response, u *url.URL) string {
	if resp.IsJSON() {
		return "body.json"
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" || name == "" {
		return "body.txt"
	}
	return name
}

func formatHeaders(header map[string][]string) string {
	keys := make([]string, 0, len(header))
	for k := range header {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		for _, v := range header[k] {
			b.WriteString(k)
			b.WriteString(": ")
			b.WriteString(v)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (r *Renderer) section(title, text, filename, lexerName string) error {
	bold := color.New(color.Bold).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()
	rule := strings.Repeat("─", ruleWidth)

	if _, err := fmt.Fprintf(r.writer, "%s\n%s\n%s\n", faint(rule), bold(title), faint(rule)); err != nil {
		return err
	}
	if err := r.highlight(text, filename, lexerName); err != nil {
		return err
	}
	if !strings.HasSuffix(text, "\n") {
		if _, err := fmt.Fprintln(r.writer); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(r.writer)
	return err
}

func (r *Renderer) highlight(text, filename, lexerName string) error {
	if r.noColor {
		_, err := io.WriteString(r.writer, text)
		return err
	}

	var lexer chroma.Lexer
	if lexerName != "" {
		lexer = lexers.Get(lexerName)
	}
	if lexer == nil && filename != "" {
		lexer = lexers.Match(filename)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, text)
	if err != nil {
		_, werr := io.WriteString(r.writer, text)
		if werr != nil {
			return werr
		}
		return nil
	}
	formatter := formatters.Get("terminal256")
	if err := formatter.Format(r.writer, styles.Get(highlightStyle), iterator); err != nil {
		_, werr := io.WriteString(r.writer, text)
		return werr
	}
	return nil
}

// FormatError prints a fatal error the way the rest of the tool talks:
// a red marker on stderr, one line.
func FormatError(err error) {
	red := color.New(color.FgRed).SprintFunc()
	fmt.Fprintf(os.Stderr, "%s %v\n", red("Error:"), err)
}
