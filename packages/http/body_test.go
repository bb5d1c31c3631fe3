package http

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "body.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestBodySource_Empty(t *testing.T) {
	assert.True(t, BodySource{}.Empty())
	assert.False(t, BodySource{FilePath: "x"}.Empty())
	assert.False(t, BodySource{HasInline: true}.Empty())
	assert.False(t, BodySource{Stdin: strings.NewReader("")}.Empty())
}

func TestBodySource_NoBody(t *testing.T) {
	rc, length, err := BodySource{}.Open()
	require.NoError(t, err)
	assert.Nil(t, rc)
	assert.Zero(t, length)

	buf, err := BodySource{}.Buffer()
	require.NoError(t, err)
	assert.Nil(t, buf)
}

func TestBodySource_FileWinsOverInlineAndStdin(t *testing.T) {
	path := writeTempFile(t, "from file")
	src := BodySource{
		FilePath:  path,
		Inline:    "from inline",
		HasInline: true,
		Stdin:     strings.NewReader("from stdin"),
	}

	rc, length, err := src.Open()
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "from file", string(data))
	assert.Equal(t, int64(len("from file")), length)
}

func TestBodySource_InlineWinsOverStdin(t *testing.T) {
	src := BodySource{
		Inline:    "from inline",
		HasInline: true,
		Stdin:     strings.NewReader("from stdin"),
	}

	buf, err := src.Buffer()
	require.NoError(t, err)
	assert.Equal(t, "from inline", string(buf))

	rc, length, err := src.Open()
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "from inline", string(data))
	assert.Equal(t, int64(len("from inline")), length)
}

func TestBodySource_StdinHasUnknownLength(t *testing.T) {
	src := BodySource{Stdin: strings.NewReader("piped")}

	rc, length, err := src.Open()
	require.NoError(t, err)
	defer rc.Close()
	assert.Equal(t, int64(-1), length)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "piped", string(data))
}

func TestBodySource_BufferReadsAllOfStdin(t *testing.T) {
	payload := strings.Repeat("surf ", 4096)
	src := BodySource{Stdin: strings.NewReader(payload)}

	buf, err := src.Buffer()
	require.NoError(t, err)
	assert.Equal(t, payload, string(buf))
}

func TestBodySource_MissingFile(t *testing.T) {
	src := BodySource{FilePath: filepath.Join(t.TempDir(), "nope")}

	_, _, err := src.Open()
	assert.Error(t, err)

	_, err = src.Buffer()
	assert.Error(t, err)
}
