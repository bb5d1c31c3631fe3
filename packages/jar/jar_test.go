package jar

import (
	"encoding/json"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jarPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "cookies.ndjson")
}

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestOpen_MissingFileIsEmptyJar(t *testing.T) {
	j, err := Open(jarPath(t))
	require.NoError(t, err)
	assert.Zero(t, j.Len())
}

func TestJar_PersistsExpiringCookies(t *testing.T) {
	path := jarPath(t)
	u := mustURL(t, "http://example.com/")

	j, err := Open(path)
	require.NoError(t, err)
	j.SetCookies(u, []*http.Cookie{
		{Name: "keep", Value: "yes", MaxAge: 3600},
		{Name: "session", Value: "gone"},
	})

	// both usable within this invocation
	names := map[string]string{}
	for _, c := range j.Cookies(u) {
		names[c.Name] = c.Value
	}
	assert.Equal(t, map[string]string{"keep": "yes", "session": "gone"}, names)

	require.NoError(t, j.Save())

	// only the expiring cookie survives a reload
	reloaded, err := Open(path)
	require.NoError(t, err)
	require.Equal(t, 1, reloaded.Len())
	cookies := reloaded.Cookies(u)
	require.Len(t, cookies, 1)
	assert.Equal(t, "keep", cookies[0].Name)
	assert.Equal(t, "yes", cookies[0].Value)
}

func TestJar_FileIsNewlineDelimitedJSON(t *testing.T) {
	path := jarPath(t)
	u := mustURL(t, "http://example.com/")

	j, err := Open(path)
	require.NoError(t, err)
	j.SetCookies(u, []*http.Cookie{
		{Name: "a", Value: "1", MaxAge: 60},
		{Name: "b", Value: "2", Expires: time.Now().Add(time.Hour)},
	})
	require.NoError(t, j.Save())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		var e map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &e))
		assert.Contains(t, e, "name")
		assert.Contains(t, e, "expires")
		assert.Equal(t, "example.com", e["domain"])
	}
}

func TestJar_MaxAgeZeroEvicts(t *testing.T) {
	path := jarPath(t)
	u := mustURL(t, "http://example.com/")

	j, err := Open(path)
	require.NoError(t, err)
	j.SetCookies(u, []*http.Cookie{{Name: "k", Value: "v", MaxAge: 3600}})
	require.Equal(t, 1, j.Len())

	j.SetCookies(u, []*http.Cookie{{Name: "k", Value: "", MaxAge: -1}})
	assert.Zero(t, j.Len())

	require.NoError(t, j.Save())
	reloaded, err := Open(path)
	require.NoError(t, err)
	assert.Zero(t, reloaded.Len())
}

func TestJar_PastExpiresNotPersisted(t *testing.T) {
	j, err := Open(jarPath(t))
	require.NoError(t, err)
	j.SetCookies(mustURL(t, "http://example.com/"), []*http.Cookie{
		{Name: "old", Value: "x", Expires: time.Now().Add(-time.Hour)},
	})
	assert.Zero(t, j.Len())
}

func TestJar_ExpiredEntriesDroppedOnLoad(t *testing.T) {
	path := jarPath(t)
	entries := []entry{
		{Name: "live", Value: "1", Domain: "example.com", Path: "/", Expires: time.Now().Add(time.Hour)},
		{Name: "dead", Value: "2", Domain: "example.com", Path: "/", Expires: time.Now().Add(-time.Hour)},
	}
	var b strings.Builder
	enc := json.NewEncoder(&b)
	for _, e := range entries {
		require.NoError(t, enc.Encode(e))
	}
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o600))

	j, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, 1, j.Len())
	cookies := j.Cookies(mustURL(t, "http://example.com/"))
	require.Len(t, cookies, 1)
	assert.Equal(t, "live", cookies[0].Name)
}

func TestJar_CookiesMatchByPath(t *testing.T) {
	j, err := Open(jarPath(t))
	require.NoError(t, err)
	u := mustURL(t, "http://example.com/admin/panel")
	j.SetCookies(u, []*http.Cookie{{Name: "scoped", Value: "v", Path: "/admin", MaxAge: 60}})

	assert.Len(t, j.Cookies(mustURL(t, "http://example.com/admin/other")), 1)
	assert.Empty(t, j.Cookies(mustURL(t, "http://example.com/public")))
}

func TestJar_SaveCreatesFile(t *testing.T) {
	path := jarPath(t)
	j, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, j.Save())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestOpen_RejectsMalformedFile(t *testing.T) {
	path := jarPath(t)
	require.NoError(t, os.WriteFile(path, []byte("not json\n"), 0o600))

	_, err := Open(path)
	assert.Error(t, err)
}
