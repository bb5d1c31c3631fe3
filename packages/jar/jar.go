// Package jar persists cookies across invocations. Matching, host and
// path rules are delegated to net/http/cookiejar with the public
// suffix list; this package only adds the file format: one JSON object
// per line, holding exactly the cookies that carry an explicit
// expiration. Session cookies are never written.
package jar

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/publicsuffix"
)

type entry struct {
	Name     string    `json:"name"`
	Value    string    `json:"value"`
	Domain   string    `json:"domain"`
	Path     string    `json:"path"`
	Expires  time.Time `json:"expires"`
	Secure   bool      `json:"secure,omitempty"`
	HttpOnly bool      `json:"http_only,omitempty"`
}

func (e entry) key() string {
	return e.Domain + ";" + e.Path + ";" + e.Name
}

func (e entry) expired(now time.Time) bool {
	return !e.Expires.After(now)
}

// Jar implements http.CookieJar on top of an in-memory cookiejar.Jar
// while tracking the expiring cookies that Save writes back to disk.
type Jar struct {
	path  string
	inner *cookiejar.Jar

	mu      sync.Mutex
	entries map[string]entry
}

// Open loads the jar file at path. A missing file is an empty jar;
// expired entries are dropped on load.
func Open(path string) (*Jar, error) {
	inner, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, err
	}
	j := &Jar{path: path, inner: inner, entries: make(map[string]entry)}

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return j, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	now := time.Now()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var e entry
		if err := json.Unmarshal(line, &e); err != nil {
			return nil, fmt.Errorf("cookie jar %s: %w", path, err)
		}
		if e.expired(now) {
			continue
		}
		j.entries[e.key()] = e
		j.inner.SetCookies(e.url(), []*http.Cookie{{
			Name:     e.Name,
			Value:    e.Value,
			Domain:   e.Domain,
			Path:     e.Path,
			Expires:  e.Expires,
			Secure:   e.Secure,
			HttpOnly: e.HttpOnly,
		}})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cookie jar %s: %w", path, err)
	}
	return j, nil
}

// url reconstructs a request URL the entry could have been set on, so
// the inner jar files it under the right host.
func (e entry) url() *url.URL {
	scheme := "http"
	if e.Secure {
		scheme = "https"
	}
	path := e.Path
	if path == "" {
		path = "/"
	}
	return &url.URL{Scheme: scheme, Host: e.Domain, Path: path}
}

func (j *Jar) Cookies(u *url.URL) []*http.Cookie {
	return j.inner.Cookies(u)
}

// SetCookies forwards to the inner jar and records the cookies that
// carry an explicit Max-Age or Expires. Max-Age=0 (and a past Expires)
// evicts a previously persisted cookie.
func (j *Jar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.inner.SetCookies(u, cookies)

	now := time.Now()
	j.mu.Lock()
	defer j.mu.Unlock()
	for _, c := range cookies {
		e := entry{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			Secure:   c.Secure,
			HttpOnly: c.HttpOnly,
		}
		// a leading dot in the Domain attribute is legal on the wire
		// but not usable as a host
		e.Domain = strings.TrimPrefix(e.Domain, ".")
		if e.Domain == "" {
			e.Domain = u.Hostname()
		}
		if e.Path == "" {
			e.Path = "/"
		}

		switch {
		case c.MaxAge > 0:
			e.Expires = now.Add(time.Duration(c.MaxAge) * time.Second)
		case c.MaxAge < 0:
			delete(j.entries, e.key())
			continue
		case !c.Expires.IsZero():
			e.Expires = c.Expires
		default:
			// session cookie: usable for this invocation, never persisted
			continue
		}

		if e.expired(now) {
			delete(j.entries, e.key())
			continue
		}
		j.entries[e.key()] = e
	}
}

// Save writes the persistent cookies back to the jar file, atomically,
// creating it if absent.
func (j *Jar) Save() error {
	j.mu.Lock()
	entries := make([]entry, 0, len(j.entries))
	now := time.Now()
	for _, e := range j.entries {
		if !e.expired(now) {
			entries = append(entries, e)
		}
	}
	j.mu.Unlock()

	dir := filepath.Dir(j.path)
	tmp := filepath.Join(dir, "."+filepath.Base(j.path)+"."+uuid.NewString()+".tmp")
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for _, e := range entries {
		if err := enc.Encode(e); err != nil {
			f.Close()
			os.Remove(tmp)
			return err
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, j.path)
}

// Len reports how many cookies would be persisted by Save.
func (j *Jar) Len() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.entries)
}
