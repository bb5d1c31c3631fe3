package http

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBackend_Aliases(t *testing.T) {
	cases := map[string]Backend{
		"h1":       BackendH1,
		"async-h1": BackendH1,
		"H1":       BackendH1,
		"curl":     BackendCurl,
		"isahc":    BackendCurl,
		"hyper":    BackendHyper,
		"Hyper":    BackendHyper,
	}
	for in, want := range cases {
		got, err := ParseBackend(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestParseBackend_RejectsUnknown(t *testing.T) {
	for _, in := range []string{"", "h2", "surf", "reqwest"} {
		_, err := ParseBackend(in)
		require.Error(t, err, in)
		var parseErr *ParseError
		assert.ErrorAs(t, err, &parseErr)
	}
}

func TestBackend_CanStream(t *testing.T) {
	assert.False(t, BackendH1.CanStream())
	assert.True(t, BackendCurl.CanStream())
	assert.True(t, BackendHyper.CanStream())
}

func TestNew_DispatchesByBackend(t *testing.T) {
	assert.IsType(t, &H1Client{}, New(BackendH1, Options{}))
	assert.IsType(t, &CurlClient{}, New(BackendCurl, Options{}))
	assert.IsType(t, &HyperClient{}, New(BackendHyper, Options{}))
}
