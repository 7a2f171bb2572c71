package fetcher

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

// mustParse parses rawURL or fails the test.
func mustParse(t *testing.T, rawURL string) *url.URL {
	t.Helper()
	u, err := url.Parse(rawURL)
	require.NoError(t, err)
	return u
}
