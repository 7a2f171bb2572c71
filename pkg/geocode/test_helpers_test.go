package geocode

import (
	"net/http"
	"strings"
	"time"

	"github.com/sells-group/parcel-cli/internal/fetcher"
)

// newTestFetcher creates a fetcher whose requests all go to testServerURL.
func newTestFetcher(testServerURL string) *fetcher.HTTPFetcher {
	return fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		Timeout:   5 * time.Second,
		RateLimit: 100,
		Transport: &rewriteTransport{
			base:         http.DefaultTransport,
			testServer:   testServerURL,
			targetPrefix: DefaultBaseURL,
		},
	})
}

// rewriteTransport redirects requests matching targetPrefix to a test server.
type rewriteTransport struct {
	base         http.RoundTripper
	testServer   string
	targetPrefix string
}

func (t *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	origURL := req.URL.String()
	if strings.HasPrefix(origURL, t.targetPrefix) {
		suffix := origURL[len(t.targetPrefix):]
		newURL := t.testServer + suffix
		newReq := req.Clone(req.Context())
		parsed, err := req.URL.Parse(newURL)
		if err != nil {
			return nil, err
		}
		newReq.URL = parsed
		newReq.Host = parsed.Host
		return t.base.RoundTrip(newReq)
	}
	return t.base.RoundTrip(req)
}

const vermontResponse = `{
	"status": "OK",
	"results": [{
		"formatted_address": "133 State St, Montpelier, VT 05633, USA",
		"geometry": {
			"location": {"lat": 44.2623, "lng": -72.5805},
			"location_type": "ROOFTOP",
			"viewport": {
				"northeast": {"lat": 44.2636489802915, "lng": -72.5791510197085},
				"southwest": {"lat": 44.2609510197085, "lng": -72.5818489802915}
			}
		}
	}]
}`
