// Package geocode resolves free-text addresses through the Google Geocoding API
// and derives a bounding box from the best match's viewport.
package geocode

import (
	"context"

	"github.com/sells-group/parcel-cli/internal/fetcher"
)

// DefaultBaseURL is the Google Geocoding API JSON endpoint.
const DefaultBaseURL = "https://maps.googleapis.com/maps/api/geocode/json"

// Client geocodes addresses.
type Client interface {
	// Geocode looks up a single free-text address and returns the raw
	// provider response body.
	Geocode(ctx context.Context, address string) ([]byte, error)
}

// Option configures the client.
type Option func(*googleClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *googleClient) {
		if url != "" {
			c.baseURL = url
		}
	}
}

// NewClient creates a Google Geocoding client that issues requests through f.
func NewClient(apiKey string, f fetcher.Fetcher, opts ...Option) Client {
	c := &googleClient{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		fetcher: f,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}
