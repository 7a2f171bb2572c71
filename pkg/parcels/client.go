// Package parcels queries the Vermont standardized parcel FeatureServer (VCGI)
// for features intersecting an envelope.
package parcels

import (
	"context"
	"net/url"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/parcel-cli/internal/failure"
	"github.com/sells-group/parcel-cli/internal/fetcher"
	"github.com/sells-group/parcel-cli/internal/model"
)

// DefaultBaseURL is the VCGI standardized parcels layer query endpoint.
const DefaultBaseURL = "https://services1.arcgis.com/BkFxaEFNwHqX3tAw/arcgis/rest/services/" +
	"FS_VCGI_OPENDATA_Cadastral_VTPARCELS_poly_standardized_parcels_SP_v1/FeatureServer/0/query"

const op = "parcels"

// Client performs parcel feature queries.
type Client interface {
	// Query returns the raw FeatureServer response for parcels intersecting bbox.
	Query(ctx context.Context, bbox model.BoundingBox) ([]byte, error)
}

// Option configures the client.
type Option func(*featureClient)

// WithBaseURL overrides the default FeatureServer query URL.
func WithBaseURL(url string) Option {
	return func(c *featureClient) {
		if url != "" {
			c.baseURL = url
		}
	}
}

type featureClient struct {
	baseURL string
	fetcher fetcher.Fetcher
}

// NewClient creates a parcel FeatureServer client that issues requests through f.
func NewClient(f fetcher.Fetcher, opts ...Option) Client {
	c := &featureClient{
		baseURL: DefaultBaseURL,
		fetcher: f,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Query implements Client.
func (c *featureClient) Query(ctx context.Context, bbox model.BoundingBox) ([]byte, error) {
	reqURL, err := BuildURL(c.baseURL, bbox)
	if err != nil {
		return nil, err
	}

	zap.L().Debug("parcels: sending request", zap.String("geometry", bbox.Join()))

	body, err := c.fetcher.Get(ctx, op, reqURL)
	if err != nil {
		return nil, err
	}

	zap.L().Debug("parcels: response received", zap.Int("bytes", len(body)))
	return body, nil
}

// QueryParams returns the envelope-intersection query for bbox, in WGS84 in
// and out.
func QueryParams(bbox model.BoundingBox) url.Values {
	return url.Values{
		"where":        {"1=1"},
		"outFields":    {"*"},
		"geometry":     {bbox.Join()},
		"geometryType": {"esriGeometryEnvelope"},
		"inSR":         {"4326"},
		"spatialRel":   {"esriSpatialRelIntersects"},
		"outSR":        {"4326"},
		"f":            {"json"},
	}
}

// BuildURL replaces base's query string with QueryParams(bbox).
func BuildURL(base string, bbox model.BoundingBox) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", failure.New(failure.KindURL, op, eris.Wrap(err, "parse base url"))
	}
	if u.Scheme == "" || u.Host == "" {
		return "", failure.New(failure.KindURL, op, eris.Errorf("base url %q is not absolute", base))
	}

	u.RawQuery = QueryParams(bbox).Encode()
	return u.String(), nil
}
