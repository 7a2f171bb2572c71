package geocode

import (
	"context"
	"net/url"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/parcel-cli/internal/failure"
	"github.com/sells-group/parcel-cli/internal/fetcher"
)

const op = "geocode"

type googleClient struct {
	apiKey  string
	baseURL string
	fetcher fetcher.Fetcher
}

// Geocode implements Client.
func (g *googleClient) Geocode(ctx context.Context, address string) ([]byte, error) {
	if g.apiKey == "" {
		return nil, failure.New(failure.KindConfig, op, eris.New("google api key not configured"))
	}

	reqURL, err := BuildURL(g.baseURL, address, g.apiKey)
	if err != nil {
		return nil, err
	}

	zap.L().Debug("geocode: sending request", zap.String("address", address))

	body, err := g.fetcher.Get(ctx, op, reqURL)
	if err != nil {
		return nil, err
	}

	zap.L().Debug("geocode: response received", zap.Int("bytes", len(body)))
	return body, nil
}

// BuildURL adds the address and key query parameters to base.
func BuildURL(base, address, key string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", failure.New(failure.KindURL, op, eris.Wrap(err, "parse base url"))
	}
	if u.Scheme == "" || u.Host == "" {
		return "", failure.New(failure.KindURL, op, eris.Errorf("base url %q is not absolute", base))
	}

	params := u.Query()
	params.Set("address", address)
	params.Set("key", key)
	u.RawQuery = params.Encode()

	return u.String(), nil
}
