package fetcher

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/parcel-cli/internal/failure"
)

// maxErrorBody caps how much of a non-success response is echoed into the error.
const maxErrorBody = 512

// HTTPOptions configures the HTTP fetcher.
type HTTPOptions struct {
	UserAgent    string
	Timeout      time.Duration
	RateLimit    rate.Limit
	RateLimiters map[string]*rate.Limiter
	Transport    http.RoundTripper
}

// HTTPFetcher implements Fetcher using net/http with per-host rate limiting.
// Requests are never retried.
type HTTPFetcher struct {
	client   *http.Client
	opts     HTTPOptions
	limiters map[string]*rate.Limiter
	fallback *rate.Limiter
}

// DefaultRateLimiters returns the default per-host rate limiters.
func DefaultRateLimiters() map[string]*rate.Limiter {
	return map[string]*rate.Limiter{
		"maps.googleapis.com":  rate.NewLimiter(10, 10),
		"services1.arcgis.com": rate.NewLimiter(5, 5),
	}
}

// NewHTTPFetcher creates a new HTTPFetcher with the given options.
func NewHTTPFetcher(opts HTTPOptions) *HTTPFetcher {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "parcel-cli/1.0"
	}
	if opts.RateLimit == 0 {
		opts.RateLimit = 20
	}
	limiters := DefaultRateLimiters()
	for k, v := range opts.RateLimiters {
		limiters[k] = v
	}
	return &HTTPFetcher{
		client: &http.Client{
			Timeout:   opts.Timeout,
			Transport: opts.Transport,
		},
		opts:     opts,
		limiters: limiters,
		fallback: rate.NewLimiter(opts.RateLimit, max(1, int(opts.RateLimit))),
	}
}

func (f *HTTPFetcher) limiterFor(u *url.URL) *rate.Limiter {
	if lim, ok := f.limiters[u.Host]; ok {
		return lim
	}
	return f.fallback
}

// Get fetches rawURL and returns the response body. Any non-2xx status is a failure.
func (f *HTTPFetcher) Get(ctx context.Context, op, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, failure.New(failure.KindURL, op, eris.Wrap(err, "parse url"))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, failure.New(failure.KindURL, op, eris.Wrap(err, "create request"))
	}
	req.Header.Set("User-Agent", f.opts.UserAgent)

	if err := f.limiterFor(u).Wait(ctx); err != nil {
		return nil, failure.New(failure.KindTransport, op, eris.Wrap(err, "rate limiter wait"))
	}

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		zap.L().Warn("http request failed",
			zap.String("op", op),
			zap.String("host", u.Host),
			zap.Bool("transient", failure.IsTransient(err)),
			zap.Error(err),
		)
		return nil, failure.New(failure.KindTransport, op, eris.Wrap(err, "send request"))
	}
	defer resp.Body.Close() //nolint:errcheck

	zap.L().Debug("http response",
		zap.String("op", op),
		zap.String("host", u.Host),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, failure.Status(op, resp.StatusCode, eris.Errorf("from %s: %s", u.Host, string(snippet)))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, failure.New(failure.KindBody, op, eris.Wrap(err, "read body"))
	}

	return body, nil
}
