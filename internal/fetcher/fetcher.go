package fetcher

import "context"

// Fetcher defines the interface for retrieving remote documents.
type Fetcher interface {
	// Get issues a GET for rawURL and returns the full response body.
	// op labels the calling stage in returned failures and log lines.
	Get(ctx context.Context, op, rawURL string) ([]byte, error)
}
