package main

import (
	"context"
	"io"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/parcel-cli/internal/config"
	"github.com/sells-group/parcel-cli/internal/fetcher"
	"github.com/sells-group/parcel-cli/internal/output"
	"github.com/sells-group/parcel-cli/internal/pipeline"
	"github.com/sells-group/parcel-cli/pkg/geocode"
	"github.com/sells-group/parcel-cli/pkg/parcels"
)

// runFetch validates c and runs the parcel lookup for address. Nothing is
// sent over the network if the configuration is incomplete.
func runFetch(ctx context.Context, c *config.Config, address string, out io.Writer) (*pipeline.Result, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	f := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		UserAgent: c.HTTP.UserAgent,
		Timeout:   c.HTTP.Timeout(),
		RateLimit: rate.Limit(c.HTTP.RateLimit),
	})

	p := pipeline.New(
		geocode.NewClient(c.Google.APIKey, f, geocode.WithBaseURL(c.Google.BaseURL)),
		parcels.NewClient(f, parcels.WithBaseURL(c.Parcels.BaseURL)),
		output.NewFileWriter(afero.NewOsFs()),
		c.Output.Path,
		out,
	)

	result, err := p.Run(ctx, address)
	if err != nil {
		return nil, err
	}

	zap.L().Info("parcels saved",
		zap.String("run_id", result.RunID),
		zap.String("path", result.OutputPath),
		zap.Int("bytes", result.Bytes),
	)
	return result, nil
}
