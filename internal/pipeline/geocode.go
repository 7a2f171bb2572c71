package pipeline

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/parcel-cli/internal/model"
	"github.com/sells-group/parcel-cli/pkg/geocode"
)

// locate geocodes address and returns the first result's viewport.
func (p *Pipeline) locate(ctx context.Context, log *zap.Logger, address string) (model.BoundingBox, error) {
	p.say("Sending request to Google Geocoding API...")
	body, err := p.geocoder.Geocode(ctx, address)
	if err != nil {
		return model.BoundingBox{}, err
	}
	p.say("Got response.")

	bbox, err := geocode.ExtractBoundingBox(body)
	if err != nil {
		return model.BoundingBox{}, err
	}

	fields := []zap.Field{zap.String("geometry", bbox.Join())}
	if b, boundsErr := bbox.Bounds(); boundsErr == nil {
		fields = append(fields,
			zap.Float64("center_lng", (b.Min(0)+b.Max(0))/2),
			zap.Float64("center_lat", (b.Min(1)+b.Max(1))/2),
		)
	}
	log.Info("pipeline: bounding box resolved", fields...)

	return bbox, nil
}
