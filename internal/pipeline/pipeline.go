// Package pipeline runs the address-to-parcels lookup: geocode the address,
// take the viewport as a bounding box, query parcels inside it, persist the
// response.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sells-group/parcel-cli/internal/failure"
	"github.com/sells-group/parcel-cli/internal/model"
	"github.com/sells-group/parcel-cli/internal/output"
	"github.com/sells-group/parcel-cli/pkg/geocode"
	"github.com/sells-group/parcel-cli/pkg/parcels"
)

// Pipeline runs each stage in order and stops at the first failure.
type Pipeline struct {
	geocoder   geocode.Client
	parcels    parcels.Client
	writer     output.Writer
	outputPath string
	progress   io.Writer
}

// Result describes a completed run.
type Result struct {
	RunID       string            `json:"run_id"`
	Address     string            `json:"address"`
	BoundingBox model.BoundingBox `json:"bounding_box"`
	OutputPath  string            `json:"output_path"`
	Bytes       int               `json:"bytes"`
}

// New creates a Pipeline. Progress lines are printed to progress (nil discards
// them); an empty outputPath means output.DefaultPath.
func New(
	geocoder geocode.Client,
	parcelsClient parcels.Client,
	writer output.Writer,
	outputPath string,
	progress io.Writer,
) *Pipeline {
	if outputPath == "" {
		outputPath = output.DefaultPath
	}
	if progress == nil {
		progress = io.Discard
	}
	return &Pipeline{
		geocoder:   geocoder,
		parcels:    parcelsClient,
		writer:     writer,
		outputPath: outputPath,
		progress:   progress,
	}
}

// Run looks up parcels around address and writes them to the output path.
// The parcel request is only issued after geocoding has fully succeeded.
func (p *Pipeline) Run(ctx context.Context, address string) (*Result, error) {
	runID := uuid.NewString()
	log := zap.L().With(zap.String("run_id", runID))
	log.Info("pipeline: starting", zap.String("address", address))

	bbox, err := p.locate(ctx, log, address)
	if err != nil {
		return nil, p.fail(log, err)
	}

	p.say("Sending request to VCGI API...")
	body, err := p.parcels.Query(ctx, bbox)
	if err != nil {
		return nil, p.fail(log, err)
	}
	p.say("Got response.")

	if err := p.writer.Write(p.outputPath, body); err != nil {
		return nil, p.fail(log, err)
	}
	p.say(fmt.Sprintf("Parcels written to %s!", p.outputPath))

	log.Info("pipeline: complete",
		zap.String("output", p.outputPath),
		zap.Int("bytes", len(body)),
	)

	return &Result{
		RunID:       runID,
		Address:     address,
		BoundingBox: bbox,
		OutputPath:  p.outputPath,
		Bytes:       len(body),
	}, nil
}

func (p *Pipeline) say(line string) {
	_, _ = fmt.Fprintln(p.progress, line)
}

func (p *Pipeline) fail(log *zap.Logger, err error) error {
	log.Debug("pipeline: stopped",
		zap.String("kind", failure.KindOf(err).String()),
		zap.Error(err),
	)
	return err
}
