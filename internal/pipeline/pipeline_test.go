package pipeline

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/parcel-cli/internal/failure"
	"github.com/sells-group/parcel-cli/internal/model"
	"github.com/sells-group/parcel-cli/internal/output"
	geocodemocks "github.com/sells-group/parcel-cli/pkg/geocode/mocks"
	parcelsmocks "github.com/sells-group/parcel-cli/pkg/parcels/mocks"
)

const geocodeBody = `{"results":[{"geometry":{"viewport":{"southwest":{"lat":44.0,"lng":-73.2},"northeast":{"lat":44.1,"lng":-73.1}}}}]}`

const parcelBody = `{"displayFieldName":"","features":[{"attributes":{"OBJECTID":1,"SPAN":"123-456-78901"}}]}`

func TestPipeline_Run_FullFlow(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	var progress bytes.Buffer

	gc := geocodemocks.NewMockClient(t)
	gc.On("Geocode", ctx, "133 State St, Montpelier VT").Return([]byte(geocodeBody), nil).Once()

	want := model.BoundingBox{"-73.2", "44.0", "-73.1", "44.1"}
	pc := parcelsmocks.NewMockClient(t)
	pc.On("Query", ctx, want).Return([]byte(parcelBody), nil).Once()

	p := New(gc, pc, output.NewFileWriter(fs), "", &progress)

	result, err := p.Run(ctx, "133 State St, Montpelier VT")
	require.NoError(t, err)
	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, want, result.BoundingBox)
	assert.Equal(t, output.DefaultPath, result.OutputPath)
	assert.Equal(t, len(parcelBody), result.Bytes)

	got, err := afero.ReadFile(fs, output.DefaultPath)
	require.NoError(t, err)
	assert.Equal(t, parcelBody, string(got))

	assert.Equal(t, "Sending request to Google Geocoding API...\n"+
		"Got response.\n"+
		"Sending request to VCGI API...\n"+
		"Got response.\n"+
		"Parcels written to parcels.geojson!\n", progress.String())
}

func TestPipeline_Run_CustomOutputPath(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()

	gc := geocodemocks.NewMockClient(t)
	gc.On("Geocode", ctx, mock.Anything).Return([]byte(geocodeBody), nil)
	pc := parcelsmocks.NewMockClient(t)
	pc.On("Query", ctx, mock.Anything).Return([]byte(parcelBody), nil)

	p := New(gc, pc, output.NewFileWriter(fs), "out/vt.json", nil)

	result, err := p.Run(ctx, "addr")
	require.NoError(t, err)
	assert.Equal(t, "out/vt.json", result.OutputPath)

	exists, err := afero.Exists(fs, "out/vt.json")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestPipeline_Run_GeocodeTransportError(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()

	gc := geocodemocks.NewMockClient(t)
	gc.On("Geocode", ctx, "addr").
		Return(nil, failure.New(failure.KindTransport, "geocode", errors.New("dial tcp: connection refused")))
	pc := parcelsmocks.NewMockClient(t)

	p := New(gc, pc, output.NewFileWriter(fs), "", nil)

	result, err := p.Run(ctx, "addr")
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, failure.KindTransport, failure.KindOf(err))

	pc.AssertNotCalled(t, "Query", mock.Anything, mock.Anything)
	exists, _ := afero.Exists(fs, output.DefaultPath)
	assert.False(t, exists, "no output file after a geocode failure")
}

func TestPipeline_Run_NoResults(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()

	gc := geocodemocks.NewMockClient(t)
	gc.On("Geocode", ctx, "nowhere").Return([]byte(`{"results":[],"status":"ZERO_RESULTS"}`), nil)
	pc := parcelsmocks.NewMockClient(t)

	p := New(gc, pc, output.NewFileWriter(fs), "", nil)

	_, err := p.Run(ctx, "nowhere")
	require.Error(t, err)
	assert.Equal(t, failure.KindNoResults, failure.KindOf(err))
	pc.AssertNotCalled(t, "Query", mock.Anything, mock.Anything)
}

func TestPipeline_Run_ProviderError(t *testing.T) {
	ctx := context.Background()

	gc := geocodemocks.NewMockClient(t)
	gc.On("Geocode", ctx, "addr").
		Return([]byte(`{"error_message":"You must use an API key","results":[],"status":"REQUEST_DENIED"}`), nil)
	pc := parcelsmocks.NewMockClient(t)

	p := New(gc, pc, output.NewFileWriter(afero.NewMemMapFs()), "", nil)

	_, err := p.Run(ctx, "addr")
	require.Error(t, err)
	assert.Equal(t, failure.KindProvider, failure.KindOf(err))
	pc.AssertNotCalled(t, "Query", mock.Anything, mock.Anything)
}

func TestPipeline_Run_ParcelStatusError(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()

	gc := geocodemocks.NewMockClient(t)
	gc.On("Geocode", ctx, "addr").Return([]byte(geocodeBody), nil)
	pc := parcelsmocks.NewMockClient(t)
	pc.On("Query", ctx, mock.Anything).Return(nil, failure.Status("parcels", 500, nil))

	p := New(gc, pc, output.NewFileWriter(fs), "", nil)

	_, err := p.Run(ctx, "addr")
	require.Error(t, err)
	assert.Equal(t, failure.KindStatus, failure.KindOf(err))

	exists, _ := afero.Exists(fs, output.DefaultPath)
	assert.False(t, exists)
}

func TestPipeline_Run_WriteErrorSurfaced(t *testing.T) {
	ctx := context.Background()
	var progress bytes.Buffer

	gc := geocodemocks.NewMockClient(t)
	gc.On("Geocode", ctx, "addr").Return([]byte(geocodeBody), nil)
	pc := parcelsmocks.NewMockClient(t)
	pc.On("Query", ctx, mock.Anything).Return([]byte(parcelBody), nil)

	ro := afero.NewReadOnlyFs(afero.NewMemMapFs())
	p := New(gc, pc, output.NewFileWriter(ro), "", &progress)

	_, err := p.Run(ctx, "addr")
	require.Error(t, err)
	assert.Equal(t, failure.KindWrite, failure.KindOf(err))
	assert.NotContains(t, progress.String(), "Parcels written")
}
