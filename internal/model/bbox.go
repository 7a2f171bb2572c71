package model

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
)

// BoundingBox is a WGS84 envelope in ArcGIS order: xmin, ymin, xmax, ymax.
// Values keep the exact text the geocoder returned so they are forwarded
// without float round-tripping.
type BoundingBox [4]string

// NewBoundingBox builds a box from a viewport's southwest and northeast corners.
func NewBoundingBox(swLng, swLat, neLng, neLat string) BoundingBox {
	return BoundingBox{swLng, swLat, neLng, neLat}
}

// XMin returns the western longitude.
func (b BoundingBox) XMin() string { return b[0] }

// YMin returns the southern latitude.
func (b BoundingBox) YMin() string { return b[1] }

// XMax returns the eastern longitude.
func (b BoundingBox) XMax() string { return b[2] }

// YMax returns the northern latitude.
func (b BoundingBox) YMax() string { return b[3] }

// Join renders the box as "xmin,ymin,xmax,ymax".
func (b BoundingBox) Join() string {
	return strings.Join(b[:], ",")
}

// Bounds parses the box into a go-geom envelope.
func (b BoundingBox) Bounds() (*geom.Bounds, error) {
	var v [4]float64
	for i, s := range b {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, eris.Wrapf(err, "bbox: parse coordinate %d", i)
		}
		v[i] = f
	}
	return geom.NewBounds(geom.XY).Set(v[0], v[1], v[2], v[3]), nil
}
