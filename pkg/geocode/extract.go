package geocode

import (
	"github.com/rotisserie/eris"
	"github.com/tidwall/gjson"

	"github.com/sells-group/parcel-cli/internal/failure"
	"github.com/sells-group/parcel-cli/internal/model"
)

// viewportPaths lists the corner fields in xmin, ymin, xmax, ymax order.
var viewportPaths = [4]string{
	"southwest.lng",
	"southwest.lat",
	"northeast.lng",
	"northeast.lat",
}

// ExtractBoundingBox reads the first result's viewport from a Google Geocoding
// response. Coordinates are returned as the literal JSON number text.
//
// A response carrying error_message fails with failure.KindProvider; an empty
// results array fails with failure.KindNoResults.
func ExtractBoundingBox(body []byte) (model.BoundingBox, error) {
	if !gjson.ValidBytes(body) {
		return model.BoundingBox{}, failure.New(failure.KindParse, op, eris.New("response is not valid JSON"))
	}
	doc := gjson.ParseBytes(body)

	status := doc.Get("status").String()
	if msg := doc.Get("error_message"); msg.Exists() {
		if status != "" {
			return model.BoundingBox{}, failure.New(failure.KindProvider, op, eris.Errorf("%s: %s", status, msg.String()))
		}
		return model.BoundingBox{}, failure.New(failure.KindProvider, op, eris.New(msg.String()))
	}

	results := doc.Get("results")
	if !results.IsArray() {
		return model.BoundingBox{}, failure.New(failure.KindParse, op, eris.New("response has no results array"))
	}
	if len(results.Array()) == 0 {
		if status != "" {
			return model.BoundingBox{}, failure.New(failure.KindNoResults, op, eris.Errorf("status %s", status))
		}
		return model.BoundingBox{}, failure.New(failure.KindNoResults, op, nil)
	}

	viewport := results.Get("0.geometry.viewport")
	var box model.BoundingBox
	for i, path := range viewportPaths {
		v := viewport.Get(path)
		if v.Type != gjson.Number {
			return model.BoundingBox{}, failure.New(failure.KindParse, op, eris.Errorf("viewport %s missing or not a number", path))
		}
		box[i] = v.Raw
	}

	return box, nil
}
