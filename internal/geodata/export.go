package geodata

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/geodata-dev/geojson-viewer/internal/timeutil"
	"github.com/paulmach/orb/geojson"
)

// exportTimeLayout produces the YYYYMMDDTHHMM stamp embedded in the
// download filename.
const exportTimeLayout = "20060102T1504"

// Export combines edited grid rows with the dataset's original geometry and
// top-level members and serializes the result to GeoJSON text. The rows are
// coerced to the original column types first; the geometry column is taken
// from the dataset untouched, never from the grid.
//
// Serialization goes through a temporary file that is removed on every exit
// path. It returns the file content and a download filename of the form
// geojsonviewer-<YYYYMMDDTHHMM>.geojson.
func (d *Dataset) Export(rows []map[string]interface{}, clock timeutil.Clock) (content, filename string, err error) {
	if len(rows) != len(d.fc.Features) {
		return "", "", fmt.Errorf("%w: got %d rows, dataset has %d",
			ErrRowCountMismatch, len(rows), len(d.fc.Features))
	}

	coerced, err := d.CoerceRows(rows)
	if err != nil {
		return "", "", err
	}

	out := geojson.NewFeatureCollection()
	out.ExtraMembers = d.fc.ExtraMembers
	for i, row := range coerced {
		f := geojson.NewFeature(d.fc.Features[i].Geometry)
		f.Properties = row
		out.Append(f)
	}

	data, err := json.Marshal(out)
	if err != nil {
		return "", "", fmt.Errorf("encode feature collection: %w", err)
	}

	tmp, err := os.CreateTemp("", "geojsonviewer-*.geojson")
	if err != nil {
		return "", "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if _, err := tmp.Write(data); err != nil {
		return "", "", fmt.Errorf("write temp file: %w", err)
	}
	raw, err := os.ReadFile(tmp.Name())
	if err != nil {
		return "", "", fmt.Errorf("read temp file back: %w", err)
	}

	if clock == nil {
		clock = timeutil.RealClock{}
	}
	filename = fmt.Sprintf("geojsonviewer-%s.geojson", clock.Now().Format(exportTimeLayout))
	return string(raw), filename, nil
}
