package geodata

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/geodata-dev/geojson-viewer/internal/timeutil"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() timeutil.Clock {
	return timeutil.FixedClock{Time: time.Date(2022, 10, 1, 12, 34, 0, 0, time.UTC)}
}

func TestExportFilename(t *testing.T) {
	ds, err := ParseDataset([]byte(fixture))
	require.NoError(t, err)

	_, filename, err := ds.Export(ds.Rows(ds.Columns()), fixedClock())
	require.NoError(t, err)
	assert.Equal(t, "geojsonviewer-20221001T1234.geojson", filename)
}

func TestExportRoundTrip(t *testing.T) {
	ds, err := ParseDataset([]byte(fixture))
	require.NoError(t, err)

	// no edits: the export must reproduce every attribute value and every
	// geometry exactly
	content, _, err := ds.Export(ds.Rows(ds.Columns()), fixedClock())
	require.NoError(t, err)

	reloaded, err := ParseDataset([]byte(content))
	require.NoError(t, err)

	cols := ds.Columns()
	if diff := cmp.Diff(ds.Rows(cols), reloaded.Rows(cols)); diff != "" {
		t.Errorf("attribute values changed across round trip (-orig +reloaded):\n%s", diff)
	}

	require.Equal(t, ds.NumRows(), reloaded.NumRows())
	for i := range ds.fc.Features {
		orig, err := json.Marshal(ds.fc.Features[i].Geometry)
		require.NoError(t, err)
		got, err := json.Marshal(reloaded.fc.Features[i].Geometry)
		require.NoError(t, err)
		assert.JSONEq(t, string(orig), string(got), "geometry of row %d", i)
	}
}

func TestExportPreservesCRS(t *testing.T) {
	ds, err := ParseDataset([]byte(fixture))
	require.NoError(t, err)

	content, _, err := ds.Export(ds.Rows(ds.Columns()), fixedClock())
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(content), &doc))
	crs, ok := doc["crs"].(map[string]interface{})
	require.True(t, ok, "crs member should survive the round trip")
	props := crs["properties"].(map[string]interface{})
	assert.Equal(t, "urn:ogc:def:crs:OGC:1.3:CRS84", props["name"])
}

func TestExportAppliesEdits(t *testing.T) {
	ds, err := ParseDataset([]byte(fixture))
	require.NoError(t, err)

	rows := ds.Rows(ds.Columns())
	rows[0]["pop"] = "31337" // edited as text in the grid

	content, _, err := ds.Export(rows, fixedClock())
	require.NoError(t, err)

	reloaded, err := ParseDataset([]byte(content))
	require.NoError(t, err)
	assert.Equal(t, 31337.0, reloaded.Rows([]string{"pop"})[0]["pop"])
	// geometry stays the original even though attributes changed
	assert.True(t, strings.Contains(content, `[5,5]`) || strings.Contains(content, `[5, 5]`))
}

func TestExportCoercionFailure(t *testing.T) {
	ds, err := ParseDataset([]byte(fixture))
	require.NoError(t, err)

	rows := ds.Rows(ds.Columns())
	rows[1]["pop"] = "lots"

	_, _, err = ds.Export(rows, fixedClock())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"pop"`)
}

func TestExportRowCountMismatch(t *testing.T) {
	ds, err := ParseDataset([]byte(fixture))
	require.NoError(t, err)

	_, _, err = ds.Export(ds.Rows(ds.Columns())[:1], fixedClock())
	assert.ErrorIs(t, err, ErrRowCountMismatch)
}
