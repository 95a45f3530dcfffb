// Package geodata holds the loaded GeoJSON document and its derived views.
//
// Decoding and encoding of the GeoJSON format itself is delegated to
// paulmach/orb; this package only keeps the metadata the UI needs on top of
// a feature collection: ordered column names, inferred column types, and
// row projections for the editable grid.
package geodata

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// GeometryColumn is the reserved attribute name for feature geometry. It is
// never shown in the user-facing column list and never editable.
const GeometryColumn = "geometry"

var (
	// ErrNoInput is returned when neither a path/URL nor an upload payload
	// was supplied to the loader.
	ErrNoInput = errors.New("no geojson input provided")

	// ErrColumnMissing is returned when a requested column is not present
	// in the dataset.
	ErrColumnMissing = errors.New("column not present in dataset")

	// ErrRowCountMismatch is returned when edited grid rows no longer line
	// up with the dataset's geometry rows.
	ErrRowCountMismatch = errors.New("row count does not match loaded dataset")
)

// Dataset is the in-memory document: a decoded feature collection plus the
// column metadata captured at load time. The geometry of each feature and
// the collection's extra top-level members (legacy "crs" and friends) are
// kept untouched so an unedited export reproduces the original file.
type Dataset struct {
	fc      *geojson.FeatureCollection
	columns []string
	types   map[string]ColumnType
}

// TableColumn describes one editable grid column.
type TableColumn struct {
	Name string     `json:"name"`
	ID   string     `json:"id"`
	Type ColumnType `json:"type,omitempty"`
}

// TableView is the renderable specification of the edit tab: a message, the
// grid columns, the current rows, and whether the grid accepts edits.
type TableView struct {
	Message  string                   `json:"message"`
	Columns  []TableColumn            `json:"columns"`
	Rows     []map[string]interface{} `json:"rows"`
	Editable bool                     `json:"editable"`
}

// ParseDataset decodes GeoJSON text into a Dataset. Column order follows the
// order property keys appear in the source text, not Go map order.
func ParseDataset(data []byte) (*Dataset, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("decode feature collection: %w", err)
	}

	columns, err := columnOrder(data)
	if err != nil {
		return nil, fmt.Errorf("read column order: %w", err)
	}

	types := make(map[string]ColumnType, len(columns))
	for _, c := range columns {
		values := make([]interface{}, 0, len(fc.Features))
		for _, f := range fc.Features {
			if v, ok := f.Properties[c]; ok {
				values = append(values, v)
			}
		}
		types[c] = inferColumnType(values)
	}

	return &Dataset{fc: fc, columns: columns, types: types}, nil
}

// Columns returns all column names except geometry, in source order.
func (d *Dataset) Columns() []string {
	out := make([]string, len(d.columns))
	copy(out, d.columns)
	return out
}

// ColumnTypes maps each non-geometry column to its inferred value type.
func (d *Dataset) ColumnTypes() map[string]ColumnType {
	out := make(map[string]ColumnType, len(d.types))
	for k, v := range d.types {
		out[k] = v
	}
	return out
}

// NumRows returns the number of features.
func (d *Dataset) NumRows() int {
	return len(d.fc.Features)
}

// Rows projects the named columns into row maps, one per feature. Attribute
// values are returned as decoded, without coercion.
func (d *Dataset) Rows(columns []string) []map[string]interface{} {
	rows := make([]map[string]interface{}, 0, len(d.fc.Features))
	for _, f := range d.fc.Features {
		row := make(map[string]interface{}, len(columns))
		for _, c := range columns {
			row[c] = f.Properties[c]
		}
		rows = append(rows, row)
	}
	return rows
}

// Subset returns a feature collection carrying only the requested property
// columns alongside the original geometry. It is the interchange structure
// handed to the choropleth renderer.
func (d *Dataset) Subset(columns ...string) (*geojson.FeatureCollection, error) {
	for _, c := range columns {
		if _, ok := d.types[c]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrColumnMissing, c)
		}
	}

	out := geojson.NewFeatureCollection()
	for _, f := range d.fc.Features {
		nf := geojson.NewFeature(f.Geometry)
		for _, c := range columns {
			if v, ok := f.Properties[c]; ok {
				nf.Properties[c] = v
			}
		}
		out.Append(nf)
	}
	return out, nil
}

// Bound returns the union of all feature geometry bounds.
func (d *Dataset) Bound() orb.Bound {
	var b orb.Bound
	first := true
	for _, f := range d.fc.Features {
		if f.Geometry == nil {
			continue
		}
		if first {
			b = f.Geometry.Bound()
			first = false
			continue
		}
		b = b.Union(f.Geometry.Bound())
	}
	return b
}

// TableView builds the edit-tab widget specification for d. A nil Dataset is
// valid and yields the placeholder message plus an empty, read-only shell.
func (d *Dataset) TableView() TableView {
	if d == nil {
		return TableView{
			Message: "Load geojson file in the display tab first",
			Columns: []TableColumn{},
			Rows:    []map[string]interface{}{},
		}
	}

	columns := make([]TableColumn, 0, len(d.columns))
	for _, c := range d.columns {
		columns = append(columns, TableColumn{Name: c, ID: c, Type: d.types[c]})
	}
	return TableView{
		Message:  "To edit: click cells, adjust and press enter",
		Columns:  columns,
		Rows:     d.Rows(d.columns),
		Editable: true,
	}
}
