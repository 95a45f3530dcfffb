package figure

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"strconv"

	"github.com/paulmach/orb/geojson"
	"gonum.org/v1/gonum/floats"
)

//go:embed choropleth.html
var choroplethFS embed.FS

var choroplethTmpl = template.Must(template.ParseFS(choroplethFS, "choropleth.html"))

// echartsJS is the script the choropleth page loads; it matches the assets
// host the rendered placeholder figures use.
const echartsJS = "https://go-echarts.github.io/go-echarts-assets/assets/echarts.min.js"

// Region pairs one geographic shape key with its fill value.
type Region struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// ChoroplethConfig describes one choropleth rendering: the geometry subset,
// the two chosen columns, the per-region fill values, and the projection
// center.
type ChoroplethConfig struct {
	// Subset carries the geometry plus the two chosen columns.
	Subset *geojson.FeatureCollection
	// LocationColumn is the property naming each shape.
	LocationColumn string
	// ColorColumn labels the visual map.
	ColorColumn string
	// Regions holds the (possibly edited) fill value per shape.
	Regions []Region
	// CenterLon/CenterLat aim the orthographic projection, in degrees.
	CenterLon float64
	CenterLat float64
}

type choroplethPage struct {
	Title          string
	EChartsJS      string
	GeoJSON        template.JS
	SeriesData     template.JS
	Colors         template.JS
	LocationColumn string
	ColorColumn    string
	Min            template.JS
	Max            template.JS
	CenterLon      template.JS
	CenterLat      template.JS
}

// jsNumber renders a float as an exact JS literal. The template's JS
// escaper would space-pad interpolated numbers.
func jsNumber(v float64) template.JS {
	return template.JS(strconv.FormatFloat(v, 'g', -1, 64))
}

// Choropleth renders a self-contained HTML page: the subset collection is
// registered as a custom map, shapes are keyed by the location column, and
// fills follow a continuous Viridis scale over the color values.
func Choropleth(cfg ChoroplethConfig) (string, error) {
	geo, err := json.Marshal(cfg.Subset)
	if err != nil {
		return "", fmt.Errorf("encode map geometry: %w", err)
	}
	series, err := json.Marshal(cfg.Regions)
	if err != nil {
		return "", fmt.Errorf("encode region values: %w", err)
	}
	colors, err := json.Marshal(viridis)
	if err != nil {
		return "", fmt.Errorf("encode color ramp: %w", err)
	}

	min, max := 0.0, 1.0
	if len(cfg.Regions) > 0 {
		values := make([]float64, len(cfg.Regions))
		for i, r := range cfg.Regions {
			values[i] = r.Value
		}
		min = floats.Min(values)
		max = floats.Max(values)
		if min == max {
			max = min + 1
		}
	}

	page := choroplethPage{
		Title:          fmt.Sprintf("%s by %s", cfg.ColorColumn, cfg.LocationColumn),
		EChartsJS:      echartsJS,
		GeoJSON:        template.JS(geo),
		SeriesData:     template.JS(series),
		Colors:         template.JS(colors),
		LocationColumn: cfg.LocationColumn,
		ColorColumn:    cfg.ColorColumn,
		Min:            jsNumber(min),
		Max:            jsNumber(max),
		CenterLon:      jsNumber(cfg.CenterLon),
		CenterLat:      jsNumber(cfg.CenterLat),
	}

	var buf bytes.Buffer
	if err := choroplethTmpl.Execute(&buf, page); err != nil {
		return "", fmt.Errorf("render choropleth page: %w", err)
	}
	return buf.String(), nil
}
