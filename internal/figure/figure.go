// Package figure renders the viewer's plots: blank annotated placeholders
// for idle and error states, and the choropleth page for a valid selection.
package figure

import (
	"bytes"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// DefaultPrompt is the annotation shown before a valid selection exists.
const DefaultPrompt = "Choose 2 columns and click the view button to compare."

// TooManyColumns is the annotation shown when more than two data keys are
// selected.
const TooManyColumns = "You should select only 2 data keys."

// viridis is the 10-step Viridis ramp backing the choropleth's continuous
// visual map.
var viridis = []string{
	"#440154", "#482777", "#3e4989", "#31688e", "#26828e",
	"#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725",
}

// Blank renders an empty styled figure with a centered annotation. An empty
// text yields the unannotated idle figure. Every idle and error path shares
// this builder so the plot styling lives in one place.
func Blank(text string) (string, error) {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle:       "GeoJSON Viewer",
			Width:           "100%",
			Height:          "560px",
			BackgroundColor: "#ffffff",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:      text,
			Left:       "center",
			Top:        "middle",
			TitleStyle: &opts.TextStyle{FontSize: 16},
		}),
		charts.WithXAxisOpts(opts.XAxis{
			AxisLabel: &opts.AxisLabel{Show: opts.Bool(false)},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			AxisLabel: &opts.AxisLabel{Show: opts.Bool(false)},
		}),
	)
	scatter.AddSeries("", []opts.ScatterData{})

	var buf bytes.Buffer
	if err := scatter.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
