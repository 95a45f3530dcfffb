package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/geodata-dev/geojson-viewer/internal/figure"
	"github.com/geodata-dev/geojson-viewer/internal/geodata"
	"github.com/geodata-dev/geojson-viewer/internal/httputil"
	"github.com/geodata-dev/geojson-viewer/internal/monitoring"
	"github.com/geodata-dev/geojson-viewer/internal/session"
)

// loadErrorStatus is the fixed user-facing message for any load failure.
// The underlying cause goes to the log only.
const loadErrorStatus = "Error: Could not load data content"

// LoadRequest is the body of the load/reset callback.
type LoadRequest struct {
	Event  string `json:"event"`
	URL    string `json:"url"`
	Upload string `json:"upload"`
}

// LoadResult is the fixed tuple of UI updates every load/reset callback
// returns: column options, status text, the edit-table view, button states,
// the echoed URL field value, and a fresh placeholder figure.
type LoadResult struct {
	Columns       []string          `json:"columns"`
	Status        string            `json:"status"`
	Table         geodata.TableView `json:"table"`
	ResetDisabled bool              `json:"resetDisabled"`
	SaveDisabled  bool              `json:"saveDisabled"`
	URL           string            `json:"url"`
	Figure        string            `json:"figure"`
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return
	}

	var req LoadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.BadRequest(w, "invalid load request")
		return
	}
	event, err := ParseEventKind(req.Event)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}

	sess := s.session(w, r)
	res := s.dispatchLoad(r, sess, event, req.URL, req.Upload)
	httputil.WriteJSONOK(w, res)
}

// dispatchLoad runs the load/reset state machine for one event and builds
// the resulting UI tuple.
func (s *Server) dispatchLoad(r *http.Request, sess *session.Session, event EventKind, url, upload string) LoadResult {
	switch event {
	case EventStartup:
		// state report only, never a load attempt

	case EventReset:
		sess.Clear()
		url = ""

	case EventLoad, EventUpload:
		// only the input matching the trigger is consumed
		if event == EventLoad {
			upload = ""
		} else {
			url = ""
		}
		sess.Clear()
		ds, err := s.loader.Load(r.Context(), url, upload)
		switch {
		case errors.Is(err, geodata.ErrNoInput):
			// nothing to load; stay in the cleared state
		case err != nil:
			monitoring.Logf("failed to load geojson: %v", err)
			return s.loadResult(sess, loadErrorStatus, url)
		default:
			sess.SetDataset(ds)
		}
	}

	return s.loadResult(sess, "", url)
}

// loadResult derives the UI tuple from the session's current state. The
// placeholder figure is always rebuilt: any load or reset invalidates the
// previous view.
func (s *Server) loadResult(sess *session.Session, status, url string) LoadResult {
	res := LoadResult{
		Columns: []string{},
		Status:  status,
		URL:     url,
	}

	ds := sess.Dataset()
	if ds == nil {
		res.ResetDisabled = true
		res.SaveDisabled = true
	} else {
		res.Columns = ds.Columns()
	}
	res.Table = ds.TableView()

	fig, err := figure.Blank(figure.DefaultPrompt)
	if err != nil {
		monitoring.Logf("failed to render placeholder figure: %v", err)
	}
	res.Figure = fig
	return res
}

// ViewRequest carries the chosen columns plus the full current grid
// contents, so in-progress edits show up on the map before being saved.
type ViewRequest struct {
	Columns []string                 `json:"columns"`
	Rows    []map[string]interface{} `json:"rows"`
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return
	}

	var req ViewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.BadRequest(w, "invalid view request")
		return
	}

	sess := s.session(w, r)
	html, err := s.renderView(sess, req)
	if err != nil {
		httputil.InternalServerError(w, "failed to render figure")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write([]byte(html)); err != nil {
		monitoring.Logf("failed to write figure: %v", err)
	}
}

// renderView applies the view preconditions and renders either the
// choropleth or the appropriate placeholder.
func (s *Server) renderView(sess *session.Session, req ViewRequest) (string, error) {
	ds := sess.Dataset()

	valid := len(req.Columns) == 2 &&
		req.Columns[0] != "" && req.Columns[1] != "" &&
		req.Columns[0] != req.Columns[1] &&
		ds != nil

	switch {
	case valid:
		// proceed below
	case len(req.Columns) > 2:
		return figure.Blank(figure.TooManyColumns)
	default:
		return figure.Blank("")
	}

	location, color := req.Columns[0], req.Columns[1]

	rows, err := ds.CoerceRows(req.Rows)
	if err != nil {
		monitoring.Debugf("view: grid rows not castable: %v", err)
		return figure.Blank("")
	}

	subset, err := ds.Subset(color, location)
	if err != nil {
		// a chosen column can disappear between load and view
		monitoring.Debugf("view: %v", err)
		return figure.Blank("")
	}

	regions := buildRegions(rows, location, color, ds.ColumnTypes()[color])
	center := ds.Bound().Center()

	return figure.Choropleth(figure.ChoroplethConfig{
		Subset:         subset,
		LocationColumn: location,
		ColorColumn:    color,
		Regions:        regions,
		CenterLon:      center[0],
		CenterLat:      center[1],
	})
}

// buildRegions pairs each row's location key with its fill value. Numeric
// color columns feed the continuous scale directly; other columns are ranked
// so distinct values still spread across the ramp.
func buildRegions(rows []map[string]interface{}, location, color string, colorType geodata.ColumnType) []figure.Region {
	regions := make([]figure.Region, 0, len(rows))

	if colorType == geodata.TypeNumber {
		for _, row := range rows {
			v, ok := row[color].(float64)
			if !ok {
				// null gets no fill rather than reading as zero
				continue
			}
			regions = append(regions, figure.Region{Name: formatCell(row[location]), Value: v})
		}
		return regions
	}

	rank := make(map[string]float64)
	for _, row := range rows {
		key := formatCell(row[color])
		if _, ok := rank[key]; !ok {
			rank[key] = float64(len(rank))
		}
	}
	for _, row := range rows {
		regions = append(regions, figure.Region{
			Name:  formatCell(row[location]),
			Value: rank[formatCell(row[color])],
		})
	}
	return regions
}

// formatCell renders a grid value the way the browser will stringify the
// matching GeoJSON property, so shape keys line up.
func formatCell(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// SaveRequest carries the full grid contents and the grid column metadata.
type SaveRequest struct {
	Rows    []map[string]interface{} `json:"rows"`
	Columns []geodata.TableColumn    `json:"columns"`
}

// SaveResponse is the client-side download payload.
type SaveResponse struct {
	Content  string `json:"content"`
	Filename string `json:"filename"`
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return
	}

	var req SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.BadRequest(w, "invalid save request")
		return
	}

	sess := s.session(w, r)
	ds := sess.Dataset()
	if ds == nil {
		// no document: a no-op, not an error
		w.WriteHeader(http.StatusNoContent)
		return
	}

	rows := projectRows(req.Rows, req.Columns)
	content, filename, err := ds.Export(rows, s.clock)
	if err != nil {
		monitoring.Logf("failed to export edited data: %v", err)
		httputil.BadRequest(w, "could not save edited data: "+err.Error())
		return
	}

	httputil.WriteJSONOK(w, SaveResponse{Content: content, Filename: filename})
}

// projectRows keeps only the attributes the grid metadata declares, guarding
// against stray keys a client might submit.
func projectRows(rows []map[string]interface{}, columns []geodata.TableColumn) []map[string]interface{} {
	if len(columns) == 0 {
		return rows
	}
	out := make([]map[string]interface{}, 0, len(rows))
	for _, row := range rows {
		p := make(map[string]interface{}, len(columns))
		for _, c := range columns {
			if v, ok := row[c.ID]; ok {
				p[c.ID] = v
			}
		}
		out = append(out, p)
	}
	return out
}
