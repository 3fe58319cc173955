package server

import (
	"net/http"

	"github.com/spektr-org/logviz/chart"
	"github.com/spektr-org/logviz/frame"
	"github.com/spektr-org/logviz/internal/errors"
	"github.com/spektr-org/logviz/recommend"
)

// SelectionRequest is the X/Y selection shared by the recommend and chart routes.
// Y repeats: ?x=Timestamp&y=Temp&y=Pressure.
type SelectionRequest struct {
	X string   `schema:"x"`
	Y []string `schema:"y"`
}

// ChartRequest selects one chart type plus its build options.
type ChartRequest struct {
	SelectionRequest
	chart.Options
	Type recommend.ChartID `schema:"type"`
}

// SnapshotRequest asks for the row whose Column value is nearest to Value.
type SnapshotRequest struct {
	Column string  `schema:"column"`
	Value  float64 `schema:"value"`
}

// Snapshot is one dataset row rendered as display labels.
type Snapshot struct {
	Row    int               `json:"row"`
	Values map[string]string `json:"values"`
}

func (s *Server) decode(r *http.Request, dst any) error {
	if err := s.decoder.Decode(dst, r.URL.Query()); err != nil {
		return errors.Wrap(err, errors.ErrTypeValidation, "invalid query parameters")
	}
	return nil
}

func (s *Server) handleCatalog(_ *http.Request) (any, error) {
	return recommend.Catalog(), nil
}

func (s *Server) handleColumns(_ *http.Request) (any, error) {
	return s.engine.Columns(s.ds), nil
}

func (s *Server) handleRecommend(r *http.Request) (any, error) {
	var req SelectionRequest
	if err := s.decode(r, &req); err != nil {
		return nil, err
	}
	return s.engine.Recommend(s.ds, req.X, req.Y), nil
}

func (s *Server) handleChart(r *http.Request) (any, error) {
	var req ChartRequest
	if err := s.decode(r, &req); err != nil {
		return nil, err
	}
	if req.Type == "" {
		return nil, errors.New(errors.ErrTypeValidation, "chart type is required").
			WithSuggestion("Pass type=<id>; GET /api/recommend lists the suitable ones")
	}
	return chart.Build(s.ds, req.X, req.Y, req.Type, req.Options)
}

func (s *Server) handleDescribe(_ *http.Request) (any, error) {
	stats := frame.Describe(s.ds)
	if stats == nil {
		stats = []frame.ColumnStats{}
	}
	return stats, nil
}

func (s *Server) handleSnapshot(r *http.Request) (any, error) {
	var req SnapshotRequest
	if err := s.decode(r, &req); err != nil {
		return nil, err
	}
	if _, ok := s.ds.Column(req.Column); !ok {
		return nil, errors.NewColumnError(req.Column, s.ds.Names())
	}

	row, ok := frame.Nearest(s.ds, req.Column, req.Value)
	if !ok {
		return nil, errors.Newf(errors.ErrTypeValidation, "column %q has no numeric values", req.Column)
	}

	snap := Snapshot{Row: row, Values: make(map[string]string, len(s.ds.Names()))}
	for _, name := range s.ds.Names() {
		col, _ := s.ds.Column(name)
		snap.Values[name] = col.Label(row)
	}
	return snap, nil
}
