package httpadapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/couchcryptid/storm-data-charts/internal/chart"
	"github.com/couchcryptid/storm-data-charts/internal/domain"
)

type layoutRequest struct {
	Width        float64 `json:"width" validate:"omitempty,gt=0,lte=10000"`
	Height       float64 `json:"height" validate:"omitempty,gt=0,lte=10000"`
	TickCount    int     `json:"tick_count" validate:"omitempty,gte=2,lte=20"`
	Padding      float64 `json:"padding" validate:"omitempty,gt=0,lt=0.5"`
	Subdivisions int     `json:"subdivisions" validate:"omitempty,gte=1,lte=60"`
	LabelEvery   int     `json:"label_every" validate:"omitempty,gte=1"`
}

type chartsRequest struct {
	Units    string             `json:"units" validate:"omitempty,oneof=metric imperial"`
	Layout   *layoutRequest     `json:"layout"`
	Forecast domain.RawForecast `json:"forecast"`
}

type pointerRequest struct {
	X          *float64                `json:"x" validate:"required"`
	Points     []domain.Point2D        `json:"points" validate:"max=10000"`
	Values     []domain.ConvertedValue `json:"values" validate:"max=10000"`
	Timestamps []int64                 `json:"timestamps" validate:"max=10000"`
	UTCOffset  int                     `json:"utc_offset" validate:"gte=-50400,lte=50400"`
}

// handleCharts renders a forecast posted as JSON into a chart bundle.
func (s *Server) handleCharts(w http.ResponseWriter, r *http.Request) {
	var req chartsRequest
	if !s.decode(w, r, &req) {
		return
	}

	metric := s.defaults.Units
	if req.Units != "" {
		metric = domain.MetricValue(req.Units)
	}

	layout := s.layout(req.Layout)
	key, err := bundleKey(metric, layout, req.Forecast)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	if body, ok := s.cache.get(key); ok {
		s.metrics.BundleCacheLookups.WithLabelValues("hit").Inc()
		writeBody(w, http.StatusOK, body)
		return
	}
	s.metrics.BundleCacheLookups.WithLabelValues("miss").Inc()

	snap, err := domain.NewForecastSnapshot(req.Forecast, time.Time{})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	bundle, err := chart.BuildBundle(snap, metric, layout)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	body, err := json.Marshal(bundle)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.cache.put(key, body)
	writeBody(w, http.StatusOK, body)
}

// handlePointer snaps a pointer position onto a sampled curve.
func (s *Server) handlePointer(w http.ResponseWriter, r *http.Request) {
	var req pointerRequest
	if !s.decode(w, r, &req) {
		return
	}
	if !sort.SliceIsSorted(req.Points, func(i, j int) bool { return req.Points[i].X < req.Points[j].X }) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "points must be in ascending x order", Fields: []string{"points"}})
		return
	}

	projector := chart.NewPointerProjector(time.FixedZone("", req.UTCOffset))
	state := projector.Project(*req.X, &chart.SampledCurve{
		Points:     req.Points,
		Values:     req.Values,
		Timestamps: req.Timestamps,
	})
	writeJSON(w, http.StatusOK, state)
}

// decode reads and validates a JSON body, writing a 400 response on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid request body: %v", err)})
		return false
	}

	if err := s.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, len(verrs))
			for i, fe := range verrs {
				fields[i] = fe.Namespace()
			}
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: fields})
			return false
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return false
	}
	return true
}

func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidMetric),
		errors.Is(err, domain.ErrEmptyForecast):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	default:
		s.logger.Error("chart request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

// layout overlays request settings on the configured defaults.
func (s *Server) layout(req *layoutRequest) chart.Layout {
	l := s.defaults.Layout
	if req == nil {
		return l
	}
	if req.Width > 0 {
		l.Width = req.Width
	}
	if req.Height > 0 {
		l.Height = req.Height
	}
	if req.TickCount > 0 {
		l.TickCount = req.TickCount
	}
	if req.Padding > 0 {
		l.Padding = req.Padding
	}
	if req.Subdivisions > 0 {
		l.Subdivisions = req.Subdivisions
	}
	if req.LabelEvery > 0 {
		l.LabelEvery = req.LabelEvery
	}
	return l
}
