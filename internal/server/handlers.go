package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pondevelopment/harkje/pkg/chart"
	"github.com/pondevelopment/harkje/pkg/errors"
	"github.com/pondevelopment/harkje/pkg/pipeline"
	"github.com/pondevelopment/harkje/pkg/store"
)

// maxBodyBytes caps request bodies at 8 MiB.
const maxBodyBytes = 8 << 20

// layoutRequest is the body for POST /api/layout and /api/render.
type layoutRequest struct {
	Chart   chart.Chart      `json:"chart"`
	Options pipeline.Options `json:"options"`
}

// saveChartRequest is the body for PUT /api/charts/{id}.
type saveChartRequest struct {
	Name  string      `json:"name,omitempty"`
	Chart chart.Chart `json:"chart"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if !s.decode(w, r, &req) {
		return
	}

	l, _, err := s.runner.Layout(r.Context(), req.Chart, &req.Options)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := req.Options.ValidateAndSetDefaults(); err != nil {
		if errors.GetCode(err) == "" {
			err = errors.New(errors.ErrCodeInvalidInput, "%s", err)
		}
		s.writeError(w, r, err)
		return
	}

	// One format per request; the response body is the artifact itself.
	format := req.Options.Formats[0]

	result, err := s.runner.Execute(r.Context(), req.Chart, req.Options)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentType(format))
	w.WriteHeader(http.StatusOK)
	w.Write(result.Artifacts[format])
}

func (s *Server) handleListCharts(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeUnsupported, "no snapshot store configured"))
		return
	}
	snaps, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeStore, err, "list snapshots"))
		return
	}
	if snaps == nil {
		snaps = []store.Snapshot{}
	}
	writeJSON(w, http.StatusOK, snaps)
}

func (s *Server) handleSaveChart(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeUnsupported, "no snapshot store configured"))
		return
	}
	id := chi.URLParam(r, "id")
	if err := errors.ValidateChartID(id); err != nil {
		s.writeError(w, r, err)
		return
	}

	var req saveChartRequest
	if !s.decode(w, r, &req) {
		return
	}
	if _, err := req.Chart.Tree(); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidHierarchy, err, "invalid hierarchy"))
		return
	}

	snap := store.Snapshot{
		ID:        id,
		Name:      req.Name,
		Chart:     req.Chart,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.store.Save(r.Context(), snap); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeStore, err, "save snapshot %s", id))
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleGetChart(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeUnsupported, "no snapshot store configured"))
		return
	}
	id := chi.URLParam(r, "id")
	snap, err := s.store.Get(r.Context(), id)
	if err != nil {
		if err == store.ErrNotFound {
			s.writeError(w, r, errors.New(errors.ErrCodeChartNotFound, "no chart with id %q", id))
			return
		}
		s.writeError(w, r, errors.Wrap(errors.ErrCodeStore, err, "get snapshot %s", id))
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleDeleteChart(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeUnsupported, "no snapshot store configured"))
		return
	}
	id := chi.URLParam(r, "id")
	if err := s.store.Delete(r.Context(), id); err != nil {
		if err == store.ErrNotFound {
			s.writeError(w, r, errors.New(errors.ErrCodeChartNotFound, "no chart with id %q", id))
			return
		}
		s.writeError(w, r, errors.Wrap(errors.ErrCodeStore, err, "delete snapshot %s", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decode parses a JSON body into v, writing an error response on
// failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body"))
		return false
	}
	return true
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err, "request_id", RequestID(r.Context()))
	}
	writeJSON(w, status, errorResponse{Error: errorBody{
		Code:    string(code),
		Message: errors.UserMessage(err),
	}})
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput,
		errors.ErrCodeInvalidAspectRatio,
		errors.ErrCodeInvalidHierarchy,
		errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidStyle,
		errors.ErrCodeInvalidView:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeChartNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func contentType(format string) string {
	switch format {
	case pipeline.FormatSVG:
		return "image/svg+xml"
	case pipeline.FormatPNG:
		return "image/png"
	case pipeline.FormatPDF:
		return "application/pdf"
	default:
		return "application/json"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
