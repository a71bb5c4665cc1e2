package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/agptools/pkg/agp"
	"github.com/matzehuels/agptools/pkg/assemble"
	errs "github.com/matzehuels/agptools/pkg/errors"
	agpio "github.com/matzehuels/agptools/pkg/io"
	"github.com/matzehuels/agptools/pkg/observability"
)

type healthResponse struct {
	Status  string `json:"status"`
	Objects int    `json:"objects"`
	Layout  string `json:"layout"`
}

type objectSummary struct {
	Name       string `json:"name"`
	Length     int    `json:"length"`
	Records    int    `json:"records"`
	Components int    `json:"components"`
	GapLength  int    `json:"gap_length"`
}

type objectsResponse struct {
	Layout  string          `json:"layout"`
	Stats   agp.Stats       `json:"stats"`
	Objects []objectSummary `json:"objects"`
}

type mapResponse struct {
	Component   string `json:"component"`
	Object      string `json:"object"`
	Start       int    `json:"start"`
	End         int    `json:"end"`
	Orientation string `json:"orientation"`
}

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Objects: s.layout.Len(), Layout: s.hash})
}

func (s *Server) handleObjects(w http.ResponseWriter, r *http.Request) {
	resp := objectsResponse{
		Layout:  s.hash,
		Stats:   s.layout.Stats(),
		Objects: make([]objectSummary, 0, s.layout.Len()),
	}
	for _, obj := range s.layout.Objects() {
		resp.Objects = append(resp.Objects, objectSummary{
			Name:       obj.Name(),
			Length:     obj.Len(),
			Records:    obj.Count(),
			Components: obj.ComponentCount(),
			GapLength:  obj.GapLen(),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleObject(w http.ResponseWriter, r *http.Request) {
	single, err := s.single(chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	switch r.URL.Query().Get("format") {
	case "", "json":
		w.Header().Set("Content-Type", "application/json")
		_ = agpio.WriteJSON(w, single)
	case "agp":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_ = agpio.WriteAGP(w, &agpio.Document{Layout: single})
	default:
		s.writeError(w, r, errs.New(errs.ErrCodeInvalidInput, "format must be json or agp"))
	}
}

func (s *Server) handleFASTA(w http.ResponseWriter, r *http.Request) {
	single, err := s.single(chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.opts.Runner.Assemble(r.Context(), single, s.opts.Provider, assemble.Options{Workers: 1})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	recs := make([]agpio.FASTARecord, 0, len(res.Sequences))
	for _, seq := range res.Sequences {
		recs = append(recs, agpio.FASTARecord{ID: seq.Name, Seq: seq.Seq})
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_ = agpio.WriteFASTA(w, recs, s.opts.LineWidth)
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	id := q.Get("component")
	if id == "" {
		s.writeError(w, r, errs.New(errs.ErrCodeInvalidInput, "component is required"))
		return
	}
	start, err := intParam(q.Get("start"), "start")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	end, err := intParam(q.Get("end"), "end")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	pos, err := s.mapper.Map(id, start, end)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapResponse{
		Component:   id,
		Object:      pos.Object,
		Start:       pos.Start,
		End:         pos.End,
		Orientation: pos.Orientation.String(),
	})
}

// single returns a layout holding only the named object.
func (s *Server) single(name string) (*agp.Layout, error) {
	obj, ok := s.layout.Get(name)
	if !ok {
		return nil, errs.New(errs.ErrCodeUnknownObject, "object %s not found", name)
	}
	return agp.NewLayout(obj)
}

func intParam(v, name string) (int, error) {
	if v == "" {
		return 0, errs.New(errs.ErrCodeInvalidInput, "%s is required", name)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errs.New(errs.ErrCodeInvalidInput, "%s must be an integer, got %q", name, v)
	}
	return n, nil
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errs.Code) int {
	switch code {
	case errs.ErrCodeInvalidInput, errs.ErrCodeInvalidFormat, errs.ErrCodeInvalidName,
		errs.ErrCodeInvalidBreakpoint, errs.ErrCodeMisalignedBoundary, errs.ErrCodeOutOfRange,
		errs.ErrCodeEmptyObject:
		return http.StatusBadRequest
	case errs.ErrCodeUnknownObject, errs.ErrCodeComponentNotFound:
		return http.StatusNotFound
	case errs.ErrCodeDuplicateName, errs.ErrCodeOverlappingRanges:
		return http.StatusConflict
	case errs.ErrCodeNetwork:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	id := requestIDFrom(ctx)
	code := errs.GetCode(err)
	status := statusFor(code)

	observability.HTTP().OnError(ctx, id, r.Method, r.URL.Path, err)
	if status >= http.StatusInternalServerError {
		s.opts.Logger.Error("request failed", "id", id, "path", r.URL.Path, "err", err)
	}

	resp := errorResponse{Error: errs.UserMessage(err), Code: string(code), RequestID: id}
	if code == "" {
		resp.Error = http.StatusText(status)
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
