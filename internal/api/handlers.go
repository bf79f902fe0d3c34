package api

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/backtoschool/progcompare/pkg/buildinfo"
	"github.com/backtoschool/progcompare/pkg/errors"
	"github.com/backtoschool/progcompare/pkg/explain"
	"github.com/backtoschool/progcompare/pkg/pipeline"
	"github.com/backtoschool/progcompare/pkg/program"
)

// Response headers set on exported documents.
const (
	HeaderPages   = "X-Export-Pages"
	HeaderCache   = "X-Cache"
	HeaderWarning = "X-Export-Warning"
)

// maxListLimit caps GET /api/programs.
const maxListLimit = 500

// ============================================================================
// HEALTH
// ============================================================================

type healthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Store     bool   `json:"store"`
	Explainer bool   `json:"explainer"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Version:   buildinfo.Version,
		Store:     s.runner.Store != nil,
		Explainer: s.runner.Explainer != nil,
	})
}

// ============================================================================
// PROGRAMS
// ============================================================================

func (s *Server) handleGetProgram(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidProgram, "program id must be a number"))
		return
	}
	if err := errors.ValidateProgramID(id); err != nil {
		s.writeError(w, r, err)
		return
	}
	if s.runner.Store == nil {
		s.writeError(w, r, errStoreMissing)
		return
	}

	p, err := s.runner.Store.Program(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, p)
}

type programsResponse struct {
	Programs []program.Program `json:"programs"`
	Count    int               `json:"count"`
}

func (s *Server) handleListPrograms(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "limit must be a positive number"))
			return
		}
		limit = min(n, maxListLimit)
	}
	if s.runner.Store == nil {
		s.writeError(w, r, errStoreMissing)
		return
	}

	programs, err := s.runner.Store.Programs(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if programs == nil {
		programs = []program.Program{}
	}
	s.writeJSON(w, http.StatusOK, programsResponse{Programs: programs, Count: len(programs)})
}

var errStoreMissing = errors.New(errors.ErrCodeNotFound, "program lookup is not configured")

// ============================================================================
// COMPARE
// ============================================================================

type explainResponse struct {
	Success bool   `json:"success"`
	Summary string `json:"summary"`
}

func (s *Server) handleExplain(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.decodeOptions(w, r)
	if !ok {
		return
	}
	if s.runner.Explainer == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeAIUnavailable, explain.NotConfiguredMessage))
		return
	}

	a, b, err := s.runner.Resolve(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	summary, err := s.runner.Explainer.Explain(r.Context(), a, b)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, explainResponse{Success: true, Summary: summary})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.decodeOptions(w, r)
	if !ok {
		return
	}
	if f := r.URL.Query().Get("format"); f != "" {
		opts.Format = f
	}
	opts.Logger = s.loggerFrom(r.Context())
	opts.Now = s.now

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	h := w.Header()
	h.Set("Content-Type", res.ContentType)
	h.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, res.Filename))
	h.Set("Content-Length", strconv.Itoa(len(res.Data)))
	h.Set(HeaderPages, strconv.Itoa(res.Pages))
	if res.CacheInfo.ArtifactHit {
		h.Set(HeaderCache, "HIT")
	} else {
		h.Set(HeaderCache, "MISS")
	}
	for _, warn := range res.Warnings {
		h.Add(HeaderWarning, warn)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Data)
}

// decodeOptions reads a comparison request body and validates which programs
// it names. It writes the error response itself and reports false on failure.
func (s *Server) decodeOptions(w http.ResponseWriter, r *http.Request) (pipeline.Options, bool) {
	var opts pipeline.Options
	body := http.MaxBytesReader(w, r.Body, s.maxBody)
	if err := json.NewDecoder(body).Decode(&opts); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			s.writeJSON(w, http.StatusRequestEntityTooLarge, errorBody{
				Code:    string(errors.ErrCodeInvalidInput),
				Message: fmt.Sprintf("request body exceeds %d bytes", s.maxBody),
			})
			return opts, false
		}
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "invalid request body"))
		return opts, false
	}
	if (opts.ProgramA == nil && opts.ProgramAID == 0) || (opts.ProgramB == nil && opts.ProgramBID == 0) {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "Both programA and programB are required"))
		return opts, false
	}
	for _, side := range []struct {
		inline *program.Program
		id     int64
	}{{opts.ProgramA, opts.ProgramAID}, {opts.ProgramB, opts.ProgramBID}} {
		if side.inline != nil {
			continue
		}
		if err := errors.ValidateProgramID(side.id); err != nil {
			s.writeError(w, r, err)
			return opts, false
		}
	}
	return opts, true
}
