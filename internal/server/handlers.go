package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/blocks/pkg/bookmark"
	"github.com/matzehuels/blocks/pkg/buildinfo"
	"github.com/matzehuels/blocks/pkg/config"
	"github.com/matzehuels/blocks/pkg/errors"
	"github.com/matzehuels/blocks/pkg/generator"
	"github.com/matzehuels/blocks/pkg/generator/registry"
	"github.com/matzehuels/blocks/pkg/pipeline"
	"github.com/matzehuels/blocks/pkg/share"
)

// contentTypes maps output formats to response media types.
var contentTypes = map[string]string{
	registry.FormatCSS:      "text/css; charset=utf-8",
	registry.FormatTailwind: "text/plain; charset=utf-8",
	registry.FormatSVG:      "image/svg+xml",
	registry.FormatHTML:     "text/html; charset=utf-8",
	registry.FormatPNG:      "image/png",
	registry.FormatPDF:      "application/pdf",
}

type errorResponse struct {
	Code  errors.Code `json:"code"`
	Error string      `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps error codes onto HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch {
	case code.IsInvalid():
		status = http.StatusBadRequest
	case code == errors.ErrCodeNotFound:
		status = http.StatusNotFound
	case code == errors.ErrCodeUnsupported:
		status = http.StatusUnprocessableEntity
	case code == errors.ErrCodeExportFailed:
		status = http.StatusBadGateway
	}
	if status >= 500 {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
	}
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, status, errorResponse{Code: code, Error: errors.UserMessage(err)})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Short()})
}

func (s *Server) handleListGenerators(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, registry.Describe())
}

// handleDefaults returns the default parameter model for a kind.
func (s *Server) handleDefaults(w http.ResponseWriter, r *http.Request) {
	g, err := registry.New(chi.URLParam(r, "kind"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

// decodeParams reads an optional JSON parameter body on top of the kind's
// defaults.
func decodeParams(w http.ResponseWriter, r *http.Request, kind string) (generator.Generator, error) {
	g, err := registry.New(kind)
	if err != nil {
		return nil, err
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	if err := config.DecodeParamsJSON(body, g); err != nil {
		return nil, err
	}
	if n, ok := g.(generator.Normalizer); ok {
		n.Normalize()
	}
	return g, nil
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	kind, format := chi.URLParam(r, "kind"), chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}
	g, err := decodeParams(w, r, kind)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := pipeline.Options{Generator: g, Formats: []string{format}}
	if v := r.URL.Query().Get("t"); v != "" {
		t, err := strconv.ParseFloat(v, 64)
		if err != nil {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "invalid time %q", v))
			return
		}
		opts.Time = t
	}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if ferr, ok := res.Failed[format]; ok {
		s.writeError(w, r, ferr)
		return
	}
	data, ok := res.Artifacts[format]
	if !ok {
		s.writeError(w, r, errors.New(errors.ErrCodeUnsupported, "%s does not produce %s output", kind, format))
		return
	}

	cacheStatus := "MISS"
	if res.CacheHit {
		cacheStatus = "HIT"
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Cache", cacheStatus)
	if n, ok := g.(generator.Namer); ok {
		w.Header().Set("Content-Disposition", `inline; filename="`+n.FileName(format)+`"`)
	}
	_, _ = w.Write(data)
}

func (s *Server) handleShareEncode(w http.ResponseWriter, r *http.Request) {
	g, err := decodeParams(w, r, chi.URLParam(r, "kind"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	token, err := share.Encode(g)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) handleShareDecode(w http.ResponseWriter, r *http.Request) {
	g, err := share.Decode(chi.URLParam(r, "token"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"kind": g.Kind(), "params": g})
}

func (s *Server) requireBookmarks(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.bookmarks == nil {
			s.writeError(w, r, errors.New(errors.ErrCodeUnsupported, "bookmarks are disabled"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleListBookmarks(w http.ResponseWriter, r *http.Request) {
	ids, err := s.bookmarks.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ids)
}

func (s *Server) handleAddBookmark(w http.ResponseWriter, r *http.Request) {
	if err := s.bookmarks.Add(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemoveBookmark(w http.ResponseWriter, r *http.Request) {
	if err := s.bookmarks.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleToggleBookmark(w http.ResponseWriter, r *http.Request) {
	on, err := bookmark.Toggle(r.Context(), s.bookmarks, chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"bookmarked": on})
}
