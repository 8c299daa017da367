// internal/adapters/http_server/handlers.go
package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"daraz_reviews/internal/app"
	"daraz_reviews/internal/domain"
)

type Handlers struct{ S *app.AnalysisService }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/analyze", h.analyze)
	s.mux.With(Timeout(LookupTimeout)).Get("/v1/analyses/{productID}", h.listAnalyses)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("marshal response failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("write response body failed")
	}
}

func (h *Handlers) analyze(w http.ResponseWriter, r *http.Request) {
	u := r.URL.Query().Get("url")
	if u == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid URL", "url is required")
		return
	}
	maxPages := 1
	if mp := r.URL.Query().Get("max_pages"); mp != "" {
		n, err := strconv.Atoi(mp)
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "Invalid max_pages", "max_pages must be an integer between 1 and 3")
			return
		}
		maxPages = n
	}

	rep, err := h.S.AnalyzeURL(r.Context(), u, maxPages)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeProblem(w, http.StatusBadRequest, "Bad Request", err.Error())
			return
		}
		log.Error().Err(err).Str("url", u).Msg("analysis failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", err.Error())
		return
	}
	writeJSON(w, rep)
}

func (h *Handlers) listAnalyses(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "productID")
	if _, err := strconv.ParseInt(id, 10, 64); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "product id must be a number")
		return
	}

	limit := 20
	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > 100 {
			writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and 100")
			return
		}
		limit = l
	}

	recs, err := h.S.History(r.Context(), id, limit)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeProblem(w, http.StatusNotFound, "Not Found", "no analyses recorded for this product")
			return
		}
		log.Error().Err(err).Str("product_id", id).Msg("list analyses failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", err.Error())
		return
	}
	writeJSON(w, map[string]any{"items": recs})
}
