package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/samarsajad/recipe-matching/internal/matching"
)

func NewRouter(svc *matching.Service, log *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", handleHealth)
	r.Post("/matches/query", handleMatchQuery(svc))
	r.Get("/recipes/search", handleSearch(svc))
	r.Post("/recipes/{id}/rate", handleRate(svc))
	r.Post("/weights/rebuild", handleRebuildWeights(svc, log))
	r.Get("/weights/stats", handleWeightStats(svc))

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("ok")) //nolint:errcheck
}

// handleMatchQuery is the primary "what do I cook tonight?" interface:
// rank the catalog against the submitted pantry. An empty pantry (and
// no saved one for the user) is a valid query with an empty result, not
// an error.
func handleMatchQuery(svc *matching.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var q matching.Query
		if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
			jsonError(w, "invalid request body", http.StatusBadRequest)
			return
		}

		results, err := svc.Match(r.Context(), q)
		if err != nil {
			jsonError(w, "matching failed: "+err.Error(), http.StatusBadGateway)
			return
		}
		jsonOK(w, results)
	}
}

// handleSearch finds recipes by name substring.
//
// Query params:
//   - q          — search text (required, min 2 chars)
//   - dietary    — comma-separated tags, all required on the recipe
//   - max_time   — maximum cook time in minutes
//   - difficulty — exact difficulty label, case-insensitive
//   - min_rating — minimum average rating
func handleSearch(svc *matching.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := strings.TrimSpace(r.URL.Query().Get("q"))
		if len(query) < 2 {
			jsonError(w, "q must be at least 2 characters", http.StatusBadRequest)
			return
		}

		filters, err := filtersFromQuery(r)
		if err != nil {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}

		results, err := svc.SearchByName(r.Context(), query, filters)
		if err != nil {
			jsonError(w, "search failed: "+err.Error(), http.StatusBadGateway)
			return
		}
		jsonOK(w, results)
	}
}

type rateRequest struct {
	Rating int `json:"rating"`
}

func handleRate(svc *matching.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req rateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonError(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if req.Rating < 1 || req.Rating > 5 {
			jsonError(w, "rating must be between 1 and 5 stars", http.StatusBadRequest)
			return
		}

		result, err := svc.Rate(r.Context(), chi.URLParam(r, "id"), req.Rating)
		if err != nil {
			jsonError(w, "rating failed: "+err.Error(), http.StatusBadGateway)
			return
		}
		if result == nil {
			jsonError(w, "recipe not found", http.StatusNotFound)
			return
		}
		jsonOK(w, result)
	}
}

// handleRebuildWeights rescans the corpus and swaps in a fresh weight
// table, invalidating the match cache. Intended for the batch refresh
// job, not per-write use.
func handleRebuildWeights(svc *matching.Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokens, err := svc.RebuildWeights(r.Context())
		if err != nil {
			log.Error("weight rebuild failed", zap.Error(err))
			jsonError(w, "rebuild failed: "+err.Error(), http.StatusBadGateway)
			return
		}
		jsonOK(w, map[string]int{"tokens": tokens})
	}
}

func handleWeightStats(svc *matching.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jsonOK(w, svc.Stats())
	}
}

func filtersFromQuery(r *http.Request) (matching.Filters, error) {
	var f matching.Filters

	if s := r.URL.Query().Get("dietary"); s != "" {
		for _, tag := range strings.Split(s, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				f.Dietary = append(f.Dietary, tag)
			}
		}
	}
	if s := r.URL.Query().Get("max_time"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return f, errBadParam("max_time must be a non-negative integer")
		}
		f.MaxTime = n
	}
	f.Difficulty = r.URL.Query().Get("difficulty")
	if s := r.URL.Query().Get("min_rating"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v < 0 {
			return f, errBadParam("min_rating must be a non-negative number")
		}
		f.MinRating = v
	}
	return f, nil
}

type errBadParam string

func (e errBadParam) Error() string { return string(e) }

func jsonOK(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg}) //nolint:errcheck
}
