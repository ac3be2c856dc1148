package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/samarsajad/recipe-matching/internal/clients"
	"github.com/samarsajad/recipe-matching/internal/matching"
)

const corpusJSON = `[
	{"id": "r1", "name": "Tomato Soup",
	 "ingredients": [{"name": "Tomato", "is_main": true}, {"name": "Onion", "is_main": true}, {"name": "Salt", "is_main": false}],
	 "dietary_restrictions": ["vegan"], "cooking_time_minutes": 50, "difficulty": "Easy", "average_rating": 4.5},
	{"id": "r2", "name": "Garlic Confit",
	 "ingredients": ["onion", "garlic"],
	 "cooking_time_minutes": 20, "difficulty": "Hard", "average_rating": 3.0}
]`

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/recipes":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(corpusJSON)) //nolint:errcheck
		case r.Method == http.MethodPost && r.URL.Path == "/recipes/r1/rate":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"new_average": 4.6, "rating_count": 12}`)) //nolint:errcheck
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(stub.Close)

	svc := matching.New(
		clients.NewRecipeClient(stub.URL),
		clients.NewPantryClient(stub.URL),
		zap.NewNop(),
		8,
		filepath.Join(t.TempDir(), "weights.json"),
	)
	return NewRouter(svc, zap.NewNop())
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestMatchQuery(t *testing.T) {
	router := newTestRouter(t)

	body := `{"ingredients": ["tomato", "onion"], "filters": {"max_time": 60}}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/matches/query", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)

	var results []matching.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	require.Len(t, results, 2)
	assert.Equal(t, "r1", results[0].Recipe.ID)
	assert.Equal(t, "r2", results[1].Recipe.ID)
}

func TestMatchQueryEmptyPantryIsOK(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/matches/query", strings.NewReader(`{"ingredients": []}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String(), "an empty pantry is an empty result, not an error")
}

func TestMatchQueryInvalidBody(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/matches/query", strings.NewReader(`{`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearch(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/recipes/search?q=soup&difficulty=easy", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var found []clients.Recipe
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &found))
	require.Len(t, found, 1)
	assert.Equal(t, "r1", found[0].ID)
}

func TestSearchValidation(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/recipes/search?q=s", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/recipes/search?q=soup&max_time=-1", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRate(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/recipes/r1/rate", strings.NewReader(`{"rating": 5}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	var result clients.RatingResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 4.6, result.NewAverage)
	assert.Equal(t, 12, result.RatingCount)
}

func TestRateValidation(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/recipes/r1/rate", strings.NewReader(`{"rating": 9}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRateUnknownRecipe(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/recipes/missing/rate", strings.NewReader(`{"rating": 4}`)))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRebuildAndStats(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/weights/rebuild", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var rebuilt map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rebuilt))
	assert.Equal(t, 4, rebuilt["tokens"]) // tomato, onion, salt, garlic

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/weights/stats", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var stats map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, float64(4), stats["weight_tokens"])
}
