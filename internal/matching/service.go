package matching

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/samarsajad/recipe-matching/internal/clients"
	"github.com/samarsajad/recipe-matching/internal/ingredient"
)

// Query is one "what can I cook?" request: free-text pantry ingredient
// strings plus optional filters. When Ingredients is empty and UserID
// is set, the caller's saved pantry is used instead.
type Query struct {
	UserID      string   `json:"user_id,omitempty"`
	Ingredients []string `json:"ingredients"`
	Filters     Filters  `json:"filters"`
}

// Service ties the collaborators to the ranking core. The weight table
// is an atomically swappable snapshot: ranking passes always read one
// fixed table, and a rebuild installs the new one as a whole.
type Service struct {
	recipes *clients.RecipeClient
	pantry  *clients.PantryClient
	log     *zap.Logger

	weights     atomic.Pointer[ingredient.WeightTable]
	cache       *resultCache
	weightsPath string
}

func New(recipes *clients.RecipeClient, pantry *clients.PantryClient, log *zap.Logger, cacheSize int, weightsPath string) *Service {
	s := &Service{
		recipes:     recipes,
		pantry:      pantry,
		log:         log,
		cache:       newResultCache(cacheSize),
		weightsPath: weightsPath,
	}
	s.weights.Store(ingredient.NewWeightTable(nil))
	return s
}

// LoadWeights reads the weight side file configured at construction.
// On failure the service keeps serving with every token at the default
// weight; a missing file is a degraded mode, not a startup error.
func (s *Service) LoadWeights() {
	if s.weightsPath == "" {
		return
	}
	table, err := ingredient.LoadWeights(s.weightsPath)
	if err != nil {
		s.log.Warn("weight table unavailable, using default weights",
			zap.String("path", s.weightsPath),
			zap.Error(err),
		)
		return
	}
	s.SetWeights(table)
	s.log.Info("weight table loaded",
		zap.String("path", s.weightsPath),
		zap.Int("tokens", table.Len()),
	)
}

// SetWeights installs a new snapshot and purges the result cache, since
// cached rankings were computed under the old weights.
func (s *Service) SetWeights(table *ingredient.WeightTable) {
	s.weights.Store(table)
	s.cache.purge()
}

// Weights returns the current snapshot.
func (s *Service) Weights() *ingredient.WeightTable {
	return s.weights.Load()
}

// Match ranks the corpus against a pantry query, consulting the result
// cache first. Callers must treat the returned slice as read-only; a
// cache hit returns the stored computation.
func (s *Service) Match(ctx context.Context, q Query) ([]Result, error) {
	raw := q.Ingredients
	if len(raw) == 0 && q.UserID != "" {
		saved, err := s.pantry.GetPantry(ctx, q.UserID)
		if err != nil {
			return nil, fmt.Errorf("fetch pantry: %w", err)
		}
		raw = saved
	}

	pantry := ingredient.NormalizeQuery(raw)
	if len(pantry) == 0 {
		return []Result{}, nil
	}

	key := cacheKey(pantry, q.Filters)
	if results, ok := s.cache.get(key); ok {
		s.log.Debug("match cache hit", zap.String("key", key))
		return results, nil
	}

	recipes, err := s.recipes.GetRecipes(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch recipes: %w", err)
	}

	results := Rank(pantry, q.Filters, recipes, s.Weights())
	s.cache.put(key, results)

	s.log.Info("ranked corpus",
		zap.Int("recipes", len(recipes)),
		zap.Int("pantry_tokens", len(pantry)),
		zap.Int("results", len(results)),
	)
	return results, nil
}

// RebuildWeights rescans the corpus, builds a fresh weight table, swaps
// it in, and persists it to the configured side file. Returns the token
// count of the new table.
func (s *Service) RebuildWeights(ctx context.Context) (int, error) {
	recipes, err := s.recipes.GetRecipes(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch recipes: %w", err)
	}

	lists := make([][]ingredient.Entry, len(recipes))
	for i, r := range recipes {
		lists[i] = r.Ingredients
	}
	table := ingredient.BuildWeights(lists)

	if s.weightsPath != "" {
		if err := table.Save(s.weightsPath); err != nil {
			return 0, fmt.Errorf("persist weights: %w", err)
		}
	}

	s.SetWeights(table)
	s.log.Info("weight table rebuilt",
		zap.Int("recipes", len(recipes)),
		zap.Int("tokens", table.Len()),
	)
	return table.Len(), nil
}

// SearchByName returns recipes whose name contains the query,
// case-insensitively, after applying the same filters ranking uses.
func (s *Service) SearchByName(ctx context.Context, query string, f Filters) ([]clients.Recipe, error) {
	recipes, err := s.recipes.GetRecipes(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch recipes: %w", err)
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	found := make([]clients.Recipe, 0)
	for _, r := range recipes {
		if !strings.Contains(strings.ToLower(r.Name), needle) {
			continue
		}
		if !f.allows(r) {
			continue
		}
		found = append(found, r)
	}
	return found, nil
}

// Rate validates a star rating and forwards it to the catalog service,
// which owns the running average. Returns nil if the recipe is unknown.
func (s *Service) Rate(ctx context.Context, recipeID string, rating int) (*clients.RatingResult, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5 stars")
	}
	return s.recipes.SubmitRating(ctx, recipeID, rating)
}

// Stats reports the weight-table size and cache counters.
func (s *Service) Stats() map[string]any {
	return map[string]any{
		"weight_tokens": s.Weights().Len(),
		"cache":         s.cache.stats(),
	}
}
