package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/samarsajad/recipe-matching/internal/ingredient"
)

// Recipe mirrors a recipe record as served by the catalog service.
// Ingredients arrive in either of the two historical wire shapes; the
// ingredient.Entry unmarshaler resolves that at the boundary.
type Recipe struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Ingredients []ingredient.Entry `json:"ingredients"`
	DietaryTags []string           `json:"dietary_restrictions"`
	CookMinutes int                `json:"cooking_time_minutes"`
	Difficulty  string             `json:"difficulty"`
	AvgRating   float64            `json:"average_rating"`
	RatingCount int                `json:"rating_count"`
	ImageURL    string             `json:"image_url,omitempty"`
}

// RatingResult is the catalog's response to a rating submission.
type RatingResult struct {
	NewAverage  float64 `json:"new_average"`
	RatingCount int     `json:"rating_count"`
}

type RecipeClient struct {
	baseURL string
	http    *http.Client
}

func NewRecipeClient(baseURL string) *RecipeClient {
	return &RecipeClient{baseURL: baseURL, http: &http.Client{}}
}

// GetRecipes fetches the full recipe corpus.
func (c *RecipeClient) GetRecipes(ctx context.Context) ([]Recipe, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/recipes", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("recipe service returned %d", resp.StatusCode)
	}

	var recipes []Recipe
	if err := json.NewDecoder(resp.Body).Decode(&recipes); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return recipes, nil
}

// SubmitRating forwards a 1–5 star rating to the catalog service, which
// owns the running-average bookkeeping. Returns nil without error if
// the recipe does not exist.
func (c *RecipeClient) SubmitRating(ctx context.Context, recipeID string, rating int) (*RatingResult, error) {
	body, err := json.Marshal(map[string]int{"rating": rating})
	if err != nil {
		return nil, fmt.Errorf("encode rating: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/recipes/"+recipeID+"/rate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("recipe service returned %d", resp.StatusCode)
	}

	var result RatingResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &result, nil
}
