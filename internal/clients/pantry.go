package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// pantryDocument mirrors the pantry service's response: the free-text
// ingredient strings a user last saved.
type pantryDocument struct {
	Ingredients []string `json:"ingredients"`
}

type PantryClient struct {
	baseURL string
	http    *http.Client
}

func NewPantryClient(baseURL string) *PantryClient {
	return &PantryClient{baseURL: baseURL, http: &http.Client{}}
}

// GetPantry fetches the saved pantry for a user. Returns nil without
// error when the user has never saved one (404), so callers can treat
// an absent pantry as empty.
func (c *PantryClient) GetPantry(ctx context.Context, userID string) ([]string, error) {
	u := c.baseURL + "/pantry?user_id=" + url.QueryEscape(userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pantry service returned %d", resp.StatusCode)
	}

	var doc pantryDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return doc.Ingredients, nil
}
