package ingredient

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// DefaultWeight is used for tokens absent from the table, e.g.
// ingredients added to the catalog since the last rebuild. Unknown
// ingredients are treated as moderately distinctive rather than
// zero-value.
const DefaultWeight = 1.0

// WeightTable maps canonical tokens to rarity weights derived from
// inverse document frequency over a recipe corpus. A table is an
// immutable snapshot: it is built (or loaded) once and swapped as a
// whole when the corpus is rescanned, never updated in place.
type WeightTable struct {
	weights map[string]float64
	recipes int
}

// BuildWeights scans every recipe's ingredient list and computes
// weight(t) = ln(N / df(t)), where N is the recipe count and df(t) the
// number of recipes containing t. A recipe using an ingredient twice
// counts once, so a token present in every recipe gets weight 0 and
// df(t) >= 1 holds for every token in the table.
func BuildWeights(ingredientLists [][]Entry) *WeightTable {
	df := make(map[string]int)
	for _, entries := range ingredientLists {
		for _, tok := range Normalize(entries).Tokens {
			df[tok]++
		}
	}

	t := &WeightTable{
		weights: make(map[string]float64, len(df)),
		recipes: len(ingredientLists),
	}
	n := float64(t.recipes)
	for tok, count := range df {
		t.weights[tok] = math.Log(n / float64(count))
	}
	return t
}

// NewWeightTable wraps an existing flat token→weight mapping, e.g. one
// loaded from a side file.
func NewWeightTable(weights map[string]float64) *WeightTable {
	if weights == nil {
		weights = map[string]float64{}
	}
	return &WeightTable{weights: weights}
}

// Weight returns the rarity weight for a canonical token. Tokens absent
// from the table, and every token on a nil table, weigh DefaultWeight.
func (t *WeightTable) Weight(token string) float64 {
	if t == nil {
		return DefaultWeight
	}
	if w, ok := t.weights[token]; ok {
		return w
	}
	return DefaultWeight
}

// Len returns the number of tokens in the table.
func (t *WeightTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.weights)
}

// Save writes the table to path as a flat token→weight JSON object.
func (t *WeightTable) Save(path string) error {
	data, err := json.MarshalIndent(t.weights, "", "  ")
	if err != nil {
		return fmt.Errorf("encode weights: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write weights: %w", err)
	}
	return nil
}

// LoadWeights reads a table previously written by Save.
func LoadWeights(path string) (*WeightTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read weights: %w", err)
	}
	var weights map[string]float64
	if err := json.Unmarshal(data, &weights); err != nil {
		return nil, fmt.Errorf("decode weights: %w", err)
	}
	return NewWeightTable(weights), nil
}
