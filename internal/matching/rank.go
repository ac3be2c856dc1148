package matching

import (
	"math"
	"sort"
	"strings"

	"github.com/samarsajad/recipe-matching/internal/clients"
	"github.com/samarsajad/recipe-matching/internal/ingredient"
)

// Filters are the optional post-match constraints on a pantry query.
// A zero-valued field means "no constraint".
type Filters struct {
	Dietary    []string `json:"dietary,omitempty"`
	MaxTime    int      `json:"max_time,omitempty"`
	Difficulty string   `json:"difficulty,omitempty"`
	MinRating  float64  `json:"min_rating,omitempty"`
}

// allows reports whether a recipe passes every filter: requested
// dietary tags must all be present on the recipe, cook time must not
// exceed MaxTime, difficulty must match case-insensitively, and the
// average rating must reach MinRating.
func (f Filters) allows(r clients.Recipe) bool {
	if len(f.Dietary) > 0 {
		tags := make(map[string]bool, len(r.DietaryTags))
		for _, t := range r.DietaryTags {
			tags[strings.ToLower(t)] = true
		}
		for _, want := range f.Dietary {
			if !tags[strings.ToLower(want)] {
				return false
			}
		}
	}
	if f.MaxTime > 0 && r.CookMinutes > f.MaxTime {
		return false
	}
	if f.Difficulty != "" && !strings.EqualFold(r.Difficulty, f.Difficulty) {
		return false
	}
	if f.MinRating > 0 && r.AvgRating < f.MinRating {
		return false
	}
	return true
}

// Result is one recipe scored against a pantry query.
type Result struct {
	Recipe  clients.Recipe `json:"recipe"`
	Score   float64        `json:"match_score"`
	Matched []string       `json:"matching_ingredients"`
	Missing []string       `json:"missing_ingredients"`
}

// profile is the derived ingredient view of one recipe for one ranking
// pass: canonical tokens, the main subset, their lemmas, and the summed
// rarity weight of all tokens.
type profile struct {
	tokens      []string
	main        []string
	lemmas      map[string]string
	totalWeight float64
}

func buildProfile(r clients.Recipe, weights *ingredient.WeightTable) profile {
	n := ingredient.Normalize(r.Ingredients)
	p := profile{
		tokens: n.Tokens,
		main:   n.Main,
		lemmas: make(map[string]string, len(n.Tokens)),
	}
	for _, tok := range n.Tokens {
		p.lemmas[tok] = ingredient.Lemmatize(tok)
		p.totalWeight += weights.Weight(tok)
	}
	return p
}

// Rank scores every recipe against an already-canonicalized pantry
// token set and returns the qualifying, filter-passing results ordered
// by score descending. Equal scores keep corpus order (the sort is
// stable); callers wanting a different tie-break must order the corpus
// slice accordingly.
//
// An empty pantry yields an empty result list: there is nothing to
// match against.
func Rank(pantry []string, f Filters, recipes []clients.Recipe, weights *ingredient.WeightTable) []Result {
	results := make([]Result, 0, len(recipes))
	if len(pantry) == 0 {
		return results
	}

	pantryLemmas := make([]string, len(pantry))
	for i, tok := range pantry {
		pantryLemmas[i] = ingredient.Lemmatize(tok)
	}

	for _, recipe := range recipes {
		p := buildProfile(recipe, weights)

		// Qualification gate: at least one main recipe token must
		// match some pantry token, or garnish-level overlap alone
		// would surface the recipe.
		if !anyMatch(pantryLemmas, p.main, p.lemmas) {
			continue
		}

		matched := make([]string, 0, len(p.tokens))
		missing := make([]string, 0, len(p.tokens))
		matchedWeight := 0.0
		for _, tok := range p.tokens {
			if matchesAny(pantryLemmas, p.lemmas[tok]) {
				matched = append(matched, tok)
				matchedWeight += weights.Weight(tok)
			} else {
				missing = append(missing, tok)
			}
		}

		score := 0.0
		if p.totalWeight > 0 {
			score = matchedWeight / p.totalWeight
		}
		score = math.Min(math.Max(score, 0), 1)

		if !f.allows(recipe) {
			continue
		}

		results = append(results, Result{
			Recipe:  recipe,
			Score:   roundScore(score),
			Matched: matched,
			Missing: missing,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

func anyMatch(pantryLemmas, tokens []string, lemmas map[string]string) bool {
	for _, tok := range tokens {
		if matchesAny(pantryLemmas, lemmas[tok]) {
			return true
		}
	}
	return false
}

func matchesAny(pantryLemmas []string, recipeLemma string) bool {
	for _, pl := range pantryLemmas {
		if ingredient.MatchesLemmatized(pl, recipeLemma) {
			return true
		}
	}
	return false
}

// roundScore rounds to 2 decimals at the output boundary.
func roundScore(s float64) float64 {
	return math.Round(s*100) / 100
}
