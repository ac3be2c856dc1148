package ingredient

import (
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/kljensen/snowball"
	"github.com/tangzero/inflector"
)

// similarityThreshold is the edit-distance ratio above which two
// lemmatized tokens are considered the same ingredient.
const similarityThreshold = 0.75

// Lemmatize reduces a token to its base-inflection form, word by word:
// lowercase, singularize, then stem. "Tomatoes" becomes "tomato",
// "red onions" becomes "red onion". Words the stemmer cannot handle are
// kept as-is rather than dropped.
func Lemmatize(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		w = inflector.Singularize(w)
		if stemmed, err := snowball.Stem(w, "english", true); err == nil && stemmed != "" {
			w = stemmed
		}
		words[i] = w
	}
	return strings.Join(words, " ")
}

// Matches reports whether two ingredient tokens refer to the same
// ingredient, tolerating inflection and partial phrasing. It never
// errors; garbled input simply fails to match.
func Matches(a, b string) bool {
	return MatchesLemmatized(Lemmatize(a), Lemmatize(b))
}

// MatchesLemmatized is Matches for tokens already passed through
// Lemmatize. Callers matching one pantry against many recipes should
// lemmatize once and use this form.
//
// Substring containment is checked before the similarity ratio: it is
// cheap and handles the "qualifier + base ingredient" case ("onion"
// inside "red onion") that the ratio under-scores when the lengths
// differ a lot.
func MatchesLemmatized(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}
	return similarity(a, b) > similarityThreshold
}

// similarity returns a 0.0–1.0 score between two strings using
// Levenshtein distance: 1.0 - distance/max(len(a), len(b)).
func similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	maxLen := len([]rune(a))
	if lb := len([]rune(b)); lb > maxLen {
		maxLen = lb
	}
	if maxLen == 0 {
		return 1.0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(dist)/float64(maxLen)
}
