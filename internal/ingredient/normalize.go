package ingredient

import "strings"

// TokenInfo collects what is known about one canonical token after
// normalization: whether any occurrence was flagged main, and every
// original spelling that collapsed into it.
type TokenInfo struct {
	IsMain    bool
	Originals map[string]struct{}
}

// Normalized is the canonical view of a recipe's ingredient list.
// Tokens and Main preserve first-seen order so that downstream output
// is deterministic for a given entry list.
type Normalized struct {
	Tokens []string
	Main   []string
	Info   map[string]TokenInfo
}

// Canonical reduces an ingredient name to its token form: trimmed and
// lowercased. Equality on tokens is therefore case-insensitive by
// construction.
func Canonical(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Normalize collapses raw entries into canonical tokens. Entries with a
// blank name are dropped. When the same token appears more than once,
// IsMain is the OR of all occurrences and original spellings accumulate
// into a set.
func Normalize(entries []Entry) Normalized {
	n := Normalized{Info: make(map[string]TokenInfo, len(entries))}

	for _, e := range entries {
		tok := Canonical(e.Name)
		if tok == "" {
			continue
		}

		info, seen := n.Info[tok]
		if !seen {
			info = TokenInfo{Originals: make(map[string]struct{}, 1)}
			n.Tokens = append(n.Tokens, tok)
		}
		info.IsMain = info.IsMain || e.IsMain
		info.Originals[e.Name] = struct{}{}
		n.Info[tok] = info
	}

	for _, tok := range n.Tokens {
		if n.Info[tok].IsMain {
			n.Main = append(n.Main, tok)
		}
	}
	return n
}

// NormalizeQuery canonicalizes a caller-supplied pantry list: trim,
// lowercase, drop blanks, dedupe preserving first-seen order.
func NormalizeQuery(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		tok := Canonical(s)
		if tok == "" {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}
