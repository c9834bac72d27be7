package skills

import "strings"

// Normalizer maps raw skill spellings onto canonical skill identities.
// It owns the only alias table in the process and is safe for concurrent use.
type Normalizer struct {
	aliases map[string]string
}

// NewNormalizer builds a Normalizer over an alias table. Keys and values are
// lower-cased and trimmed. Callers are expected to pass a chain-free table
// (catalog validation guarantees it), which keeps Normalize idempotent.
func NewNormalizer(aliases map[string]string) *Normalizer {
	table := make(map[string]string, len(aliases))
	for alias, canonical := range aliases {
		a := clean(alias)
		c := clean(canonical)
		if a == "" || c == "" {
			continue
		}
		table[a] = c
	}
	return &Normalizer{aliases: table}
}

// Normalize lower-cases and trims raw and resolves it through the alias table.
// Unknown spellings are returned as their own identity. Empty input stays empty.
func (n *Normalizer) Normalize(raw string) string {
	s := clean(raw)
	if n == nil || s == "" {
		return s
	}
	if canonical, ok := n.aliases[s]; ok {
		return canonical
	}
	return s
}

// NormalizeAll normalizes every entry, drops empties and removes duplicates
// while keeping first-seen order.
func (n *Normalizer) NormalizeAll(raw []string) []string {
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, r := range raw {
		s := n.Normalize(r)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func clean(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
