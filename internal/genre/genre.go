package genre

import (
	"slices"
	"strings"

	"github.com/five82/reel/internal/catalog"
)

// Tokenize splits a combined genre string such as "Action & Drame, Thriller"
// into its single-genre tokens. Segments are trimmed and empty ones dropped.
// Order is preserved and duplicates are kept.
func Tokenize(raw string) []string {
	if raw == "" {
		return nil
	}
	var tokens []string
	for _, part := range strings.FieldsFunc(raw, isDelimiter) {
		if token := strings.TrimSpace(part); token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

func isDelimiter(r rune) bool {
	return r == '&' || r == ',' || r == '/'
}

// Contains reports whether genre is one of the tokens of raw.
func Contains(raw, genre string) bool {
	return slices.Contains(Tokenize(raw), genre)
}

// Unique tokenizes every raw string, deduplicates the tokens exactly and
// returns them sorted with cmp. A nil cmp sorts in byte order.
func Unique(raw []string, cmp Compare) []string {
	if cmp == nil {
		cmp = Binary
	}
	seen := make(map[string]struct{})
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		for _, token := range Tokenize(s) {
			if _, ok := seen[token]; ok {
				continue
			}
			seen[token] = struct{}{}
			out = append(out, token)
		}
	}
	slices.SortFunc(out, cmp)
	return out
}

// FromTitles builds the genre list from the titles' own genre fields.
func FromTitles(items []catalog.Title, cmp Compare) []string {
	raw := make([]string, 0, len(items))
	for _, item := range items {
		raw = append(raw, item.Genre)
	}
	return Unique(raw, cmp)
}
