package browse

import (
	"context"
	"fmt"

	"github.com/five82/reel/internal/catalog"
	"github.com/five82/reel/internal/genre"
)

// Facets are the picker choices for one content type.
type Facets struct {
	Genres []string
	Years  []string
}

// LoadFacets fetches the facet lists for kind and tokenizes the genres.
// Years keep the order the API sends.
func LoadFacets(ctx context.Context, fetcher catalog.TitleFetcher, kind catalog.Kind, cmp genre.Compare) (Facets, error) {
	raw, err := fetcher.FetchFacets(ctx, kind)
	if err != nil {
		return Facets{}, fmt.Errorf("load %s filters: %w", kind, err)
	}
	return Facets{
		Genres: genre.Unique(raw.Genres, cmp),
		Years:  raw.YearStrings(),
	}, nil
}

// FacetsFromTitles derives the genre list from loaded titles. It is the
// fallback when the facet endpoint is unavailable.
func FacetsFromTitles(items []catalog.Title, cmp genre.Compare) Facets {
	return Facets{Genres: genre.FromTitles(items, cmp)}
}

// Cycle returns the choice after current in choices, with "" (no constraint)
// before the first entry. A negative step walks backwards.
func Cycle(choices []string, current string, step int) string {
	n := len(choices) + 1
	idx := 0
	for i, c := range choices {
		if c == current {
			idx = i + 1
			break
		}
	}
	idx = ((idx+step)%n + n) % n
	if idx == 0 {
		return ""
	}
	return choices[idx-1]
}
