package fixture

import (
	"cmp"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"golang.org/x/text/cases"

	"github.com/five82/reel/internal/catalog"
	"github.com/five82/reel/internal/genre"
)

// Catalog is an in-memory copy of the catalog file. It is read-only after
// Parse and safe for concurrent use.
type Catalog struct {
	items map[catalog.Kind][]catalog.Details
}

// Filter selects titles the way /api/titles does.
type Filter struct {
	Text    string
	Genre   string
	Year    int // zero means any
	Country string
	Order   catalog.Order
}

// Load reads a catalog file of the form {"movie": [...], "series": [...]}.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes catalog JSON.
func Parse(data []byte) (*Catalog, error) {
	var raw map[string][]catalog.Details
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	c := &Catalog{items: make(map[catalog.Kind][]catalog.Details, len(raw))}
	for key, items := range raw {
		kind, err := catalog.ParseKind(key)
		if err != nil {
			return nil, fmt.Errorf("parse catalog: %w", err)
		}
		for i := range items {
			if items[i].ID == "" {
				items[i].ID = fmt.Sprintf("%s-%d", kind, i+1)
			}
		}
		c.items[kind] = append(c.items[kind], items...)
	}
	return c, nil
}

// Len is the number of titles of kind.
func (c *Catalog) Len(kind catalog.Kind) int {
	return len(c.items[kind])
}

// Titles returns the titles of kind matching f, sorted by title without
// regard to case. Genre matches loosely: any title whose combined genre
// string contains f.Genre is returned, so "Action" also matches
// "Action & Aventure" and "Science-Fiction & Action-Aventure".
func (c *Catalog) Titles(kind catalog.Kind, f Filter) []catalog.Title {
	fold := cases.Fold()
	text := fold.String(strings.TrimSpace(f.Text))
	genreNeedle := fold.String(strings.TrimSpace(f.Genre))

	out := make([]catalog.Title, 0, len(c.items[kind]))
	for _, it := range c.items[kind] {
		if text != "" && !strings.Contains(fold.String(it.Title.Title), text) {
			continue
		}
		if genreNeedle != "" && !strings.Contains(fold.String(it.Genre), genreNeedle) {
			continue
		}
		if f.Year != 0 && yearOf(it.Year) != f.Year {
			continue
		}
		if f.Country != "" && it.Country != f.Country {
			continue
		}
		out = append(out, it.Title)
	}

	slices.SortStableFunc(out, func(a, b catalog.Title) int {
		return cmp.Compare(fold.String(a.Title), fold.String(b.Title))
	})
	if f.Order == catalog.Descending {
		slices.Reverse(out)
	}
	return out
}

// Facets lists the distinct raw genre strings, the distinct years from
// newest to oldest and the distinct countries.
func (c *Catalog) Facets(kind catalog.Kind) catalog.Facets {
	genres := map[string]struct{}{}
	years := map[int]struct{}{}
	countries := map[string]struct{}{}
	for _, it := range c.items[kind] {
		if it.Genre != "" {
			genres[it.Genre] = struct{}{}
		}
		if y := yearOf(it.Year); y != 0 {
			years[y] = struct{}{}
		}
		if it.Country != "" {
			countries[it.Country] = struct{}{}
		}
	}

	facets := catalog.Facets{
		Genres:    sortedKeys(genres),
		Years:     make([]catalog.Year, 0, len(years)),
		Countries: sortedKeys(countries),
	}
	ys := make([]int, 0, len(years))
	for y := range years {
		ys = append(ys, y)
	}
	slices.Sort(ys)
	slices.Reverse(ys)
	for _, y := range ys {
		facets.Years = append(facets.Years, catalog.Year(strconv.Itoa(y)))
	}
	return facets
}

// Details looks up a title by id.
func (c *Catalog) Details(kind catalog.Kind, id string) (catalog.Details, bool) {
	for _, it := range c.items[kind] {
		if it.ID == id {
			return it, true
		}
	}
	return catalog.Details{}, false
}

// Recommendations returns up to limit other titles of kind that share a
// genre with id, in catalog order.
func (c *Catalog) Recommendations(kind catalog.Kind, id string, limit int) ([]catalog.Title, bool) {
	src, ok := c.Details(kind, id)
	if !ok {
		return nil, false
	}
	if limit <= 0 {
		limit = catalog.DefaultRecommendations
	}
	tokens := genre.Tokenize(src.Genre)

	out := []catalog.Title{}
	for _, it := range c.items[kind] {
		if len(out) == limit {
			break
		}
		if it.ID == id {
			continue
		}
		if slices.ContainsFunc(tokens, func(g string) bool { return genre.Contains(it.Genre, g) }) {
			out = append(out, it.Title)
		}
	}
	return out, true
}

func yearOf(y catalog.Year) int {
	n, err := strconv.Atoi(strings.TrimSpace(string(y)))
	if err != nil {
		return 0
	}
	return n
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
