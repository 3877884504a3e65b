package fixture

import (
	"path/filepath"
	"slices"
	"testing"

	"github.com/five82/reel/internal/catalog"
	"github.com/five82/reel/internal/genre"
)

func loadTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Load(filepath.Join("testdata", "catalog.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return c
}

func ids(items []catalog.Title) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestCatalog_Titles(t *testing.T) {
	c := loadTestCatalog(t)

	cases := []struct {
		name   string
		kind   catalog.Kind
		filter Filter
		want   []string
	}{
		{name: "all ascending ignores case", kind: catalog.Movie, want: []string{"m2", "m6", "m4", "m5", "m3", "m1"}},
		{name: "descending", kind: catalog.Movie, filter: Filter{Order: catalog.Descending}, want: []string{"m1", "m3", "m5", "m4", "m6", "m2"}},
		{name: "text folds case and accents stay", kind: catalog.Movie, filter: Filter{Text: "  AMÉ "}, want: []string{"m2"}},
		{name: "genre is a loose substring", kind: catalog.Movie, filter: Filter{Genre: "Action"}, want: []string{"m6", "m4", "m3"}},
		{name: "year from number or string", kind: catalog.Movie, filter: Filter{Year: 1995}, want: []string{"m4"}},
		{name: "country", kind: catalog.Movie, filter: Filter{Country: "FR"}, want: []string{"m2", "m5"}},
		{name: "combined", kind: catalog.Movie, filter: Filter{Genre: "Drame", Country: "US"}, want: []string{"m4", "m1"}},
		{name: "series", kind: catalog.Series, want: []string{"s1", "s2"}},
		{name: "no match", kind: catalog.Series, filter: Filter{Text: "zzz"}, want: []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ids(c.Titles(tc.kind, tc.filter))
			if !slices.Equal(got, tc.want) {
				t.Fatalf("Titles = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCatalog_LooseGenreNeedsReconciliation(t *testing.T) {
	c := loadTestCatalog(t)
	items := c.Titles(catalog.Movie, Filter{Genre: "Action"})

	var exact []string
	for _, it := range items {
		if genre.Contains(it.Genre, "Action") {
			exact = append(exact, it.ID)
		}
	}
	if want := []string{"m4", "m3"}; !slices.Equal(exact, want) {
		t.Fatalf("exact matches = %v, want %v", exact, want)
	}
}

func TestCatalog_Facets(t *testing.T) {
	c := loadTestCatalog(t)
	f := c.Facets(catalog.Movie)

	wantGenres := []string{
		"Action & Aventure, Science-Fiction",
		"Action/Drame",
		"Comédie & Romance",
		"Drame",
		"Drame & Thriller",
		"Science-Fiction & Action-Aventure",
	}
	if !slices.Equal(f.Genres, wantGenres) {
		t.Fatalf("Genres = %q, want %q", f.Genres, wantGenres)
	}
	if got, want := f.YearStrings(), []string{"2015", "2009", "2007", "2001", "1995"}; !slices.Equal(got, want) {
		t.Fatalf("Years = %v, want %v", got, want)
	}
	if want := []string{"AU", "FR", "US"}; !slices.Equal(f.Countries, want) {
		t.Fatalf("Countries = %v, want %v", f.Countries, want)
	}
}

func TestCatalog_DetailsAndRecommendations(t *testing.T) {
	c := loadTestCatalog(t)

	d, ok := c.Details(catalog.Movie, "m1")
	if !ok {
		t.Fatal("Details(m1) not found")
	}
	if d.Directors != "David Fincher" || d.Year != "2007" {
		t.Fatalf("Details = %+v", d)
	}
	if _, ok := c.Details(catalog.Series, "m1"); ok {
		t.Fatal("Details found a movie id under series")
	}

	recs, ok := c.Recommendations(catalog.Movie, "m1", 0)
	if !ok {
		t.Fatal("Recommendations(m1) not found")
	}
	if got, want := ids(recs), []string{"m4", "m5"}; !slices.Equal(got, want) {
		t.Fatalf("Recommendations = %v, want %v", got, want)
	}
	recs, _ = c.Recommendations(catalog.Movie, "m1", 1)
	if got := ids(recs); !slices.Equal(got, []string{"m4"}) {
		t.Fatalf("Recommendations limit 1 = %v", got)
	}
	if _, ok := c.Recommendations(catalog.Movie, "nope", 3); ok {
		t.Fatal("Recommendations for unknown id reported ok")
	}
}

func TestParse(t *testing.T) {
	c, err := Parse([]byte(`{"films": [{"title": "A"}, {"title": "B", "id": "b"}]}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.Len(catalog.Movie) != 2 {
		t.Fatalf("Len = %d, want 2", c.Len(catalog.Movie))
	}
	if _, ok := c.Details(catalog.Movie, "movie-1"); !ok {
		t.Fatal("missing id was not filled in")
	}

	for _, bad := range []string{`{"podcast": []}`, `{"movie": [`, `[]`} {
		if _, err := Parse([]byte(bad)); err == nil {
			t.Errorf("Parse(%s) succeeded, want error", bad)
		}
	}
}
