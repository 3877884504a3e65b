package catalog

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Kind selects the catalog a request targets.
type Kind string

const (
	Movie  Kind = "movie"
	Series Kind = "series"
)

// ParseKind maps user input onto a Kind. Empty input means Movie.
func ParseKind(raw string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "movie", "movies", "film", "films":
		return Movie, nil
	case "series", "serie", "show", "shows", "tv":
		return Series, nil
	default:
		return "", fmt.Errorf("unknown content type %q", raw)
	}
}

// Other returns the opposite content type.
func (k Kind) Other() Kind {
	if k == Series {
		return Movie
	}
	return Series
}

// Label is the human readable plural used in headers.
func (k Kind) Label() string {
	if k == Series {
		return "Series"
	}
	return "Movies"
}

// Year is a release year as the API sends it. The backend emits integers but
// some catalogs carry strings, and missing years arrive as null.
type Year string

// UnmarshalJSON accepts a JSON number, a JSON string or null.
func (y *Year) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*y = ""
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*y = Year(strings.TrimSpace(s))
		return nil
	}
	if c := trimmed[0]; c != '-' && (c < '0' || c > '9') {
		return fmt.Errorf("year: unexpected value %s", trimmed)
	}
	if i, err := strconv.ParseInt(string(trimmed), 10, 64); err == nil {
		*y = Year(strconv.FormatInt(i, 10))
		return nil
	}
	if _, err := strconv.ParseFloat(string(trimmed), 64); err != nil {
		return fmt.Errorf("year: %w", err)
	}
	*y = Year(trimmed)
	return nil
}

// MarshalJSON writes numeric years as numbers and anything else as a string.
func (y Year) MarshalJSON() ([]byte, error) {
	if y == "" {
		return []byte("null"), nil
	}
	if _, err := strconv.Atoi(string(y)); err == nil {
		return []byte(y), nil
	}
	return json.Marshal(string(y))
}

func (y Year) String() string {
	return string(y)
}

// Title is one catalog entry as returned by /api/titles and /api/recommendations.
type Title struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Genre     string `json:"genre"`
	Year      Year   `json:"year"`
	PosterURL string `json:"poster_url"`
	Country   string `json:"country,omitempty"`
}

// TitleList mirrors the /api/titles envelope.
type TitleList struct {
	Total int     `json:"total"`
	Items []Title `json:"items"`
}

// Facets mirrors /api/filters. Genres are the raw combined strings found in
// the catalog; callers tokenize them before display.
type Facets struct {
	Genres    []string `json:"genres"`
	Years     []Year   `json:"years"`
	Countries []string `json:"countries,omitempty"`
}

// YearStrings returns the years in the order the API sent them, without blanks.
func (f Facets) YearStrings() []string {
	out := make([]string, 0, len(f.Years))
	for _, y := range f.Years {
		if y == "" {
			continue
		}
		out = append(out, string(y))
	}
	return out
}

// Details mirrors /api/details.
type Details struct {
	Title
	Synopsis    string `json:"synopsis"`
	Duration    string `json:"duration"`
	ReleaseDate string `json:"release_date"`
	Directors   string `json:"directors"`
	Actors      string `json:"actors"`
}

// DirectorsLabel names the credit line for the content type.
func (d Details) DirectorsLabel(kind Kind) string {
	if kind == Series {
		return "Creator(s)"
	}
	return "Director(s)"
}
