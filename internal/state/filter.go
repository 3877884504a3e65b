package state

import (
	"strings"

	"github.com/five82/reel/internal/catalog"
)

// Sort is the title ordering chosen by the user.
type Sort int

const (
	Ascending Sort = iota
	Descending
)

// Order maps the sort onto its wire value.
func (s Sort) Order() catalog.Order {
	if s == Descending {
		return catalog.Descending
	}
	return catalog.Ascending
}

// Toggle flips the direction.
func (s Sort) Toggle() Sort {
	if s == Descending {
		return Ascending
	}
	return Descending
}

func (s Sort) String() string {
	if s == Descending {
		return "Z→A"
	}
	return "A→Z"
}

// Filter is the user's current selection. Empty Query, Genre and Year mean
// "no constraint". Page is 1-based.
type Filter struct {
	Query string
	Genre string
	Year  string
	Sort  Sort
	Page  int
}

// DefaultFilter is the state of a fresh session and of a reset.
func DefaultFilter() Filter {
	return Filter{Sort: Ascending, Page: 1}
}

// WithQuery returns f with a new search text and the page rewound.
func (f Filter) WithQuery(q string) Filter {
	f.Query = q
	f.Page = 1
	return f
}

// WithGenre returns f with a new genre and the page rewound.
func (f Filter) WithGenre(g string) Filter {
	f.Genre = g
	f.Page = 1
	return f
}

// WithYear returns f with a new year and the page rewound.
func (f Filter) WithYear(y string) Filter {
	f.Year = y
	f.Page = 1
	return f
}

// WithSort returns f with a new sort and the page rewound.
func (f Filter) WithSort(s Sort) Filter {
	f.Sort = s
	f.Page = 1
	return f
}

// Clamp keeps Page within [1, totalPages].
func (f Filter) Clamp(totalPages int) Filter {
	if totalPages < 1 {
		totalPages = 1
	}
	switch {
	case f.Page < 1:
		f.Page = 1
	case f.Page > totalPages:
		f.Page = totalPages
	}
	return f
}

// Active reports whether any constraint is set.
func (f Filter) Active() bool {
	return strings.TrimSpace(f.Query) != "" || f.Genre != "" || f.Year != ""
}

// TitleQuery builds the request for f. The search text is trimmed so that
// whitespace-only input is the same as no input.
func (f Filter) TitleQuery(kind catalog.Kind) catalog.TitleQuery {
	return catalog.TitleQuery{
		Kind:  kind,
		Order: f.Sort.Order(),
		Text:  strings.TrimSpace(f.Query),
		Genre: f.Genre,
		Year:  f.Year,
	}
}
