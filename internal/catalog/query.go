package catalog

import (
	"net/url"
	"strings"
)

// Order is the wire value of the sort direction.
type Order string

const (
	Ascending  Order = "asc"
	Descending Order = "desc"
)

// TitleQuery configures /api/titles requests. Empty optional fields are left
// out of the request entirely; the backend reads absence as "no constraint".
type TitleQuery struct {
	Kind  Kind
	Order Order
	Text  string
	Genre string
	Year  string
}

// Values encodes the query parameters. type and order are always present.
func (q TitleQuery) Values() url.Values {
	values := url.Values{}
	values.Set("type", string(q.Kind))
	order := q.Order
	if order != Descending {
		order = Ascending
	}
	values.Set("order", string(order))
	if text := strings.TrimSpace(q.Text); text != "" {
		values.Set("q", text)
	}
	if q.Genre != "" {
		values.Set("genre", q.Genre)
	}
	if q.Year != "" {
		values.Set("year", q.Year)
	}
	return values
}
