package catalog

import (
	"net/url"
	"testing"

	"github.com/goccy/go-json"
)

func TestYearUnmarshal(t *testing.T) {
	cases := []struct {
		in   string
		want Year
	}{
		{`2021`, "2021"},
		{`"1999"`, "1999"},
		{`" 2004 "`, "2004"},
		{`null`, ""},
		{`2021.0`, "2021.0"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			var got struct {
				Year Year `json:"year"`
			}
			if err := json.Unmarshal([]byte(`{"year":`+tc.in+`}`), &got); err != nil {
				t.Fatalf("Unmarshal returned error: %v", err)
			}
			if got.Year != tc.want {
				t.Fatalf("Year = %q, want %q", got.Year, tc.want)
			}
		})
	}

	var bad struct {
		Year Year `json:"year"`
	}
	if err := json.Unmarshal([]byte(`{"year":true}`), &bad); err == nil {
		t.Fatalf("expected error for boolean year")
	}
}

func TestYearMarshal(t *testing.T) {
	payload, err := json.Marshal([]Year{"2021", "", "circa 1990"})
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	if string(payload) != `[2021,null,"circa 1990"]` {
		t.Fatalf("payload = %s", payload)
	}
}

func TestParseKind(t *testing.T) {
	cases := map[string]Kind{
		"":        Movie,
		"movie":   Movie,
		" Films ": Movie,
		"series":  Series,
		"TV":      Series,
	}
	for in, want := range cases {
		got, err := ParseKind(in)
		if err != nil {
			t.Fatalf("ParseKind(%q) returned error: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseKind(%q) = %q, want %q", in, got, want)
		}
	}
	if _, err := ParseKind("podcast"); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
	if Movie.Other() != Series || Series.Other() != Movie {
		t.Fatalf("Other did not flip kinds")
	}
}

func TestTitleQueryValues(t *testing.T) {
	cases := []struct {
		name  string
		query TitleQuery
		want  url.Values
	}{
		{
			name:  "defaults omit optional parameters",
			query: TitleQuery{Kind: Movie},
			want:  url.Values{"type": {"movie"}, "order": {"asc"}},
		},
		{
			name:  "descending with every constraint",
			query: TitleQuery{Kind: Series, Order: Descending, Text: "dark", Genre: "Drame", Year: "2017"},
			want:  url.Values{"type": {"series"}, "order": {"desc"}, "q": {"dark"}, "genre": {"Drame"}, "year": {"2017"}},
		},
		{
			name:  "year is sent verbatim",
			query: TitleQuery{Kind: Movie, Year: " 1999 "},
			want:  url.Values{"type": {"movie"}, "order": {"asc"}, "year": {" 1999 "}},
		},
		{
			name:  "whitespace text is absent",
			query: TitleQuery{Kind: Movie, Order: Ascending, Text: "   "},
			want:  url.Values{"type": {"movie"}, "order": {"asc"}},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.query.Values().Encode(); got != tc.want.Encode() {
				t.Fatalf("Values = %q, want %q", got, tc.want.Encode())
			}
		})
	}
}

func TestDirectorsLabel(t *testing.T) {
	var d Details
	if d.DirectorsLabel(Series) != "Creator(s)" || d.DirectorsLabel(Movie) != "Director(s)" {
		t.Fatalf("unexpected labels")
	}
}
