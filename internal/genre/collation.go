package genre

import (
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Compare orders two display strings. It returns a negative number when a
// sorts before b, zero when they are equal and a positive number otherwise.
type Compare func(a, b string) int

// Binary orders strings by their bytes.
func Binary(a, b string) int {
	return strings.Compare(a, b)
}

// DefaultLocale is the display language of the catalog.
var DefaultLocale = language.French

// Collation returns a locale-aware Compare for tag. Accents are secondary
// differences, so "Émotion" sorts between "Drame" and "Western" in French.
// A collate.Collator is not safe for concurrent use; the returned function
// serializes access to it.
func Collation(tag language.Tag) Compare {
	c := collate.New(tag)
	var mu sync.Mutex
	return func(a, b string) int {
		mu.Lock()
		defer mu.Unlock()
		return c.CompareString(a, b)
	}
}
