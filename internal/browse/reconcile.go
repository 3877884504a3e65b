package browse

import (
	"github.com/five82/reel/internal/catalog"
	"github.com/five82/reel/internal/genre"
)

// Reconcile drops titles whose genre tokens do not include g. The backend
// matches genres loosely, so a request for "Drame" can return titles tagged
// only "Drame psychologique"; this narrows the response to exact token
// matches. An empty g returns items unchanged.
func Reconcile(items []catalog.Title, g string) []catalog.Title {
	if g == "" {
		return items
	}
	kept := make([]catalog.Title, 0, len(items))
	for _, item := range items {
		if genre.Contains(item.Genre, g) {
			kept = append(kept, item)
		}
	}
	return kept
}
