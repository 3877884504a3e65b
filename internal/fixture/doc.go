// Package fixture serves a catalog file over the catalog HTTP API so the
// browser can run without the real backend.
//
// The file holds one array of title records per content type:
//
//	{"movie": [{"id": "m1", "title": "Zodiac", "genre": "Drame & Thriller", "year": 2007}],
//	 "series": [...]}
//
// Routes mirror the backend: /api/filters, /api/titles, /api/details,
// /api/recommendations and /ping. Like the backend, the genre filter on
// /api/titles is a loose substring match, so clients still have to
// reconcile results against the exact genre token.
package fixture
