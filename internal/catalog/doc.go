// Package catalog provides an HTTP client for the movie/series catalog API.
//
// # Overview
//
// This package defines the client reel uses to read the remote catalog. It
// handles HTTP communication, JSON decoding, outbound rate limiting and a
// circuit breaker, and exposes typed errors so callers can tell transport
// problems from server answers.
//
// # Architecture
//
// The package is split into four files:
//
//   - client.go: HTTP client, fetch operations, breaker and limiter wiring
//   - query.go: TitleQuery and its parameter encoding
//   - types.go: Data structures mirroring the API payloads
//   - errors.go: NetworkError, RemoteError, MissingParameterError
//
// # Client Usage
//
//	client, err := catalog.NewClient("127.0.0.1:8000", catalog.WithRateLimit(10))
//	if err != nil {
//		return err
//	}
//
//	facets, err := client.FetchFacets(ctx, catalog.Movie)
//	items, err := client.FetchTitles(ctx, catalog.TitleQuery{
//		Kind:  catalog.Movie,
//		Order: catalog.Descending,
//		Genre: "Drame",
//	})
//
// # API Endpoints
//
//   - GET /api/filters?type=: genre and year facets
//   - GET /api/titles?type=&order=[&q=][&genre=][&year=]: matching titles
//   - GET /api/details?type=&id=: full record of one title
//   - GET /api/recommendations?type=&id=&limit=: similar titles
//
// Optional title parameters are omitted when empty. The server treats a
// missing parameter as "no constraint", never as "match the empty value".
//
// # Error Handling
//
//   - *MissingParameterError: a required argument was empty; no request was sent
//   - *NetworkError: no HTTP response (refused, timeout, cancelled, breaker open)
//   - *RemoteError: the server answered with a non-2xx status
//   - "decode response: ...": the body was not the expected JSON
//
// Nothing is retried. Callers decide whether and when to ask again.
//
// # Circuit Breaker
//
// Five consecutive transport failures or 5xx answers open the breaker for
// thirty seconds; calls during that window fail fast with a NetworkError
// wrapping gobreaker.ErrOpenState. 4xx answers and cancelled contexts do not
// count against the backend.
//
// # Years
//
// The backend sends years as integers, some catalogs send strings, and unknown
// years are null. Year accepts all three and exposes the value as a string so
// filter state can hold it verbatim.
package catalog
