// Package browse is the page controller of the catalog browser.
//
// A Controller owns one filter session for a content type. It turns user
// actions into filter transitions, decides when a request goes out, and
// commits responses in issue order:
//
//	SetGenre / SetYear / SetSort / Reset   page=1, request now
//	SetQuery                               page=1, request after SearchWindow of quiet
//	NextPage / PrevPage                    move within [1, TotalPages], no request
//	Apply(result)                          commit unless stale, page=1
//
// Requests are not executed by the controller itself. It hands a Refresh to
// a Launcher, which runs Fetch wherever it likes and passes the Result back
// to Apply. The terminal UI launches them as bubbletea commands so every
// commit happens on its event loop.
//
// Fetch reconciles the response with the genre the request carried: the
// backend matches genres loosely, and only titles whose tokenized genre
// contains the selected genre are kept.
//
// Paginate is pure; PageSize titles per page, at least one page.
package browse
