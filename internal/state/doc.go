// Package state holds the browser's filter selection and its result set.
//
// # Overview
//
// Two pieces live here. Filter is the user's selection (search text, genre,
// year, sort, page) together with the transitions that change it and the
// mapping onto a catalog.TitleQuery. Store is the result set: the titles of
// the last committed refresh plus error bookkeeping.
//
// # Filter Transitions
//
// Filter is a value. Every With* method returns a copy with the field set
// and the page rewound to 1:
//
//	f := state.DefaultFilter()      // ("", "", "", Ascending, 1)
//	f = f.WithGenre("Drame")        // page 1
//	f.Page = 3
//	f = f.WithSort(state.Descending) // page 1 again
//
// Paging itself is not a transition that refetches; callers move Page and
// keep it within bounds with Clamp.
//
// # Ordering Refreshes
//
// Refreshes can overlap: the user changes the genre while a search is still
// in flight. Store orders them with sequence numbers:
//
//	seq := store.Begin()            // 1, 2, 3, ...
//	items, err := fetch(...)
//	applied := store.Commit(seq, items, err)
//
// Commit applies a response only when seq is greater than the sequence of the
// last committed response. A slow response for an old selection therefore
// never overwrites a newer one, whatever order the network delivers them in.
// Rejected commits change nothing.
//
// # Failures
//
// A failed refresh is committed like any other response: the items become
// empty, LastError is set and ConsecutiveFailures grows. The next successful
// commit clears both. There is no automatic retry.
//
// # Concurrency Model
//
// Store uses a readers-writer lock. Begin and Commit take the write lock,
// Snapshot and Pending the read lock. Snapshot returns copies of the item
// slice and error so the UI can hold on to it while new commits arrive.
//
// The zero Store is ready to use.
package state
