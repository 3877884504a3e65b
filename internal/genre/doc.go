// Package genre turns the catalog's combined genre strings ("Action & Drame")
// into single-genre tokens and builds the sorted, deduplicated genre list shown
// in the filter picker.
package genre
