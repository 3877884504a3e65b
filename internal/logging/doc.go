// Package logging sets up reel's file logger and reads it back.
//
// # Overview
//
// The TUI owns the terminal, so diagnostics go to a file
// (~/.local/share/reel/logs/reel.log by default) through charmbracelet/log.
// Components receive a *log.Logger; a nil logger anywhere means Discard.
//
// # Reading Log Files
//
// Tail returns the last N lines using a ring buffer, so memory stays
// O(N) regardless of file size. The failure panel uses it to show what went
// wrong with the last refresh:
//
//	lines, err := logging.Tail(cfg.LogPath(), 8)
//
// A missing file is not an error; Tail returns no lines.
package logging
