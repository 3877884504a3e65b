// Package debounce delays an action until input has been quiet for a window.
//
// Timers go through the Clock interface so the caller chooses where callbacks
// run: SystemClock uses time.AfterFunc, ManualClock is advanced by tests, and
// the terminal UI supplies a clock that delivers callbacks as bubbletea
// messages on its event loop.
package debounce
