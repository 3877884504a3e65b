// Package ui provides the terminal browser for the Reel catalog.
//
// The UI is a single Bubble Tea model. A browse.Controller owns the filter
// state and the result store; the model renders its current page and
// forwards key presses to it.
//
// # Event Flow
//
//  1. Init issues the first title request and loads the filter facets.
//  2. Filter keys (/, g, y, s, x) change the controller's filter. Each
//     change resets the page to 1 and issues a new request; typing in the
//     search box is debounced.
//  3. Requests run as tea.Cmd values and come back as resultMsg. The
//     controller commits a result only if it belongs to the newest request,
//     so a slow reply can never overwrite a newer one.
//  4. Paging (←/→) slices the committed result set locally.
//
// Debounce timers are delivered through loopClock as tea.Tick messages, so
// every state change happens on the Bubble Tea event loop.
//
// # Key Bindings
//
//   - /: Search titles (esc or enter leaves the box)
//   - g/G: Next/previous genre
//   - y/Y: Next/previous year
//   - s: Toggle A→Z / Z→A
//   - x: Clear all filters
//   - ←/→ or h/l: Previous/next page
//   - ↑/↓: Move the cursor
//   - enter: Open details and recommendations
//   - tab: Switch between movies and series
//   - R: Retry the current request
//   - t: Cycle theme
//   - ?: Toggle full help
//   - q or Ctrl+C: Exit
package ui
