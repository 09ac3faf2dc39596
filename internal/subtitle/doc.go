// Package subtitle accumulates styled text cues into a single ASS caption
// document for burn-in during the final multiplex.
//
// Styles are deduplicated structurally: two cues with identical parameters
// share one named style record, and the generated name is assigned only when
// a new parameter set is first inserted. Events keep insertion order exactly;
// they are never re-sorted by time.
package subtitle
