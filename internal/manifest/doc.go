// Package manifest parses and validates the YAML composition document: the
// declarative description of tracks, clips, and subtitles that a task
// renders into one output file.
//
// Validation is deliberately front-loaded. Everything that can fail fast
// does: timecode syntax, span ordering, clip windows, and the closed
// extension/shrink policy enumerations are all checked at load, before any
// external tool runs.
package manifest
