// Package logging configures slog for the stitch CLI.
//
// Two output formats are supported: a compact console format for interactive
// use and JSON for machine consumption. Standardized field keys keep
// component, task, track, and clip identifiers consistent across packages.
package logging
