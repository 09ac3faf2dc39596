// Package faults defines the error taxonomy shared across the composition
// pipeline. Every failure is tagged with one of the exported sentinel errors
// so callers can classify it with errors.Is; all of them abort the current
// task and none are retried.
package faults
