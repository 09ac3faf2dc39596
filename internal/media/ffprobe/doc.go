// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// Primary entry point:
//   - Inspect: executes ffprobe and returns a parsed Result
//
// Helper methods on Result answer the questions the composition pipeline
// asks: source duration, first video codec, and audio stream presence.
package ffprobe
