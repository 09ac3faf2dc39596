// Package ffmpeg runs the external ffmpeg binary.
//
// The Client prepends a fixed preamble (overwrite output, quiet log level)
// and executes one blocking child process per call. Command synthesis lives
// with the track pipelines; this package only owns invocation, stderr
// capture, and failure reporting. The Executor seam exists so tests can
// record argument vectors without spawning processes.
package ffmpeg
