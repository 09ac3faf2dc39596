// Package timecode converts between HH:MM:SS.mmm timecodes and seconds and
// provides the Span type used to place clips on the output timeline.
//
// Timecodes carry millisecond precision, so duration comparisons throughout
// the pipeline use a one-millisecond epsilon rather than exact float equality.
package timecode
