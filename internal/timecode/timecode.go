package timecode

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Epsilon is the tolerance used when comparing durations derived from
// millisecond-precision timecodes.
const Epsilon = 0.001

// Parse converts an HH:MM:SS.mmm timecode into seconds.
func Parse(tc string) (float64, error) {
	trimmed := strings.TrimSpace(tc)
	parts := strings.Split(trimmed, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("timecode %q: want HH:MM:SS.mmm", tc)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 {
		return 0, fmt.Errorf("timecode %q: invalid hours", tc)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("timecode %q: invalid minutes", tc)
	}
	seconds, err := strconv.ParseFloat(parts[2], 64)
	if err != nil || seconds < 0 || seconds >= 60 {
		return 0, fmt.Errorf("timecode %q: invalid seconds", tc)
	}
	return float64(hours)*3600 + float64(minutes)*60 + seconds, nil
}

// Format renders seconds as an HH:MM:SS.mmm timecode. Values are rounded to
// the nearest millisecond; negative values render as 00:00:00.000.
func Format(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	millis := int64(math.Round(seconds * 1000))
	hours := millis / 3_600_000
	millis -= hours * 3_600_000
	minutes := millis / 60_000
	millis -= minutes * 60_000
	secs := millis / 1000
	millis -= secs * 1000
	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, secs, millis)
}

// Equal reports whether two durations in seconds agree within Epsilon.
func Equal(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Span is a half-open [Start,End) interval in seconds on the output timeline.
type Span struct {
	Start float64
	End   float64
}

// ParseSpan parses a start/end timecode pair into a Span, requiring End
// to be strictly after Start.
func ParseSpan(start, end string) (Span, error) {
	s, err := Parse(start)
	if err != nil {
		return Span{}, err
	}
	e, err := Parse(end)
	if err != nil {
		return Span{}, err
	}
	span := Span{Start: s, End: e}
	if span.Duration() < Epsilon {
		return Span{}, fmt.Errorf("span %s-%s: end must be after start", start, end)
	}
	return span, nil
}

// Duration returns the span length in seconds.
func (s Span) Duration() float64 {
	return s.End - s.Start
}

// Overlaps reports whether two spans share any time, treating the intervals
// as half-open so a span starting exactly where another ends does not overlap.
func (s Span) Overlaps(other Span) bool {
	return s.Start < other.End-Epsilon && other.Start < s.End-Epsilon
}

// StartMillis returns the span start as whole milliseconds, as consumed by
// ffmpeg's adelay filter.
func (s Span) StartMillis() int64 {
	return int64(math.Round(s.Start * 1000))
}
