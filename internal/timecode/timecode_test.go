package timecode

import (
	"math"
	"testing"
)

func TestParse(t *testing.T) {
	cases := []struct {
		input string
		want  float64
	}{
		{"00:00:00.000", 0},
		{"00:00:02.000", 2},
		{"00:01:30.500", 90.5},
		{"01:00:00.000", 3600},
		{"10:59:59.999", 39599.999},
	}
	for _, tc := range cases {
		got, err := Parse(tc.input)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tc.input, err)
		}
		if math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("Parse(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	for _, input := range []string{"", "5", "00:00", "00:61:00.000", "00:00:60.000", "-1:00:00.000", "aa:bb:cc.ddd"} {
		if _, err := Parse(input); err == nil {
			t.Fatalf("Parse(%q): expected error", input)
		}
	}
}

func TestFormatRoundTrips(t *testing.T) {
	for _, input := range []string{"00:00:00.000", "00:00:02.000", "00:01:30.500", "01:02:03.456"} {
		seconds, err := Parse(input)
		if err != nil {
			t.Fatal(err)
		}
		if got := Format(seconds); got != input {
			t.Fatalf("Format(Parse(%q)) = %q", input, got)
		}
	}
}

func TestParseSpan(t *testing.T) {
	span, err := ParseSpan("00:00:02.000", "00:00:05.000")
	if err != nil {
		t.Fatal(err)
	}
	if !Equal(span.Duration(), 3) {
		t.Fatalf("unexpected duration: %v", span.Duration())
	}
	if span.StartMillis() != 2000 {
		t.Fatalf("unexpected start millis: %d", span.StartMillis())
	}
	if _, err := ParseSpan("00:00:05.000", "00:00:05.000"); err == nil {
		t.Fatal("expected empty span to be rejected")
	}
	if _, err := ParseSpan("00:00:05.000", "00:00:02.000"); err == nil {
		t.Fatal("expected inverted span to be rejected")
	}
}

func TestSpanOverlaps(t *testing.T) {
	a := Span{Start: 0, End: 2}
	b := Span{Start: 2, End: 5}
	c := Span{Start: 1, End: 3}
	if a.Overlaps(b) {
		t.Fatal("adjacent spans must not overlap")
	}
	if !a.Overlaps(c) || !b.Overlaps(c) {
		t.Fatal("expected overlap")
	}
}

func TestWindowTrimmedDuration(t *testing.T) {
	probed := 10.0

	w, err := ParseWindow("", "")
	if err != nil {
		t.Fatal(err)
	}
	if !w.Empty() || !Equal(w.TrimmedDuration(probed), 10) {
		t.Fatalf("empty window should pass probed duration through, got %v", w.TrimmedDuration(probed))
	}

	w, err = ParseWindow("00:00:02.000", "")
	if err != nil {
		t.Fatal(err)
	}
	if !Equal(w.TrimmedDuration(probed), 8) {
		t.Fatalf("in-only window: got %v", w.TrimmedDuration(probed))
	}

	w, err = ParseWindow("00:00:01.000", "00:00:04.000")
	if err != nil {
		t.Fatal(err)
	}
	if !Equal(w.TrimmedDuration(probed), 3) {
		t.Fatalf("bounded window: got %v", w.TrimmedDuration(probed))
	}

	if _, err := ParseWindow("00:00:04.000", "00:00:01.000"); err == nil {
		t.Fatal("expected inverted window to be rejected")
	}
}
