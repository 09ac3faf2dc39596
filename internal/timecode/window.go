package timecode

import "fmt"

// Window is an optional [In,Out) sub-range of a source asset, distinct from
// the destination span. Either bound may be absent.
type Window struct {
	In     float64
	Out    float64
	HasIn  bool
	HasOut bool
	// Raw timecodes as written in the manifest, kept for command synthesis.
	RawIn  string
	RawOut string
}

// ParseWindow parses optional in/out timecodes. Empty strings leave the
// corresponding bound open.
func ParseWindow(in, out string) (Window, error) {
	var w Window
	if in != "" {
		v, err := Parse(in)
		if err != nil {
			return Window{}, err
		}
		w.In, w.HasIn, w.RawIn = v, true, in
	}
	if out != "" {
		v, err := Parse(out)
		if err != nil {
			return Window{}, err
		}
		w.Out, w.HasOut, w.RawOut = v, true, out
	}
	if w.HasIn && w.HasOut && w.Out-w.In < Epsilon {
		return Window{}, fmt.Errorf("clip window %s-%s: out must be after in", in, out)
	}
	return w, nil
}

// Empty reports whether neither bound is set.
func (w Window) Empty() bool {
	return !w.HasIn && !w.HasOut
}

// TrimmedDuration derives the effective source duration after applying the
// window to a probed duration: an out bound replaces the probed length, an
// in bound is subtracted from what remains.
func (w Window) TrimmedDuration(probed float64) float64 {
	duration := probed
	if w.HasOut {
		duration = w.Out
	}
	if w.HasIn {
		duration -= w.In
	}
	return duration
}
