package subtitle

import (
	"fmt"
	"strings"
)

// StyleParams holds every field of an ASS v4+ style except the generated
// name. The struct is comparable, which is what makes structural
// deduplication a plain map lookup.
//
// See http://www.tcax.org/docs/ass-specs.htm, section 5, for field meanings.
type StyleParams struct {
	FontName        string
	FontSize        int
	PrimaryColour   string
	SecondaryColour string
	OutlineColour   string
	BackColour      string
	Bold            bool
	Italic          bool
	Underline       bool
	StrikeOut       bool
	ScaleX          int
	ScaleY          int
	Spacing         int
	Angle           int
	BorderStyle     int
	Outline         int
	Shadow          int
	Alignment       int
	MarginL         int
	MarginR         int
	MarginV         int
	Encoding        int
}

// DefaultStyleParams returns the baseline style used when a cue declares no
// overrides.
func DefaultStyleParams() StyleParams {
	return StyleParams{
		FontName:        "Arial",
		FontSize:        20,
		PrimaryColour:   "&H00FFFFFF",
		SecondaryColour: "&H00FF0000",
		OutlineColour:   "&H00000000",
		BackColour:      "&H80000000",
		ScaleX:          100,
		ScaleY:          100,
		BorderStyle:     1,
		Outline:         2,
		Alignment:       2,
		MarginL:         10,
		MarginR:         10,
		MarginV:         10,
		Encoding:        1,
	}
}

// Style is a named, immutable style record inside a document.
type Style struct {
	Name   string
	Params StyleParams
}

// row renders the style as an ASS [V4+ Styles] line. Booleans use the ASS
// convention of -1 for true and 0 for false.
func (s Style) row() string {
	p := s.Params
	fields := []string{
		s.Name,
		p.FontName,
		fmt.Sprintf("%d", p.FontSize),
		p.PrimaryColour,
		p.SecondaryColour,
		p.OutlineColour,
		p.BackColour,
		assBool(p.Bold),
		assBool(p.Italic),
		assBool(p.Underline),
		assBool(p.StrikeOut),
		fmt.Sprintf("%d", p.ScaleX),
		fmt.Sprintf("%d", p.ScaleY),
		fmt.Sprintf("%d", p.Spacing),
		fmt.Sprintf("%d", p.Angle),
		fmt.Sprintf("%d", p.BorderStyle),
		fmt.Sprintf("%d", p.Outline),
		fmt.Sprintf("%d", p.Shadow),
		fmt.Sprintf("%d", p.Alignment),
		fmt.Sprintf("%d", p.MarginL),
		fmt.Sprintf("%d", p.MarginR),
		fmt.Sprintf("%d", p.MarginV),
		fmt.Sprintf("%d", p.Encoding),
	}
	return "Style: " + strings.Join(fields, ",")
}

func assBool(v bool) string {
	if v {
		return "-1"
	}
	return "0"
}
