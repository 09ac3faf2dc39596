package subtitle

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const (
	styleFormat = "Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding"
	eventFormat = "Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text"
)

// Document accumulates styled cues and renders them as one ASS file.
type Document struct {
	workspace string
	path      string
	styles    []Style
	byParams  map[StyleParams]string
	events    []string
}

// NewDocument creates a document rooted in the given workspace directory.
// The default style is always present as the first record.
func NewDocument(workspace string) (*Document, error) {
	if err := os.MkdirAll(workspace, 0o755); err != nil {
		return nil, fmt.Errorf("create subtitle workspace: %w", err)
	}
	d := &Document{
		workspace: workspace,
		path:      filepath.Join(workspace, "subtitle.ass"),
		byParams:  make(map[StyleParams]string),
	}
	d.intern(DefaultStyleParams())
	return d, nil
}

// Path returns the location the rendered document is written to.
func (d *Document) Path() string {
	return d.path
}

// AddCue appends one dialogue event. Identical style parameters resolve to
// the same style record; a differing parameter set creates a new one. Start
// and end are the raw manifest timecodes, preserved verbatim.
func (d *Document) AddCue(start, end, text string, layer int, params StyleParams) {
	name := d.intern(params)
	d.events = append(d.events, fmt.Sprintf("Dialogue: %d,%s,%s,%s,,0,0,0,,%s", layer, start, end, name, text))
}

// StyleCount returns the number of distinct style records.
func (d *Document) StyleCount() int {
	return len(d.styles)
}

// EventCount returns the number of accumulated cues.
func (d *Document) EventCount() int {
	return len(d.events)
}

// intern returns the name of the style record for params, creating one with
// a fresh generated name on first sight.
func (d *Document) intern(params StyleParams) string {
	if name, ok := d.byParams[params]; ok {
		return name
	}
	name := strings.Split(uuid.NewString(), "-")[0]
	d.styles = append(d.styles, Style{Name: name, Params: params})
	d.byParams[params] = name
	return name
}

// Process renders the style table and event list to the document path.
// Events appear in insertion order; callers are responsible for submitting
// cues in the order a renderer should see them.
func (d *Document) Process() error {
	var b strings.Builder
	b.WriteString("[Script Info]\n")
	b.WriteString("ScriptType: v4.00+\n")
	b.WriteString("\n[V4+ Styles]\n")
	b.WriteString(styleFormat + "\n")
	for _, style := range d.styles {
		b.WriteString(style.row() + "\n")
	}
	b.WriteString("\n[Events]\n")
	b.WriteString(eventFormat + "\n")
	for _, event := range d.events {
		b.WriteString(event + "\n")
	}

	if err := os.WriteFile(d.path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write subtitle document: %w", err)
	}
	return nil
}
