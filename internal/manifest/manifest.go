package manifest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest is the root of the composition document.
type Manifest struct {
	Output   string           `yaml:"output"`
	Video    *VideoSection    `yaml:"video"`
	Audio    *AudioSection    `yaml:"audio"`
	Subtitle *SubtitleSection `yaml:"subtitle"`
}

// VideoMeta carries track-wide video defaults; clips may override each field.
type VideoMeta struct {
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	Bitrate string `yaml:"bitrate"`
	FPS     int    `yaml:"fps"`
}

// VideoSection declares the video track.
type VideoSection struct {
	Meta  VideoMeta   `yaml:"meta"`
	Clips []VideoClip `yaml:"clips"`
}

// VideoClip declares one video fragment placed on the timeline.
type VideoClip struct {
	UID       string    `yaml:"uid"`
	Path      string    `yaml:"path"`
	Span      [2]string `yaml:"span"`
	Clip      []string  `yaml:"clip"`
	Width     int       `yaml:"width"`
	Height    int       `yaml:"height"`
	Bitrate   string    `yaml:"bitrate"`
	FPS       int       `yaml:"fps"`
	Extension string    `yaml:"extension"`
	Shrink    string    `yaml:"shrink"`
	Layer     int       `yaml:"layer"`
	PosX      int       `yaml:"pos_x"`
	PosY      int       `yaml:"pos_y"`
}

// AudioMeta carries track-wide audio defaults.
type AudioMeta struct {
	SampleRate int `yaml:"sample_rate"`
}

// AudioSection declares the audio track.
type AudioSection struct {
	Meta  AudioMeta   `yaml:"meta"`
	Clips []AudioClip `yaml:"clips"`
}

// AudioClip declares one audio fragment placed on a channel.
type AudioClip struct {
	UID        string    `yaml:"uid"`
	Path       string    `yaml:"path"`
	Span       [2]string `yaml:"span"`
	Clip       []string  `yaml:"clip"`
	Channel    int       `yaml:"channel"`
	SampleRate int       `yaml:"sample_rate"`
	Volume     *float64  `yaml:"volume"`
	Loop       bool      `yaml:"loop"`
}

// SubtitleSection declares burned-in subtitle cues.
type SubtitleSection struct {
	Clips []SubtitleClip `yaml:"clips"`
}

// SubtitleClip declares one styled text cue.
type SubtitleClip struct {
	UID   string      `yaml:"uid"`
	Span  [2]string   `yaml:"span"`
	Text  string      `yaml:"text"`
	Layer int         `yaml:"layer"`
	Style *StyleBlock `yaml:"style"`
}

// StyleBlock carries optional ASS style overrides for a cue. Pointer fields
// distinguish "not set" from zero values so defaults apply per field.
type StyleBlock struct {
	FontName        *string `yaml:"fontname"`
	FontSize        *int    `yaml:"fontsize"`
	PrimaryColour   *string `yaml:"primary_colour"`
	SecondaryColour *string `yaml:"secondary_colour"`
	OutlineColour   *string `yaml:"outline_colour"`
	BackColour      *string `yaml:"back_colour"`
	Bold            *bool   `yaml:"bold"`
	Italic          *bool   `yaml:"italic"`
	Underline       *bool   `yaml:"underline"`
	StrikeOut       *bool   `yaml:"strikeout"`
	ScaleX          *int    `yaml:"scale_x"`
	ScaleY          *int    `yaml:"scale_y"`
	Spacing         *int    `yaml:"spacing"`
	Angle           *int    `yaml:"angle"`
	BorderStyle     *int    `yaml:"border_style"`
	Outline         *int    `yaml:"outline"`
	Shadow          *int    `yaml:"shadow"`
	Alignment       *int    `yaml:"alignment"`
	MarginL         *int    `yaml:"margin_l"`
	MarginR         *int    `yaml:"margin_r"`
	MarginV         *int    `yaml:"margin_v"`
	Encoding        *int    `yaml:"encoding"`
}

// Load reads, parses, and validates a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates manifest YAML.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// ClipWindow splits a two-element clip window declaration into its optional
// in/out timecodes. A nil or empty declaration returns empty strings.
func ClipWindow(clip []string) (in, out string, err error) {
	switch len(clip) {
	case 0:
		return "", "", nil
	case 2:
		return clip[0], clip[1], nil
	default:
		return "", "", fmt.Errorf("clip window must have exactly two elements, got %d", len(clip))
	}
}
