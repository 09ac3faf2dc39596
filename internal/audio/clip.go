package audio

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"stitch/internal/faults"
	"stitch/internal/logging"
	"stitch/internal/manifest"
	"stitch/internal/media"
	"stitch/internal/timecode"
)

// Clip is one audio fragment destined for a single channel of the track.
type Clip struct {
	UID        string
	Source     string
	Span       timecode.Span
	Window     timecode.Window
	Channel    int
	SampleRate int
	Volume     float64
	Loop       bool

	artifact   string
	normalized bool
}

// NewClip builds a clip from its manifest declaration. The normalized
// artifact is assigned a fresh path under workspace; nothing is written
// until Normalize runs.
func NewClip(workspace string, spec manifest.AudioClip) (*Clip, error) {
	span, err := timecode.ParseSpan(spec.Span[0], spec.Span[1])
	if err != nil {
		return nil, faults.Wrap(faults.ErrConfiguration, "audio", "clip "+spec.UID, "invalid span", err)
	}
	in, out, err := manifest.ClipWindow(spec.Clip)
	if err != nil {
		return nil, faults.Wrap(faults.ErrConfiguration, "audio", "clip "+spec.UID, "invalid clip window", err)
	}
	window, err := timecode.ParseWindow(in, out)
	if err != nil {
		return nil, faults.Wrap(faults.ErrConfiguration, "audio", "clip "+spec.UID, "invalid clip window", err)
	}
	volume := 1.0
	if spec.Volume != nil {
		volume = *spec.Volume
	}
	return &Clip{
		UID:        spec.UID,
		Source:     spec.Path,
		Span:       span,
		Window:     window,
		Channel:    spec.Channel,
		SampleRate: spec.SampleRate,
		Volume:     volume,
		Loop:       spec.Loop,
		artifact:   filepath.Join(workspace, uuid.New().String()+".wav"),
	}, nil
}

// Artifact returns the path of the normalized intermediate.
func (c *Clip) Artifact() string {
	return c.artifact
}

// Duration returns the destination duration on the output timeline.
func (c *Clip) Duration() float64 {
	return c.Span.Duration()
}

// Normalize renders the clip into a self-contained mono wav whose duration
// matches the destination span exactly. A source longer than the span is
// rejected; a shorter one is looped to length only when loop is set. A
// windowed clip that loops is trimmed to its window in a first pass so the
// repetitions contain only the windowed material. Calling Normalize again
// after success is a no-op.
func (c *Clip) Normalize(ctx context.Context, tools media.Toolset, logger *slog.Logger) error {
	if c.normalized {
		return nil
	}

	info, err := tools.Prober.Probe(ctx, c.Source)
	if err != nil {
		return faults.Wrap(faults.ErrProbe, "audio", "clip "+c.UID, "probe "+c.Source, err)
	}
	actual := c.Window.TrimmedDuration(info.Duration)
	needed := c.Span.Duration()

	var loops int
	switch {
	case actual > needed+timecode.Epsilon:
		return faults.Wrap(faults.ErrDurationMismatch, "audio", "clip "+c.UID,
			fmt.Sprintf("source runs %s but span needs %s",
				timecode.FormatSeconds(actual), timecode.FormatSeconds(needed)), nil)
	case actual < needed-timecode.Epsilon:
		if !c.Loop {
			return faults.Wrap(faults.ErrDurationMismatch, "audio", "clip "+c.UID,
				fmt.Sprintf("source runs %s but span needs %s and loop is off",
					timecode.FormatSeconds(actual), timecode.FormatSeconds(needed)), nil)
		}
		loops = int(math.Ceil(needed / actual))
	}

	logger.Info("normalizing audio clip",
		slog.String(logging.FieldClip, c.UID),
		slog.Int(logging.FieldChannel, c.Channel),
		slog.String("source", c.Source))

	input := c.Source
	windowed := c.Window.HasIn || c.Window.HasOut
	if loops > 1 && windowed {
		// -stream_loop repeats the whole input, so the window has to be
		// cut into an intermediate before looping can fill the span.
		trimmed := filepath.Join(filepath.Dir(c.artifact), uuid.New().String()+".wav")
		trim := make([]string, 0, 12)
		if c.Window.HasOut {
			trim = append(trim, "-to", c.Window.RawOut)
		}
		if c.Window.HasIn {
			trim = append(trim, "-ss", c.Window.RawIn)
		}
		trim = append(trim, "-i", c.Source, "-map", "0:a:0",
			"-ar", strconv.Itoa(c.SampleRate), "-ac", "1", trimmed)
		if err := tools.FFmpeg.Run(ctx, trim...); err != nil {
			return faults.Wrap(faults.ErrExternalTool, "audio", "clip "+c.UID, "trim window", err)
		}
		input = trimmed
	}

	args := make([]string, 0, 16)
	if loops > 1 {
		args = append(args, "-stream_loop", strconv.Itoa(loops-1))
	}
	if input == c.Source {
		if c.Window.HasOut {
			args = append(args, "-to", c.Window.RawOut)
		}
		if c.Window.HasIn {
			args = append(args, "-ss", c.Window.RawIn)
		}
	}
	args = append(args, "-i", input)
	args = append(args, "-map", "0:a:0")
	if c.Volume != 1 {
		args = append(args, "-af", "volume="+strconv.FormatFloat(c.Volume, 'f', -1, 64))
	}
	args = append(args, "-ar", strconv.Itoa(c.SampleRate), "-ac", "1")
	if loops > 1 {
		args = append(args, "-t", timecode.FormatSeconds(needed))
	}
	args = append(args, c.artifact)

	if err := tools.FFmpeg.Run(ctx, args...); err != nil {
		return faults.Wrap(faults.ErrExternalTool, "audio", "clip "+c.UID, "normalize", err)
	}
	c.normalized = true
	return nil
}
