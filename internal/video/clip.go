package video

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"stitch/internal/faults"
	"stitch/internal/logging"
	"stitch/internal/manifest"
	"stitch/internal/media"
	"stitch/internal/timecode"
)

// Clip is one video fragment: either a base-layer tile or a positioned
// overlay. Image sources are turned into still-frame video of the span's
// length; video sources are scaled and duration-adjusted per their policies.
type Clip struct {
	UID       string
	Source    string
	Span      timecode.Span
	Window    timecode.Window
	Width     int
	Height    int
	Bitrate   string
	FPS       int
	Extension manifest.ExtensionPolicy
	Shrink    manifest.ShrinkPolicy
	Layer     int
	PosX      int
	PosY      int

	workspace  string
	artifact   string
	normalized bool
}

// NewClip builds a clip from its manifest declaration, resolving the
// extension and shrink policies up front so bad names fail before any tool
// runs.
func NewClip(workspace string, spec manifest.VideoClip) (*Clip, error) {
	span, err := timecode.ParseSpan(spec.Span[0], spec.Span[1])
	if err != nil {
		return nil, faults.Wrap(faults.ErrConfiguration, "video", "clip "+spec.UID, "invalid span", err)
	}
	in, out, err := manifest.ClipWindow(spec.Clip)
	if err != nil {
		return nil, faults.Wrap(faults.ErrConfiguration, "video", "clip "+spec.UID, "invalid clip window", err)
	}
	window, err := timecode.ParseWindow(in, out)
	if err != nil {
		return nil, faults.Wrap(faults.ErrConfiguration, "video", "clip "+spec.UID, "invalid clip window", err)
	}
	extension, err := manifest.ParseExtensionPolicy(spec.Extension)
	if err != nil {
		return nil, faults.Wrap(faults.ErrConfiguration, "video", "clip "+spec.UID, err.Error(), nil)
	}
	shrink, err := manifest.ParseShrinkPolicy(spec.Shrink)
	if err != nil {
		return nil, faults.Wrap(faults.ErrConfiguration, "video", "clip "+spec.UID, err.Error(), nil)
	}
	return &Clip{
		UID:       spec.UID,
		Source:    spec.Path,
		Span:      span,
		Window:    window,
		Width:     spec.Width,
		Height:    spec.Height,
		Bitrate:   spec.Bitrate,
		FPS:       spec.FPS,
		Extension: extension,
		Shrink:    shrink,
		Layer:     spec.Layer,
		PosX:      spec.PosX,
		PosY:      spec.PosY,
		workspace: workspace,
	}, nil
}

// Artifact returns the path of the normalized intermediate. It is empty
// until Normalize has run; stills always land in an mp4 container while
// video sources keep their own so the concat stream copy stays valid.
func (c *Clip) Artifact() string {
	return c.artifact
}

// Duration returns the destination duration on the output timeline.
func (c *Clip) Duration() float64 {
	return c.Span.Duration()
}

// Normalize renders the clip into an intermediate of exactly the span's
// duration at the clip's resolution, frame rate, and bitrate. Calling it
// again after success is a no-op.
func (c *Clip) Normalize(ctx context.Context, tools media.Toolset, logger *slog.Logger) error {
	if c.normalized {
		return nil
	}

	isImage := media.IsImage(c.Source)

	var args []string
	if isImage {
		c.artifact = filepath.Join(c.workspace, uuid.New().String()+".mp4")
		args = c.stillArgs()
	} else {
		info, err := tools.Prober.Probe(ctx, c.Source)
		if err != nil {
			return faults.Wrap(faults.ErrProbe, "video", "clip "+c.UID, "probe "+c.Source, err)
		}
		if !info.HasVideo || info.VideoCodec == "" {
			return faults.Wrap(faults.ErrProbe, "video", "clip "+c.UID,
				"no video stream in "+c.Source, nil)
		}
		c.artifact = filepath.Join(c.workspace, uuid.New().String()+filepath.Ext(c.Source))
		args = c.videoArgs(info)
	}
	args = append(args, c.artifact)

	logger.Info("normalizing video clip",
		slog.String(logging.FieldClip, c.UID),
		slog.Int(logging.FieldLayer, c.Layer),
		slog.String("source", c.Source),
		slog.Bool("still", isImage))
	if err := tools.FFmpeg.Run(ctx, args...); err != nil {
		return faults.Wrap(faults.ErrExternalTool, "video", "clip "+c.UID, "normalize", err)
	}
	c.normalized = true
	return nil
}

// stillArgs loops a single image into a video of the span's duration.
func (c *Clip) stillArgs() []string {
	return []string{
		"-loop", "1",
		"-i", c.Source,
		"-t", timecode.FormatSeconds(c.Span.Duration()),
		"-vf", fmt.Sprintf("scale=%d:%d", c.Width, c.Height),
		"-r", strconv.Itoa(c.FPS),
		"-b:v", c.Bitrate,
	}
}

// videoArgs trims, scales, and duration-adjusts a video source. A short
// source is padded by cloning the first or last frame per the extension
// policy; a long one is trimmed at the start or end per the shrink policy.
// The source codec is kept so same-codec concatenation can stream-copy.
func (c *Clip) videoArgs(info media.SourceInfo) []string {
	args := make([]string, 0, 20)
	if c.Window.HasOut {
		args = append(args, "-to", c.Window.RawOut)
	}
	if c.Window.HasIn {
		args = append(args, "-ss", c.Window.RawIn)
	}
	args = append(args, "-i", c.Source)

	actual := c.Window.TrimmedDuration(info.Duration)
	expected := c.Span.Duration()

	filters := []string{fmt.Sprintf("scale=%d:%d", c.Width, c.Height)}
	switch {
	case actual < expected-timecode.Epsilon:
		pad := timecode.FormatSeconds(expected - actual)
		if c.Extension == manifest.ExtendRepeatFirst {
			filters = append(filters, fmt.Sprintf("tpad=start_duration=%s:start_mode=clone, fps=%d", pad, c.FPS))
		} else {
			filters = append(filters, fmt.Sprintf("tpad=stop_duration=%s:stop_mode=clone, fps=%d", pad, c.FPS))
		}
	case actual > expected+timecode.Epsilon:
		if c.Shrink == manifest.ShrinkTrimStart {
			args = append(args, "-ss", timecode.FormatSeconds(actual-expected))
		} else {
			args = append(args, "-to", timecode.FormatSeconds(expected))
		}
	}

	args = append(args, "-vf", strings.Join(filters, ","))
	args = append(args, "-r", strconv.Itoa(c.FPS))
	args = append(args, "-b:v", c.Bitrate)
	args = append(args, "-c:v", info.VideoCodec)
	return args
}
