package video

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"stitch/internal/faults"
	"stitch/internal/fileutil"
	"stitch/internal/manifest"
	"stitch/internal/media"
	"stitch/internal/timecode"
)

// Track assembles base-layer and overlay clips into one video artifact. The
// base layer must tile the timeline contiguously from zero; overlays are
// composited over it in layer order.
type Track struct {
	Meta manifest.VideoMeta

	workspace string
	base      []*Clip
	overlays  []*Clip
	artifact  string
}

// NewTrack creates a video track rooted in the given workspace directory.
func NewTrack(workspace string, meta manifest.VideoMeta) *Track {
	return &Track{
		Meta:      meta,
		workspace: workspace,
		artifact:  filepath.Join(workspace, "video.mp4"),
	}
}

// Add places a clip on the track, partitioned by layer. Clips inherit any
// unset format fields from the track meta.
func (t *Track) Add(c *Clip) {
	if c.Width == 0 {
		c.Width = t.Meta.Width
	}
	if c.Height == 0 {
		c.Height = t.Meta.Height
	}
	if c.Bitrate == "" {
		c.Bitrate = t.Meta.Bitrate
	}
	if c.FPS == 0 {
		c.FPS = t.Meta.FPS
	}
	if c.Layer == 0 {
		t.base = append(t.base, c)
	} else {
		t.overlays = append(t.overlays, c)
	}
}

// Empty reports whether the track carries no clips.
func (t *Track) Empty() bool {
	return len(t.base) == 0 && len(t.overlays) == 0
}

// Artifact returns the path of the processed track output.
func (t *Track) Artifact() string {
	return t.artifact
}

// Duration returns the base layer's total length.
func (t *Track) Duration() float64 {
	var max float64
	for _, c := range t.base {
		if c.Span.End > max {
			max = c.Span.End
		}
	}
	return max
}

// SanityCheck validates the layer layout before any tool runs: the base
// layer must exist, start at zero, and tile the timeline with no gap or
// overlap; overlay spans must stay within the base duration.
func (t *Track) SanityCheck() error {
	if len(t.base) == 0 {
		return faults.Wrap(faults.ErrConfiguration, "video", "sanity check", "no base layer clips", nil)
	}
	base := t.sortedBase()
	if !timecode.Equal(base[0].Span.Start, 0) {
		return faults.Wrap(faults.ErrConfiguration, "video", "sanity check",
			fmt.Sprintf("base layer must start at 00:00:00.000, clip %s starts at %s",
				base[0].UID, timecode.Format(base[0].Span.Start)), nil)
	}
	for i := 1; i < len(base); i++ {
		prev, cur := base[i-1], base[i]
		if !timecode.Equal(prev.Span.End, cur.Span.Start) {
			return faults.Wrap(faults.ErrConfiguration, "video", "sanity check",
				fmt.Sprintf("base layer not contiguous between clips %s and %s", prev.UID, cur.UID), nil)
		}
	}
	duration := t.Duration()
	for _, c := range t.overlays {
		if c.Span.End > duration+timecode.Epsilon {
			return faults.Wrap(faults.ErrConfiguration, "video", "sanity check",
				fmt.Sprintf("overlay %s ends at %s, past the base duration %s",
					c.UID, timecode.Format(c.Span.End), timecode.Format(duration)), nil)
		}
	}
	return nil
}

// Process renders the track artifact: all clips are normalized, the base
// layer is concatenated with a lossless stream copy, and overlays (if any)
// are composited on in layer order with a re-encode.
func (t *Track) Process(ctx context.Context, tools media.Toolset, logger *slog.Logger) error {
	if err := t.SanityCheck(); err != nil {
		return err
	}
	base := t.sortedBase()
	overlays := t.sortedOverlays()

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(tools.WorkerLimit())
	for _, clip := range append(append([]*Clip{}, base...), overlays...) {
		clip := clip
		group.Go(func() error {
			return clip.Normalize(groupCtx, tools, logger)
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	basePath := filepath.Join(t.workspace, "base.mp4")
	if err := t.concatBase(ctx, tools, logger, base, basePath); err != nil {
		return err
	}

	if len(overlays) == 0 {
		if err := fileutil.CopyFile(basePath, t.artifact); err != nil {
			return faults.Wrap(faults.ErrExternalTool, "video", "finalize", "copy base video", err)
		}
		return nil
	}
	return t.composite(ctx, tools, logger, overlays, basePath)
}

// concatBase joins the normalized base clips in timeline order through the
// concat demuxer. Inputs share a codec after normalization so the streams
// are copied, not re-encoded.
func (t *Track) concatBase(ctx context.Context, tools media.Toolset, logger *slog.Logger, base []*Clip, out string) error {
	lines := make([]string, 0, len(base))
	for _, clip := range base {
		lines = append(lines, fmt.Sprintf("file '%s'", clip.Artifact()))
	}
	listPath := filepath.Join(t.workspace, "base.demuxer")
	if err := os.WriteFile(listPath, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		return faults.Wrap(faults.ErrExternalTool, "video", "concat", "write demuxer list", err)
	}

	logger.Info("concatenating base layer", slog.Int("clips", len(base)))
	err := tools.FFmpeg.Run(ctx,
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		"-c", "copy",
		out)
	if err != nil {
		return faults.Wrap(faults.ErrExternalTool, "video", "concat", "", err)
	}
	return nil
}

// composite chains one overlay filter per clip over the base stream. Each
// overlay is re-timed to its span start and only enabled inside its span.
func (t *Track) composite(ctx context.Context, tools media.Toolset, logger *slog.Logger, overlays []*Clip, basePath string) error {
	args := make([]string, 0, 2*len(overlays)+8)
	args = append(args, "-i", basePath)
	for _, clip := range overlays {
		args = append(args, "-i", clip.Artifact())
	}

	retime := make([]string, 0, len(overlays))
	var chain strings.Builder
	cursor := "[0:v]"
	for i, clip := range overlays {
		input := i + 1
		start := timecode.FormatSeconds(clip.Span.Start)
		end := timecode.FormatSeconds(clip.Span.End)
		retime = append(retime, fmt.Sprintf("[%d:v]setpts=PTS-STARTPTS+%s/TB[fv%d]", input, start, input))
		fmt.Fprintf(&chain, "%s[fv%d]overlay=x=%d:y=%d:enable='between(t,%s,%s)'",
			cursor, input, clip.PosX, clip.PosY, start, end)
		cursor = fmt.Sprintf("[ov%d]", input)
		if input != len(overlays) {
			chain.WriteString(cursor + ";")
		}
	}
	filterComplex := strings.Join(retime, ";") + ";" + chain.String()

	args = append(args, "-filter_complex", filterComplex)
	args = append(args, "-c:v", "libx264")
	args = append(args, t.artifact)

	logger.Info("compositing overlays", slog.Int("overlays", len(overlays)))
	if err := tools.FFmpeg.Run(ctx, args...); err != nil {
		return faults.Wrap(faults.ErrExternalTool, "video", "composite overlays", "", err)
	}
	return nil
}

// sortedBase returns the base clips ordered by start time.
func (t *Track) sortedBase() []*Clip {
	base := append([]*Clip{}, t.base...)
	sort.Slice(base, func(i, j int) bool { return base[i].Span.Start < base[j].Span.Start })
	return base
}

// sortedOverlays returns the overlay clips ordered by layer, preserving
// insertion order within a layer.
func (t *Track) sortedOverlays() []*Clip {
	overlays := append([]*Clip{}, t.overlays...)
	sort.SliceStable(overlays, func(i, j int) bool { return overlays[i].Layer < overlays[j].Layer })
	return overlays
}
