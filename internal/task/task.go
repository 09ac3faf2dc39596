// Package task orchestrates one composition end to end: it builds the
// tracks and subtitle document from a manifest, validates cross-track
// invariants, runs each track's pipeline, and multiplexes the results into
// the output file.
package task

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"stitch/internal/audio"
	"stitch/internal/faults"
	"stitch/internal/fileutil"
	"stitch/internal/logging"
	"stitch/internal/manifest"
	"stitch/internal/media"
	"stitch/internal/subtitle"
	"stitch/internal/timecode"
	"stitch/internal/video"
	"stitch/internal/workspace"
)

// Task is one composition job. Tracks it does not use stay nil.
type Task struct {
	Output string

	video  *video.Track
	audio  *audio.Track
	subs   *subtitle.Document
	tools  media.Toolset
	logger *slog.Logger
}

// New builds a task from a validated manifest. Clip construction resolves
// spans, windows, and policies, so a bad declaration fails here before any
// external tool runs.
func New(m *manifest.Manifest, ws *workspace.Workspace, tools media.Toolset, logger *slog.Logger) (*Task, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	t := &Task{
		Output: m.Output,
		tools:  tools,
		logger: logging.WithComponent(logger, "task"),
	}

	if m.Video != nil {
		trackDir, err := ws.Dir("video")
		if err != nil {
			return nil, faults.Wrap(faults.ErrConfiguration, "task", "build video track", "", err)
		}
		clipsDir, err := ws.Dir("video/clips")
		if err != nil {
			return nil, faults.Wrap(faults.ErrConfiguration, "task", "build video track", "", err)
		}
		t.video = video.NewTrack(trackDir, m.Video.Meta)
		for _, spec := range m.Video.Clips {
			clip, err := video.NewClip(clipsDir, spec)
			if err != nil {
				return nil, err
			}
			t.video.Add(clip)
		}
	}

	if m.Audio != nil {
		trackDir, err := ws.Dir("audio")
		if err != nil {
			return nil, faults.Wrap(faults.ErrConfiguration, "task", "build audio track", "", err)
		}
		clipsDir, err := ws.Dir("audio/clips")
		if err != nil {
			return nil, faults.Wrap(faults.ErrConfiguration, "task", "build audio track", "", err)
		}
		t.audio = audio.NewTrack(trackDir, manifest.AudioMeta{SampleRate: m.Audio.Meta.SampleRate})
		for _, spec := range m.Audio.Clips {
			clip, err := audio.NewClip(clipsDir, spec)
			if err != nil {
				return nil, err
			}
			t.audio.Add(clip)
		}
	}

	if m.Subtitle != nil {
		subsDir, err := ws.Dir("subtitle")
		if err != nil {
			return nil, faults.Wrap(faults.ErrConfiguration, "task", "build subtitle document", "", err)
		}
		doc, err := subtitle.NewDocument(subsDir)
		if err != nil {
			return nil, faults.Wrap(faults.ErrConfiguration, "task", "build subtitle document", "", err)
		}
		for _, cue := range m.Subtitle.Clips {
			doc.AddCue(cue.Span[0], cue.Span[1], cue.Text, cue.Layer, subtitle.ApplyOverrides(cue.Style))
		}
		t.subs = doc
	}

	return t, nil
}

// SanityCheck enforces the cross-track invariants. It runs before any
// external tool is invoked so contradictory manifests fail without side
// effects.
func (t *Task) SanityCheck() error {
	if t.video == nil && t.audio == nil {
		return faults.Wrap(faults.ErrConfiguration, "task", "sanity check",
			"a task must produce at least one media stream", nil)
	}
	if t.subs != nil && t.video == nil {
		return faults.Wrap(faults.ErrConfiguration, "task", "sanity check",
			"subtitles require a video track to burn into", nil)
	}
	if t.video != nil && t.audio != nil {
		if t.audio.Duration() > t.video.Duration()+timecode.Epsilon {
			return faults.Wrap(faults.ErrConfiguration, "task", "sanity check",
				fmt.Sprintf("video runs %s but audio runs %s; video must not be shorter",
					timecode.Format(t.video.Duration()), timecode.Format(t.audio.Duration())), nil)
		}
	}
	return nil
}

// Process runs the whole composition and leaves the result at the output
// path. Any failure aborts immediately; nothing is retried.
func (t *Task) Process(ctx context.Context) error {
	if err := t.SanityCheck(); err != nil {
		return err
	}

	if t.video != nil {
		if err := t.video.Process(ctx, t.tools, logging.WithComponent(t.logger, "video")); err != nil {
			return err
		}
	}
	if t.audio != nil {
		if err := t.audio.Process(ctx, t.tools, logging.WithComponent(t.logger, "audio")); err != nil {
			return err
		}
	}
	if t.subs != nil {
		if err := t.subs.Process(); err != nil {
			return faults.Wrap(faults.ErrExternalTool, "subtitle", "write document", "", err)
		}
	}

	return t.finalize(ctx)
}

// finalize produces the output file. A lone audio track is moved into place
// without another tool run; anything involving video filtering goes through
// one last multiplex that always re-encodes the video stream.
func (t *Task) finalize(ctx context.Context) error {
	if t.video == nil {
		t.logger.Info("moving audio artifact to output", slog.String("output", t.Output))
		if err := fileutil.MoveFile(t.audio.Artifact(), t.Output); err != nil {
			return faults.Wrap(faults.ErrExternalTool, "task", "finalize", "move audio artifact", err)
		}
		return nil
	}

	if t.audio == nil && t.subs == nil {
		t.logger.Info("moving video artifact to output", slog.String("output", t.Output))
		if err := fileutil.MoveFile(t.video.Artifact(), t.Output); err != nil {
			return faults.Wrap(faults.ErrExternalTool, "task", "finalize", "move video artifact", err)
		}
		return nil
	}

	args := []string{"-i", t.video.Artifact()}
	if t.audio != nil {
		args = append(args, "-i", t.audio.Artifact())
	}

	var filters []string
	videoMap := "0:v"
	if t.subs != nil {
		filters = append(filters, fmt.Sprintf("[0:v]subtitles='%s'[vout]", t.subs.Path()))
		videoMap = "[vout]"
	}
	audioMap := ""
	if t.audio != nil {
		duration := timecode.FormatSeconds(t.video.Duration())
		filters = append(filters, fmt.Sprintf("[1:a]apad,atrim=duration=%s[aud]", duration))
		audioMap = "[aud]"

		info, err := t.tools.Prober.Probe(ctx, t.video.Artifact())
		if err != nil {
			return faults.Wrap(faults.ErrProbe, "task", "finalize", "probe video artifact", err)
		}
		if info.HasAudio {
			filters = append(filters, "[0:a][aud]amix=inputs=2:normalize=0[aout]")
			audioMap = "[aout]"
		}
	}

	args = append(args, "-filter_complex", strings.Join(filters, ";"))
	args = append(args, "-map", videoMap)
	if audioMap != "" {
		args = append(args, "-map", audioMap)
	}
	args = append(args, "-c:v", "libx264")
	if audioMap != "" {
		args = append(args, "-c:a", "aac")
	}
	args = append(args, t.Output)

	t.logger.Info("multiplexing output",
		slog.String("output", t.Output),
		slog.Bool("subtitles", t.subs != nil),
		slog.Bool("audio", t.audio != nil))
	if err := t.tools.FFmpeg.Run(ctx, args...); err != nil {
		return faults.Wrap(faults.ErrExternalTool, "task", "finalize", "multiplex", err)
	}
	return nil
}
