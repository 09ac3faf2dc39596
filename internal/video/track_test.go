package video

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"stitch/internal/faults"
	"stitch/internal/logging"
	"stitch/internal/manifest"
	"stitch/internal/media"
	"stitch/internal/testsupport"
)

var testMeta = manifest.VideoMeta{Width: 1280, Height: 720, Bitrate: "2M", FPS: 30}

func addClip(t *testing.T, track *Track, workspace string, spec manifest.VideoClip) *Clip {
	t.Helper()

	clip, err := NewClip(workspace, spec)
	if err != nil {
		t.Fatalf("new clip %s: %v", spec.UID, err)
	}
	track.Add(clip)
	return clip
}

func videoSource(t *testing.T, dir, name string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	testsupport.WriteFile(t, path, []byte("not an image"))
	return path
}

func commandFor(t *testing.T, exec *testsupport.RecordingExecutor, output string) []string {
	t.Helper()

	for _, cmd := range exec.Commands {
		if len(cmd) > 0 && cmd[len(cmd)-1] == output {
			return cmd
		}
	}
	t.Fatalf("no recorded command producing %s", output)
	return nil
}

func TestTrackSanityCheckGap(t *testing.T) {
	dir := t.TempDir()
	track := NewTrack(dir, testMeta)
	addClip(t, track, dir, manifest.VideoClip{
		UID: "a", Path: videoSource(t, dir, "a.mp4"), Span: [2]string{"00:00:00.000", "00:00:03.000"},
	})
	addClip(t, track, dir, manifest.VideoClip{
		UID: "b", Path: videoSource(t, dir, "b.mp4"), Span: [2]string{"00:00:04.000", "00:00:06.000"},
	})

	err := track.SanityCheck()
	if !errors.Is(err, faults.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if !strings.Contains(err.Error(), "not contiguous") {
		t.Fatalf("expected contiguity detail, got %v", err)
	}
}

func TestTrackSanityCheckNonZeroStart(t *testing.T) {
	dir := t.TempDir()
	track := NewTrack(dir, testMeta)
	addClip(t, track, dir, manifest.VideoClip{
		UID: "late", Path: videoSource(t, dir, "late.mp4"), Span: [2]string{"00:00:01.000", "00:00:04.000"},
	})

	err := track.SanityCheck()
	if !errors.Is(err, faults.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestTrackSanityCheckOverlayPastEnd(t *testing.T) {
	dir := t.TempDir()
	track := NewTrack(dir, testMeta)
	addClip(t, track, dir, manifest.VideoClip{
		UID: "base", Path: videoSource(t, dir, "base.mp4"), Span: [2]string{"00:00:00.000", "00:00:05.000"},
	})
	addClip(t, track, dir, manifest.VideoClip{
		UID: "logo", Path: videoSource(t, dir, "logo.mp4"), Span: [2]string{"00:00:04.000", "00:00:07.000"}, Layer: 1,
	})

	err := track.SanityCheck()
	if !errors.Is(err, faults.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestTrackAddInheritsMeta(t *testing.T) {
	dir := t.TempDir()
	track := NewTrack(dir, testMeta)
	clip := addClip(t, track, dir, manifest.VideoClip{
		UID: "a", Path: videoSource(t, dir, "a.mp4"), Span: [2]string{"00:00:00.000", "00:00:03.000"}, FPS: 60,
	})

	if clip.Width != 1280 || clip.Height != 720 || clip.Bitrate != "2M" {
		t.Fatalf("expected meta inheritance, got %+v", clip)
	}
	if clip.FPS != 60 {
		t.Fatalf("per-clip fps should win, got %d", clip.FPS)
	}
}

func TestTrackProcessConcatenatesBase(t *testing.T) {
	dir := t.TempDir()
	exec := &testsupport.RecordingExecutor{TouchOutputs: true}
	prober := &testsupport.FakeProber{Default: media.SourceInfo{Duration: 3.0, VideoCodec: "h264", HasVideo: true}}
	tools := newToolset(t, exec, prober)

	track := NewTrack(dir, testMeta)
	first := addClip(t, track, dir, manifest.VideoClip{
		UID: "first", Path: videoSource(t, dir, "first.mp4"), Span: [2]string{"00:00:00.000", "00:00:03.000"},
	})
	second := addClip(t, track, dir, manifest.VideoClip{
		UID: "second", Path: videoSource(t, dir, "second.mp4"), Span: [2]string{"00:00:03.000", "00:00:06.000"},
	})

	if err := track.Process(context.Background(), tools, logging.NewNop()); err != nil {
		t.Fatalf("process: %v", err)
	}
	if got := track.Duration(); got != 6.0 {
		t.Fatalf("expected 6s track, got %v", got)
	}

	// Two normalizations plus the concat; no composite without overlays.
	if exec.Invocations() != 3 {
		t.Fatalf("expected 3 invocations, got %d", exec.Invocations())
	}

	concat := commandFor(t, exec, filepath.Join(dir, "base.mp4"))
	if !hasArgPair(concat, "-f", "concat") || !hasArgPair(concat, "-safe", "0") || !hasArgPair(concat, "-c", "copy") {
		t.Fatalf("expected lossless concat, got %v", concat)
	}

	list, err := os.ReadFile(filepath.Join(dir, "base.demuxer"))
	if err != nil {
		t.Fatalf("read demuxer list: %v", err)
	}
	want := "file '" + first.Artifact() + "'\nfile '" + second.Artifact() + "'"
	if string(list) != want {
		t.Fatalf("demuxer list mismatch:\n got %q\nwant %q", list, want)
	}

	if _, err := os.Stat(track.Artifact()); err != nil {
		t.Fatalf("track artifact missing: %v", err)
	}
}

func TestTrackProcessCompositesOverlay(t *testing.T) {
	dir := t.TempDir()
	exec := &testsupport.RecordingExecutor{TouchOutputs: true}
	prober := &testsupport.FakeProber{Default: media.SourceInfo{Duration: 1.0, VideoCodec: "h264", HasVideo: true}}
	prober.Infos = map[string]media.SourceInfo{}
	tools := newToolset(t, exec, prober)

	track := NewTrack(dir, testMeta)
	base := videoSource(t, dir, "base.mp4")
	prober.Infos[base] = media.SourceInfo{Duration: 6.0, VideoCodec: "h264", HasVideo: true}
	addClip(t, track, dir, manifest.VideoClip{
		UID: "base", Path: base, Span: [2]string{"00:00:00.000", "00:00:06.000"},
	})
	overlay := addClip(t, track, dir, manifest.VideoClip{
		UID: "badge", Path: videoSource(t, dir, "badge.mp4"), Span: [2]string{"00:00:01.000", "00:00:02.000"},
		Layer: 1, PosX: 40, PosY: 60,
	})

	if err := track.Process(context.Background(), tools, logging.NewNop()); err != nil {
		t.Fatalf("process: %v", err)
	}

	composite := commandFor(t, exec, track.Artifact())
	filter := argValue(composite, "-filter_complex")
	want := "[1:v]setpts=PTS-STARTPTS+1/TB[fv1];" +
		"[0:v][fv1]overlay=x=40:y=60:enable='between(t,1,2)'"
	if filter != want {
		t.Fatalf("composite filter mismatch:\n got %q\nwant %q", filter, want)
	}
	if !hasArgPair(composite, "-c:v", "libx264") {
		t.Fatalf("composite must re-encode, got %v", composite)
	}
	if !hasArgPair(composite, "-i", filepath.Join(dir, "base.mp4")) || !hasArgPair(composite, "-i", overlay.Artifact()) {
		t.Fatalf("expected base and overlay inputs, got %v", composite)
	}
}

func TestTrackProcessLayerOrder(t *testing.T) {
	dir := t.TempDir()
	exec := &testsupport.RecordingExecutor{TouchOutputs: true}
	prober := &testsupport.FakeProber{Default: media.SourceInfo{Duration: 1.0, VideoCodec: "h264", HasVideo: true}}
	prober.Infos = map[string]media.SourceInfo{}
	tools := newToolset(t, exec, prober)

	track := NewTrack(dir, testMeta)
	base := videoSource(t, dir, "base.mp4")
	prober.Infos[base] = media.SourceInfo{Duration: 6.0, VideoCodec: "h264", HasVideo: true}
	addClip(t, track, dir, manifest.VideoClip{
		UID: "base", Path: base, Span: [2]string{"00:00:00.000", "00:00:06.000"},
	})
	upper := addClip(t, track, dir, manifest.VideoClip{
		UID: "upper", Path: videoSource(t, dir, "upper.mp4"), Span: [2]string{"00:00:02.000", "00:00:03.000"}, Layer: 2,
	})
	lower := addClip(t, track, dir, manifest.VideoClip{
		UID: "lower", Path: videoSource(t, dir, "lower.mp4"), Span: [2]string{"00:00:01.000", "00:00:02.000"}, Layer: 1,
	})

	if err := track.Process(context.Background(), tools, logging.NewNop()); err != nil {
		t.Fatalf("process: %v", err)
	}

	composite := commandFor(t, exec, track.Artifact())
	// Lower layer composites first, so it becomes input 1.
	if !hasArgPair(composite, "-i", lower.Artifact()) || !hasArgPair(composite, "-i", upper.Artifact()) {
		t.Fatalf("expected both overlays as inputs, got %v", composite)
	}
	filter := argValue(composite, "-filter_complex")
	want := "[1:v]setpts=PTS-STARTPTS+1/TB[fv1];[2:v]setpts=PTS-STARTPTS+2/TB[fv2];" +
		"[0:v][fv1]overlay=x=0:y=0:enable='between(t,1,2)'[ov1];" +
		"[ov1][fv2]overlay=x=0:y=0:enable='between(t,2,3)'"
	if filter != want {
		t.Fatalf("composite filter mismatch:\n got %q\nwant %q", filter, want)
	}
}

func TestTrackProcessNoBaseFails(t *testing.T) {
	dir := t.TempDir()
	tools := newToolset(t, &testsupport.RecordingExecutor{}, &testsupport.FakeProber{})

	track := NewTrack(dir, testMeta)
	addClip(t, track, dir, manifest.VideoClip{
		UID: "floating", Path: videoSource(t, dir, "floating.mp4"),
		Span: [2]string{"00:00:00.000", "00:00:02.000"}, Layer: 3,
	})

	err := track.Process(context.Background(), tools, logging.NewNop())
	if !errors.Is(err, faults.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
