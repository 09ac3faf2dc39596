package audio

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"stitch/internal/faults"
	"stitch/internal/logging"
	"stitch/internal/manifest"
	"stitch/internal/media"
	"stitch/internal/timecode"
)

// DefaultSampleRate applies when the manifest's audio meta leaves the rate
// unset.
const DefaultSampleRate = 44100

// Track assembles clips into one multi-channel audio artifact.
type Track struct {
	SampleRate int

	workspace string
	clips     []*Clip
	artifact  string
}

// NewTrack creates an audio track rooted in the given workspace directory.
func NewTrack(workspace string, meta manifest.AudioMeta) *Track {
	rate := meta.SampleRate
	if rate <= 0 {
		rate = DefaultSampleRate
	}
	return &Track{
		SampleRate: rate,
		workspace:  workspace,
		artifact:   filepath.Join(workspace, "audio.wav"),
	}
}

// Add places a clip on the track. Clips without their own sample rate
// inherit the track's.
func (t *Track) Add(c *Clip) {
	if c.SampleRate <= 0 {
		c.SampleRate = t.SampleRate
	}
	t.clips = append(t.clips, c)
}

// Empty reports whether the track carries no clips.
func (t *Track) Empty() bool {
	return len(t.clips) == 0
}

// Artifact returns the path of the processed track output.
func (t *Track) Artifact() string {
	return t.artifact
}

// Duration returns the track length: the latest span end across all clips.
func (t *Track) Duration() float64 {
	var max float64
	for _, c := range t.clips {
		if c.Span.End > max {
			max = c.Span.End
		}
	}
	return max
}

// SanityCheck validates the channel layout before any tool runs: channel
// numbers must be contiguous from zero and clips sharing a channel must not
// overlap.
func (t *Track) SanityCheck() error {
	if len(t.clips) == 0 {
		return faults.Wrap(faults.ErrConfiguration, "audio", "sanity check", "track has no clips", nil)
	}
	channels := t.channels()
	for i, ch := range channels {
		if ch != i {
			return faults.Wrap(faults.ErrConfiguration, "audio", "sanity check",
				fmt.Sprintf("channels must be contiguous from 0, missing channel %d", i), nil)
		}
	}
	for _, ch := range channels {
		clips := t.channelClips(ch)
		sort.Slice(clips, func(i, j int) bool { return clips[i].Span.Start < clips[j].Span.Start })
		for i := 1; i < len(clips); i++ {
			prev, cur := clips[i-1], clips[i]
			if prev.Span.Overlaps(cur.Span) {
				return faults.Wrap(faults.ErrConfiguration, "audio", "sanity check",
					fmt.Sprintf("clips %s and %s overlap on channel %d", prev.UID, cur.UID, ch), nil)
			}
		}
	}
	return nil
}

// Process renders the track artifact: clips are normalized concurrently,
// each channel is mixed down with its timeline delays, and the channels are
// joined into one multi-channel file at the track's sample rate.
func (t *Track) Process(ctx context.Context, tools media.Toolset, logger *slog.Logger) error {
	if err := t.SanityCheck(); err != nil {
		return err
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(tools.WorkerLimit())
	for _, clip := range t.clips {
		clip := clip
		group.Go(func() error {
			return clip.Normalize(groupCtx, tools, logger)
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	channels := t.channels()
	channelPaths := make([]string, len(channels))
	for _, ch := range channels {
		channelPaths[ch] = filepath.Join(t.workspace, fmt.Sprintf("ch_%d.wav", ch))
		if err := t.mixChannel(ctx, tools, logger, ch, channelPaths[ch]); err != nil {
			return err
		}
	}

	return t.joinChannels(ctx, tools, logger, channels, channelPaths)
}

// mixChannel delays every clip of the channel to its span start and mixes
// them additively. The mix is deliberately not amplitude-normalized; loudness
// is controlled per clip through its volume setting.
func (t *Track) mixChannel(ctx context.Context, tools media.Toolset, logger *slog.Logger, channel int, out string) error {
	clips := t.channelClips(channel)

	args := make([]string, 0, 2*len(clips)+8)
	filters := make([]string, 0, len(clips))
	var labels strings.Builder
	for i, clip := range clips {
		delay := clip.Span.StartMillis()
		args = append(args, "-i", clip.Artifact())
		filters = append(filters, fmt.Sprintf("[%d:a]adelay=%d|%d[a%d]", i, delay, delay, i))
		fmt.Fprintf(&labels, "[a%d]", i)
	}
	filterComplex := strings.Join(filters, "; ") +
		fmt.Sprintf("; %samix=inputs=%d:normalize=0", labels.String(), len(clips))

	args = append(args, "-filter_complex", filterComplex)
	args = append(args, "-ar", strconv.Itoa(t.SampleRate))
	args = append(args, out)

	logger.Info("mixing audio channel",
		slog.Int(logging.FieldChannel, channel),
		slog.Int("clips", len(clips)))
	if err := tools.FFmpeg.Run(ctx, args...); err != nil {
		return faults.Wrap(faults.ErrExternalTool, "audio",
			fmt.Sprintf("channel %d", channel), "mix", err)
	}
	return nil
}

// joinChannels pads short channels with tail silence and joins all channel
// files into one artifact. Channels still short of the track duration are
// listed first in the join, followed by the full-length ones.
func (t *Track) joinChannels(ctx context.Context, tools media.Toolset, logger *slog.Logger, channels []int, channelPaths []string) error {
	trackDuration := t.Duration()
	atMax := make(map[int]bool, len(channels))
	for _, ch := range channels {
		var end float64
		for _, clip := range t.channelClips(ch) {
			if clip.Span.End > end {
				end = clip.Span.End
			}
		}
		atMax[ch] = timecode.Equal(end, trackDuration)
	}

	args := make([]string, 0, 2*len(channels)+10)
	for _, ch := range channels {
		args = append(args, "-i", channelPaths[ch])
	}

	var filter strings.Builder
	for _, ch := range channels {
		if atMax[ch] {
			fmt.Fprintf(&filter, "[%d:a]anull[a%d];", ch, ch)
		} else {
			fmt.Fprintf(&filter, "[%d:a]apad[a%d];", ch, ch)
		}
	}
	for _, ch := range channels {
		if !atMax[ch] {
			fmt.Fprintf(&filter, "[a%d]", ch)
		}
	}
	for _, ch := range channels {
		if atMax[ch] {
			fmt.Fprintf(&filter, "[a%d]", ch)
		}
	}
	fmt.Fprintf(&filter, "join=inputs=%d:channel_layout=%dc[out]", len(channels), len(channels))

	args = append(args, "-filter_complex", filter.String())
	args = append(args, "-map", "[out]")
	args = append(args, "-ar", strconv.Itoa(t.SampleRate))
	args = append(args, "-t", timecode.FormatSeconds(trackDuration))
	args = append(args, t.artifact)

	logger.Info("joining audio channels",
		slog.Int("channels", len(channels)),
		slog.String("duration", timecode.FormatSeconds(trackDuration)))
	if err := tools.FFmpeg.Run(ctx, args...); err != nil {
		return faults.Wrap(faults.ErrExternalTool, "audio", "join channels", "", err)
	}
	return nil
}

// channels returns the sorted distinct channel indexes in use.
func (t *Track) channels() []int {
	seen := make(map[int]struct{})
	for _, c := range t.clips {
		seen[c.Channel] = struct{}{}
	}
	channels := make([]int, 0, len(seen))
	for ch := range seen {
		channels = append(channels, ch)
	}
	sort.Ints(channels)
	return channels
}

// channelClips returns the clips of one channel in insertion order.
func (t *Track) channelClips(channel int) []*Clip {
	clips := make([]*Clip, 0, len(t.clips))
	for _, c := range t.clips {
		if c.Channel == channel {
			clips = append(clips, c)
		}
	}
	return clips
}
