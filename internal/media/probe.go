package media

import (
	"context"

	"stitch/internal/media/ffprobe"
)

// SourceInfo summarizes what the pipeline needs to know about a source asset.
type SourceInfo struct {
	Duration   float64
	VideoCodec string
	HasAudio   bool
	HasVideo   bool
}

// Prober introspects a source asset. Implementations must be safe for
// concurrent use; clip normalization runs probes from worker goroutines.
type Prober interface {
	Probe(ctx context.Context, path string) (SourceInfo, error)
}

// FFprobeProber probes assets by shelling out to ffprobe.
type FFprobeProber struct {
	Binary string
}

// Probe implements Prober.
func (p FFprobeProber) Probe(ctx context.Context, path string) (SourceInfo, error) {
	result, err := ffprobe.Inspect(ctx, p.Binary, path)
	if err != nil {
		return SourceInfo{}, err
	}
	return SourceInfo{
		Duration:   result.DurationSeconds(),
		VideoCodec: result.VideoCodec(),
		HasAudio:   result.HasAudioStream(),
		HasVideo:   result.HasVideoStream(),
	}, nil
}
