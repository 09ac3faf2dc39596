package media

import (
	"stitch/internal/media/ffmpeg"
)

// Toolset bundles the external tool clients shared by tracks and clips. The
// pipeline owns no other process-spawning machinery: everything external
// goes through here.
type Toolset struct {
	FFmpeg *ffmpeg.Client
	Prober Prober
	// Workers bounds concurrent clip normalization; values below 1 mean
	// sequential processing.
	Workers int
}

// WorkerLimit returns the normalization concurrency limit, never below 1.
func (t Toolset) WorkerLimit() int {
	if t.Workers < 1 {
		return 1
	}
	return t.Workers
}
