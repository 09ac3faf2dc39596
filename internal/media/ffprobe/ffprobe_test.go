package ffprobe

import "testing"

func TestResultHelpers(t *testing.T) {
	result := Result{
		Streams: []Stream{
			{CodecType: "video", CodecName: "h264", Duration: "5.000000"},
			{CodecType: "audio", CodecName: "aac", Duration: "4.950000"},
		},
		Format: Format{Duration: "5.016000"},
	}
	if got := result.DurationSeconds(); got != 5 {
		t.Fatalf("unexpected duration: %v", got)
	}
	if got := result.VideoCodec(); got != "h264" {
		t.Fatalf("unexpected codec: %q", got)
	}
	if !result.HasAudioStream() {
		t.Fatal("expected audio stream")
	}
	if !result.HasVideoStream() {
		t.Fatal("expected video stream")
	}
}

func TestDurationFallsBackToContainer(t *testing.T) {
	result := Result{
		Streams: []Stream{{CodecType: "video", Duration: "N/A"}},
		Format:  Format{Duration: "12.5"},
	}
	if got := result.DurationSeconds(); got != 12.5 {
		t.Fatalf("unexpected duration: %v", got)
	}
}

func TestStillImageReportsZeroDuration(t *testing.T) {
	result := Result{
		Streams: []Stream{{CodecType: "video", CodecName: "png"}},
		Format:  Format{FormatName: "png_pipe"},
	}
	if got := result.DurationSeconds(); got != 0 {
		t.Fatalf("unexpected duration: %v", got)
	}
	if result.HasAudioStream() {
		t.Fatal("unexpected audio stream")
	}
}
