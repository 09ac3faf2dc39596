package logging

import "log/slog"

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldTaskID is the standardized structured logging key for task identifiers.
	FieldTaskID = "task_id"
	// FieldTrack is the standardized structured logging key for track kinds (audio/video).
	FieldTrack = "track"
	// FieldClip is the standardized structured logging key for clip identifiers.
	FieldClip = "clip"
	// FieldChannel is the standardized structured logging key for audio channel indexes.
	FieldChannel = "channel"
	// FieldLayer is the standardized structured logging key for video layer indexes.
	FieldLayer = "layer"
)

// WithComponent returns a logger tagged with the given component name.
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		return NewNop()
	}
	return logger.With(slog.String(FieldComponent, component))
}

// Error wraps an error as a slog attribute under the "error" key.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Any("error", err)
}
