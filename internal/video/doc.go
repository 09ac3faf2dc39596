// Package video composes the video track: base-layer clips are normalized
// and losslessly concatenated into a contiguous timeline, then overlay clips
// are composited on top within their visibility windows.
package video
