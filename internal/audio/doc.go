// Package audio composes the audio track: clips are normalized to mono
// intermediates, mixed per channel with their timeline delays, and joined
// into one multi-channel artifact.
package audio
