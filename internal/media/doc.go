// Package media holds the shared toolkit the track pipelines are built on:
// source probing, still-image sniffing, and the Toolset bundle handed to
// tracks and clips.
package media
