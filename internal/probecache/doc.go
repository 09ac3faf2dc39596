// Package probecache persists ffprobe results in SQLite so repeated runs
// skip re-probing unchanged source assets. Entries are keyed by path, size,
// and modification time; any change to the file invalidates its entry.
package probecache
