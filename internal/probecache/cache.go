package probecache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	_ "modernc.org/sqlite"

	"stitch/internal/logging"
	"stitch/internal/media"
)

const schema = `
CREATE TABLE IF NOT EXISTS probe_results (
    path          TEXT    NOT NULL,
    size          INTEGER NOT NULL,
    mtime_unix_ms INTEGER NOT NULL,
    duration      REAL    NOT NULL,
    video_codec   TEXT    NOT NULL,
    has_audio     INTEGER NOT NULL,
    has_video     INTEGER NOT NULL,
    created_at    TEXT    NOT NULL,
    PRIMARY KEY (path, size, mtime_unix_ms)
)`

// Store manages probe result persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the cache database.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create probe_results table: %w", err)
	}

	return &Store{db: db, path: dbPath}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Lookup returns the cached SourceInfo for the given file identity.
func (s *Store) Lookup(ctx context.Context, path string, size, mtimeMillis int64) (media.SourceInfo, bool, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT duration, video_codec, has_audio, has_video
         FROM probe_results WHERE path = ? AND size = ? AND mtime_unix_ms = ?`,
		path, size, mtimeMillis,
	)

	var info media.SourceInfo
	var hasAudio, hasVideo int
	if err := row.Scan(&info.Duration, &info.VideoCodec, &hasAudio, &hasVideo); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return media.SourceInfo{}, false, nil
		}
		return media.SourceInfo{}, false, fmt.Errorf("lookup probe result: %w", err)
	}
	info.HasAudio = hasAudio != 0
	info.HasVideo = hasVideo != 0
	return info, true, nil
}

// Save stores a probe result, replacing any previous entry for the same
// file identity.
func (s *Store) Save(ctx context.Context, path string, size, mtimeMillis int64, info media.SourceInfo) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT OR REPLACE INTO probe_results
            (path, size, mtime_unix_ms, duration, video_codec, has_audio, has_video, created_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		path, size, mtimeMillis,
		info.Duration, info.VideoCodec, boolInt(info.HasAudio), boolInt(info.HasVideo),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save probe result: %w", err)
	}
	return nil
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

// Prober wraps another prober with cache reads and write-through. Cache
// failures are logged and degrade to a direct probe, never to a task abort.
type Prober struct {
	Inner  media.Prober
	Store  *Store
	Logger *slog.Logger
}

// Probe implements media.Prober.
func (p *Prober) Probe(ctx context.Context, path string) (media.SourceInfo, error) {
	logger := p.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	stat, statErr := os.Stat(path)
	if statErr != nil || p.Store == nil {
		return p.Inner.Probe(ctx, path)
	}
	size := stat.Size()
	mtime := stat.ModTime().UnixMilli()

	if info, ok, err := p.Store.Lookup(ctx, path, size, mtime); err != nil {
		logger.Warn("probe cache lookup failed", "path", path, logging.Error(err))
	} else if ok {
		return info, nil
	}

	info, err := p.Inner.Probe(ctx, path)
	if err != nil {
		return media.SourceInfo{}, err
	}
	if err := p.Store.Save(ctx, path, size, mtime, info); err != nil {
		logger.Warn("probe cache save failed", "path", path, logging.Error(err))
	}
	return info, nil
}
