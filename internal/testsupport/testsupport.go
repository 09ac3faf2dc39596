// Package testsupport provides shared fakes and helpers for pipeline tests:
// a recording command executor, a canned prober, and test config generation.
package testsupport

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"stitch/internal/config"
	"stitch/internal/media"
)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.WorkspaceDir = filepath.Join(base, "workspace")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.ProbeCache.Enabled = false
	cfg.ProbeCache.Path = filepath.Join(base, "probe.db")
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return &cfg
}

// RecordingExecutor captures every argument vector instead of spawning
// processes. When TouchOutputs is set, the final argument of each invocation
// is created as an empty file so downstream move/copy steps find their
// artifact.
type RecordingExecutor struct {
	mu           sync.Mutex
	Commands     [][]string
	TouchOutputs bool
	Err          error
}

// Run implements ffmpeg.Executor.
func (e *RecordingExecutor) Run(_ context.Context, binary string, args []string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	recorded := append([]string{binary}, args...)
	e.Commands = append(e.Commands, recorded)
	if e.Err != nil {
		return e.Err
	}
	if e.TouchOutputs && len(args) > 0 {
		out := args[len(args)-1]
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(out, nil, 0o644); err != nil {
			return err
		}
	}
	return nil
}

// Invocations returns the number of recorded commands.
func (e *RecordingExecutor) Invocations() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.Commands)
}

// Last returns the most recent recorded command, or nil.
func (e *RecordingExecutor) Last() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.Commands) == 0 {
		return nil
	}
	return e.Commands[len(e.Commands)-1]
}

// FakeProber returns canned SourceInfo per path, falling back to Default.
type FakeProber struct {
	mu      sync.Mutex
	Infos   map[string]media.SourceInfo
	Default media.SourceInfo
	Err     error
	Probes  int
}

// Probe implements media.Prober.
func (p *FakeProber) Probe(_ context.Context, path string) (media.SourceInfo, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.Probes++
	if p.Err != nil {
		return media.SourceInfo{}, p.Err
	}
	if info, ok := p.Infos[path]; ok {
		return info, nil
	}
	return p.Default, nil
}

// WriteFile creates path (and parents) with the given content.
func WriteFile(t testing.TB, path string, content []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
