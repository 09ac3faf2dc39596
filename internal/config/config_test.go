package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"stitch/internal/config"
)

func TestLoadDefaultsAndExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	prevDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd returned error: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("Chdir returned error: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prevDir); err != nil {
			t.Fatalf("restoring working directory: %v", err)
		}
	})

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantWorkspace := filepath.Join(tempHome, ".local", "share", "stitch", "workspace")
	if cfg.Paths.WorkspaceDir != wantWorkspace {
		t.Fatalf("unexpected workspace dir: got %q want %q", cfg.Paths.WorkspaceDir, wantWorkspace)
	}
	if cfg.Tools.FFmpegBinary != "ffmpeg" || cfg.Tools.FFprobeBinary != "ffprobe" {
		t.Fatalf("unexpected tool binaries: %+v", cfg.Tools)
	}
	if cfg.Processing.Workers != 2 {
		t.Fatalf("unexpected worker count: %d", cfg.Processing.Workers)
	}
	if !cfg.ProbeCache.Enabled {
		t.Fatal("expected probe cache enabled by default")
	}
}

func TestLoadExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stitch.toml")
	content := strings.Join([]string{
		"[tools]",
		`ffmpeg_binary = "/opt/ffmpeg/bin/ffmpeg"`,
		"",
		"[processing]",
		"workers = 4",
		"",
		"[probe_cache]",
		"enabled = false",
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("unexpected resolution: exists=%v path=%q", exists, resolved)
	}
	if cfg.Tools.FFmpegBinary != "/opt/ffmpeg/bin/ffmpeg" {
		t.Fatalf("unexpected ffmpeg binary: %q", cfg.Tools.FFmpegBinary)
	}
	if cfg.Processing.Workers != 4 {
		t.Fatalf("unexpected workers: %d", cfg.Processing.Workers)
	}
	if cfg.ProbeCache.Enabled {
		t.Fatal("expected probe cache disabled")
	}
	// Defaults still fill unset sections.
	if cfg.Tools.FFprobeBinary != "ffprobe" {
		t.Fatalf("unexpected ffprobe binary: %q", cfg.Tools.FFprobeBinary)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := config.Default()
	cfg.Processing.Workers = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative workers")
	}

	cfg = config.Default()
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for bad log format")
	}
}

func TestSampleConfigParses(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.toml")
	if err := os.WriteFile(path, []byte(config.SampleConfig()), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := config.Load(path); err != nil {
		t.Fatalf("sample config should load: %v", err)
	}
}
