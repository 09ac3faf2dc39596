package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const planManifest = `output: /tmp/show.mp4
video:
  meta:
    width: 1280
    height: 720
    bitrate: 2M
    fps: 30
  clips:
    - uid: intro
      path: /assets/intro.mp4
      span: ["00:00:00.000", "00:00:03.000"]
      extension: repeat_first
      shrink: trim_start
    - uid: badge
      path: /assets/badge.png
      span: ["00:00:01.000", "00:00:02.000"]
      layer: 1
audio:
  meta:
    sample_rate: 44100
  clips:
    - uid: bed
      path: /assets/bed.wav
      span: ["00:00:00.000", "00:00:03.000"]
      loop: true
      volume: 0.5
subtitle:
  clips:
    - uid: hello
      span: ["00:00:00.500", "00:00:02.500"]
      text: Hello there
`

func writeManifest(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "manifest.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestPlanCommandListsClips(t *testing.T) {
	path := writeManifest(t, planManifest)

	out, err := runCommand(t, "plan", path)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	for _, want := range []string{
		"Output: /tmp/show.mp4",
		"intro", "badge", "bed", "hello",
		"repeat_first/trim_start",
		"repeat_last/trim_end",
		"0.5",
		"Hello there",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("plan output missing %q:\n%s", want, out)
		}
	}
}

func TestPlanCommandRejectsInvalidManifest(t *testing.T) {
	path := writeManifest(t, "output: /tmp/out.mp4\n")

	if _, err := runCommand(t, "plan", path); err == nil {
		t.Fatal("plan should reject a manifest without tracks")
	}
}

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	out, err := runCommand(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, target) {
		t.Fatalf("expected target path in output, got %q", out)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "workspace_dir") {
		t.Fatalf("sample config missing workspace_dir:\n%s", data)
	}
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(target, []byte("# existing"), 0o644); err != nil {
		t.Fatalf("seed config: %v", err)
	}

	if _, err := runCommand(t, "config", "init", "--path", target); err == nil {
		t.Fatal("config init should refuse to overwrite without --overwrite")
	}
}
