package workspace

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAcquireCreatesSessionDir(t *testing.T) {
	base := filepath.Join(t.TempDir(), "work")

	ws, err := Acquire(base)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer ws.Release()

	info, err := os.Stat(ws.Root)
	if err != nil || !info.IsDir() {
		t.Fatalf("session dir missing: %v", err)
	}
	if filepath.Dir(ws.Root) != base {
		t.Fatalf("session dir %s not under %s", ws.Root, base)
	}
}

func TestDirCreatesSubdirectories(t *testing.T) {
	ws, err := Acquire(t.TempDir())
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer ws.Release()

	dir, err := ws.Dir("audio")
	if err != nil {
		t.Fatalf("dir: %v", err)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Fatalf("subdir missing: %v", err)
	}
}

func TestReleaseRemovesSession(t *testing.T) {
	base := t.TempDir()
	ws, err := Acquire(base)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if _, err := ws.Dir("video"); err != nil {
		t.Fatalf("dir: %v", err)
	}

	if err := ws.Release(); err != nil {
		t.Fatalf("release: %v", err)
	}
	if _, err := os.Stat(ws.Root); !os.IsNotExist(err) {
		t.Fatalf("session dir should be gone, stat err: %v", err)
	}
}

func TestAcquireRefusesSecondHolder(t *testing.T) {
	base := t.TempDir()
	first, err := Acquire(base)
	if err != nil {
		t.Fatalf("first acquire: %v", err)
	}
	defer first.Release()

	if _, err := Acquire(base); err == nil {
		t.Fatal("second acquire should fail while lock is held")
	}
}
