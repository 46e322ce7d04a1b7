package ui

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/litescript/ls-transits/internal/aspect"
)

func waitReload(t *testing.T, w *OrbWatcher) OrbsReloadedMsg {
	t.Helper()
	select {
	case msg := <-w.Reloads:
		return msg
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
	return OrbsReloadedMsg{}
}

func TestOrbWatcherReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "orbs.toml")

	tbl := aspect.DefaultTable()
	if err := tbl.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	w, err := NewOrbWatcher(path)
	if err != nil {
		t.Fatalf("NewOrbWatcher: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	tbl.Aspects = []float64{aspect.Conjunction, aspect.Opposition}
	if err := tbl.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	msg := waitReload(t, w)
	if msg.Err != nil {
		t.Fatalf("reload error: %v", msg.Err)
	}
	if len(msg.Table.Aspects) != 2 {
		t.Errorf("Aspects = %v, want 2", msg.Table.Aspects)
	}

	if err := os.WriteFile(path, []byte("aspects = ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if msg := waitReload(t, w); msg.Err == nil {
		t.Error("a broken file should report an error")
	}
}

func TestOrbWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "orbs.toml")
	if err := aspect.DefaultTable().Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	w, err := NewOrbWatcher(path)
	if err != nil {
		t.Fatalf("NewOrbWatcher: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case msg := <-w.Reloads:
		t.Errorf("unexpected reload: %+v", msg)
	case <-time.After(400 * time.Millisecond):
	}
}
