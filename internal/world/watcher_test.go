package world

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func waitEvent(t *testing.T, w *Watcher) string {
	t.Helper()
	select {
	case name := <-w.Events:
		return name
	case err := <-w.Errors:
		t.Fatalf("Watcher error: %v", err)
	case <-time.After(3 * time.Second):
		t.Fatal("Timed out waiting for a watcher event")
	}
	return ""
}

func TestWatcherReportsSceneWrites(t *testing.T) {
	dir := t.TempDir()
	scene := filepath.Join(dir, "scene.yaml")
	other := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(scene, []byte("objects: []\n"), 0644); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(scene)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(other, []byte("ignored"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(scene, []byte("objects: []\nname: edited\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if got := waitEvent(t, w); got != filepath.Clean(scene) {
		t.Errorf("Expected event for %s, got %s", scene, got)
	}
}

func TestWatcherReportsSaveAfterItSettles(t *testing.T) {
	scene := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(scene, []byte("objects: []\n"), 0644); err != nil {
		t.Fatal(err)
	}
	w, err := NewWatcher(scene)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Close()

	// Truncate, then finish the write shortly after.
	f, err := os.OpenFile(scene, os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString("objects: []\n"); err != nil {
		t.Fatal(err)
	}
	time.Sleep(30 * time.Millisecond)
	if _, err := f.WriteString("name: final\n"); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	waitEvent(t, w)
	data, err := os.ReadFile(scene)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "name: final") {
		t.Errorf("Event arrived before the save finished, file was %q", data)
	}

	select {
	case name := <-w.Events:
		t.Errorf("Expected one event for the save, got another for %s", name)
	case <-time.After(3 * reloadDebounce):
	}
}

func TestWatcherDirectoryCoversYAMLOnly(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "readme.md"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	level := filepath.Join(dir, "level.yml")
	if err := os.WriteFile(level, []byte("objects: []\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if got := waitEvent(t, w); got != level {
		t.Errorf("Expected event for %s, got %s", level, got)
	}
}

func TestWatcherCloseClosesEvents(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Second Close should be a no-op, got %v", err)
	}

	select {
	case _, ok := <-w.Events:
		if ok {
			t.Error("Expected Events to be closed")
		}
	case <-time.After(time.Second):
		t.Error("Events was not closed")
	}
}

func TestIsSceneFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"demo.yaml", true},
		{"DEMO.YML", true},
		{"demo.json", false},
		{"yaml", false},
	}
	for _, tt := range tests {
		if got := isSceneFile(tt.path); got != tt.want {
			t.Errorf("isSceneFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
