package media

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWatcherStartStop(t *testing.T) {
	lib := newTestLibrary(t, map[string]string{"sub/inner.mp3": "x"})

	w, err := NewWatcher(lib)
	if err != nil {
		t.Skipf("fsnotify unavailable: %v", err)
	}

	// Dropping a file in a watched subdirectory must not wedge the event
	// loop; we only assert clean startup and shutdown here, the log
	// output is best-effort.
	if err := os.WriteFile(filepath.Join(lib.Root(), "sub", "new.mp3"), []byte("y"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}
