package paths

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir, err := EnsureDir()
	if err != nil {
		t.Fatalf("EnsureDir() error = %v", err)
	}
	if want := filepath.Join(home, ".config", "moodwatch"); dir != want {
		t.Errorf("EnsureDir() = %q, want %q", dir, want)
	}
	if st, err := os.Stat(dir); err != nil || !st.IsDir() {
		t.Fatalf("config dir not created: %v", err)
	}

	logFile, err := LogFile()
	if err != nil {
		t.Fatalf("LogFile() error = %v", err)
	}
	if want := filepath.Join(dir, "moodwatch.log"); logFile != want {
		t.Errorf("LogFile() = %q, want %q", logFile, want)
	}

	audio, err := AudioCache()
	if err != nil {
		t.Fatalf("AudioCache() error = %v", err)
	}
	if want := filepath.Join(dir, "audio"); audio != want {
		t.Errorf("AudioCache() = %q, want %q", audio, want)
	}
}
