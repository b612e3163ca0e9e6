package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileName(t *testing.T) {
	at := time.Unix(1700000000, 0)
	tests := []struct {
		voice, style, want string
	}{
		{"nova", "News Anchor Style", "professional_audio_nova_News_Anchor_Style_1700000000.mp3"},
		{"alloy", "Professional & Authoritative", "professional_audio_alloy_Professional_Authoritative_1700000000.mp3"},
		{"echo", "Fast-paced & Dynamic", "professional_audio_echo_Fast-paced_Dynamic_1700000000.mp3"},
		{"sage", "Calm/Slow", "professional_audio_sage_Calm_Slow_1700000000.mp3"},
	}
	for _, tt := range tests {
		if got := FileName(tt.voice, tt.style, at); got != tt.want {
			t.Errorf("FileName(%q, %q) = %q, want %q", tt.voice, tt.style, got, tt.want)
		}
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "TTS_Output")
	fs := NewFileStore(dir)

	path, err := fs.Save("a.mp3", []byte("audio"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !filepath.IsAbs(path) {
		t.Errorf("path not absolute: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "audio" {
		t.Errorf("content = %q", data)
	}

	f, err := fs.Open("a.mp3")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	f.Close()
}

func TestRejectsTraversal(t *testing.T) {
	fs := NewFileStore(t.TempDir())
	for _, name := range []string{"", "..", "../secret.mp3", "sub/a.mp3", `..\a.mp3`, "/etc/passwd"} {
		if _, err := fs.Path(name); !errors.Is(err, ErrInvalidName) {
			t.Errorf("Path(%q) error = %v, want ErrInvalidName", name, err)
		}
	}
}
