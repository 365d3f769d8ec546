package mimetype

import (
	"os"
	"path/filepath"
	"testing"
)

func TestByExtension(t *testing.T) {
	cases := map[string]string{
		"photo.png":     "image/png",
		"index.html":    "text/html; charset=utf-8",
		"notes.txt":     "text/plain; charset=utf-8",
		"archive.tar.gz": "application/gzip",
		"mystery.qqq":   defaultType,
		"noext":         defaultType,
	}
	for name, want := range cases {
		if got := ByExtension(name); got != want {
			t.Errorf("ByExtension(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestByExtensionOrSniffFallsBackToSniffing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "upload.bin")
	png := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}
	if err := os.WriteFile(path, png, 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if got := ByExtensionOrSniff(path); got != "image/png" {
		t.Errorf("ByExtensionOrSniff sniffed = %q, want image/png", got)
	}
}

func TestByExtensionOrSniffMissingFile(t *testing.T) {
	if got := ByExtensionOrSniff("/does/not/exist.bin"); got != defaultType {
		t.Errorf("ByExtensionOrSniff missing file = %q, want %q", got, defaultType)
	}
}
