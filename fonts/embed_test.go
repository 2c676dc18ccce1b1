package fonts

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadBuiltin(t *testing.T) {
	for _, name := range []string{Regular, Bold} {
		data, err := Load("embed:" + name)
		if err != nil {
			t.Fatalf("load %s: %v", name, err)
		}
		if len(data) < 1024 {
			t.Fatalf("font %s looks truncated: %d bytes", name, len(data))
		}
	}
	if _, err := Load("embed:Inter-Regular"); err == nil {
		t.Fatal("expected error for unknown builtin font")
	}
}

func TestLoadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "font.ttf")
	want := []byte{0, 1, 0, 0}
	if err := os.WriteFile(path, want, 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load path: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("unexpected bytes %v", got)
	}
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}
