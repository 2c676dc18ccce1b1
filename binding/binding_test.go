package binding

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ByLCY/omrkit/sheet"
)

func TestInterpolate(t *testing.T) {
	data := map[string]any{
		"school": map[string]any{"name": "Dhaka Model School", "branches": []any{"Mirpur", "Uttara"}},
		"examId": float64(20240315),
		"empty":  nil,
	}
	cases := []struct {
		in, want string
	}{
		{"${school.name}", "Dhaka Model School"},
		{"${ school.branches[1] }, Dhaka", "Uttara, Dhaka"},
		{"Exam ${examId}", "Exam 20240315"},
		{"${missing.path}", "${missing.path}"},
		{"${school.branches[9]}", "${school.branches[9]}"},
		{"[${empty}]", "[]"},
		{"no placeholders", "no placeholders"},
		{"${}", "${}"},
	}
	for _, c := range cases {
		if got := Interpolate(c.in, data); got != c.want {
			t.Fatalf("Interpolate(%q) = %q, want %q", c.in, got, c.want)
		}
	}
	if got := Interpolate("${a}", nil); got != "${a}" {
		t.Fatalf("nil data should leave text unchanged, got %q", got)
	}
	if got := Interpolate("ID ${examId}", map[string]string{"examId": "X-7"}); got != "ID X-7" {
		t.Fatalf("string maps should resolve, got %q", got)
	}
}

func TestConfig(t *testing.T) {
	in := sheet.Config{
		Variant:      sheet.Board,
		Institution:  "${school}",
		Address:      "${city}",
		Instructions: "1. Exam ${examId}",
		SetCodes:     []string{"${set}", "B"},
	}
	got := Config(in, map[string]any{"school": "Test School", "city": "Khulna", "examId": "E1", "set": "A"})
	want := in
	want.Institution, want.Address, want.Instructions = "Test School", "Khulna", "1. Exam E1"
	want.SetCodes = []string{"A", "B"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Config mismatch (-want +got):\n%s", diff)
	}
	if in.SetCodes[0] != "${set}" {
		t.Fatal("Config must not modify the caller's slice")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")
	if err := os.WriteFile(path, []byte(`{"school":{"name":"Rangpur Zilla School"}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	data, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if got := Interpolate("${school.name}", data); got != "Rangpur Zilla School" {
		t.Fatalf("unexpected value %q", got)
	}
	if _, err := LoadFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
