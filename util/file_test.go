package util

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestSaveJsonCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "config.json")
	if err := SaveJson(path, map[string]int{"seed": 3}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bs, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := map[string]int{}
	if err := json.Unmarshal(bs, &out); err != nil || out["seed"] != 3 {
		t.Errorf("unexpected content %s", bs)
	}
}

func TestAppendToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lines.txt")
	if err := AppendToFile(path, "a", "b"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := AppendToFile(path, "c"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bs, _ := os.ReadFile(path)
	if string(bs) != "a\nb\nc\n" {
		t.Errorf("unexpected content %q", bs)
	}
}
