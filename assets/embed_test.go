package assets

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLabels_Embedded(t *testing.T) {
	labels := Labels()
	if len(labels) != 80 {
		t.Fatalf("expected 80 coco labels, got %d", len(labels))
	}
	if labels[0] != "person" || labels[79] != "toothbrush" {
		t.Fatalf("unexpected label order: first=%q last=%q", labels[0], labels[79])
	}
}

func TestLoadLabels_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.txt")
	if err := os.WriteFile(path, []byte("# custom\nball\n\n  racket \n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	labels, err := LoadLabels(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(labels) != 2 || labels[0] != "ball" || labels[1] != "racket" {
		t.Fatalf("unexpected labels: %q", labels)
	}
	if _, err := LoadLabels(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
