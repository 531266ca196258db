package report

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWritePDF(t *testing.T) {
	out := filepath.Join(t.TempDir(), "result.pdf")
	body := "First paragraph of the summary.\n\n## Key points\nPoint one.\nPoint two."
	if err := WritePDF("Article title", body, out); err != nil {
		t.Fatalf("WritePDF failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty PDF written")
	}
	if string(data[:5]) != "%PDF-" {
		t.Fatalf("output does not start with a PDF header: %q", data[:5])
	}
}

func TestWritePDF_EmptyTitle(t *testing.T) {
	out := filepath.Join(t.TempDir(), "untitled.pdf")
	if err := WritePDF("", "just a body line", out); err != nil {
		t.Fatalf("WritePDF failed: %v", err)
	}
}
