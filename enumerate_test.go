package docmerge

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEnumerate(t *testing.T) {
	dir := t.TempDir()
	// Created out of order on purpose: enumeration order must come from
	// the sort, not from directory listing order.
	for _, name := range []string{"c.doc", "a.pdf", "notes.txt", "b.docx", "z.md"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.pdf"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := enumerate(dir)
	if err != nil {
		t.Fatalf("enumerate: %v", err)
	}

	wantFiles := []struct {
		base   string
		format Format
	}{
		{"a.pdf", FormatPDF},
		{"b.docx", FormatDocx},
		{"c.doc", FormatDoc},
	}
	if len(got.Files) != len(wantFiles) {
		t.Fatalf("got %d files, want %d", len(got.Files), len(wantFiles))
	}
	for i, want := range wantFiles {
		if filepath.Base(got.Files[i].Path) != want.base {
			t.Errorf("file[%d] = %s, want %s", i, filepath.Base(got.Files[i].Path), want.base)
		}
		if got.Files[i].Format != want.format {
			t.Errorf("file[%d] format = %s, want %s", i, got.Files[i].Format, want.format)
		}
	}

	wantUnsupported := []string{"notes.txt", "z.md"}
	if len(got.Unsupported) != len(wantUnsupported) {
		t.Fatalf("unsupported = %v, want %v", got.Unsupported, wantUnsupported)
	}
	for i, name := range wantUnsupported {
		if got.Unsupported[i] != name {
			t.Errorf("unsupported[%d] = %s, want %s", i, got.Unsupported[i], name)
		}
	}
}

func TestEnumerateMissingDir(t *testing.T) {
	if _, err := enumerate(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestDetectFormatByExtension(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"report.doc", FormatDoc},
		{"report.DOCX", FormatDocx},
		{"report.Pdf", FormatPDF},
		{"report.txt", FormatUnknown},
		{"archive.zip", FormatUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := detectFormat(tt.path); got != tt.want {
				t.Errorf("detectFormat(%s) = %s, want %s", tt.path, got, tt.want)
			}
		})
	}
}

func TestDetectFormatBySniffing(t *testing.T) {
	dir := t.TempDir()

	pdfPath := filepath.Join(dir, "extensionless")
	writeTestPDF(t, pdfPath, "hello")
	if got := detectFormat(pdfPath); got != FormatPDF {
		t.Errorf("detectFormat(pdf content) = %s, want %s", got, FormatPDF)
	}

	junkPath := filepath.Join(dir, "junk")
	if err := os.WriteFile(junkPath, []byte("not a document"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := detectFormat(junkPath); got != FormatUnknown {
		t.Errorf("detectFormat(junk) = %s, want %s", got, FormatUnknown)
	}
}
