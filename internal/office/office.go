// Package office runs external office-suite tooling to export DOC and DOCX
// files to PDF. Two backends exist: a local LibreOffice install driven in
// headless mode, and a LibreOffice container under docker or podman. Both
// satisfy the pipeline's DocumentConverter interface.
package office

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Backend converts one office document to PDF.
type Backend interface {
	// Convert writes a PDF rendition of the document at path into outDir
	// and returns the PDF path.
	Convert(ctx context.Context, path, outDir string) (string, error)

	// Name identifies the backend.
	Name() string

	// Close releases the backend.
	Close() error
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(ctx context.Context, name string, args ...string) error
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunSilent(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

func (o *osExecutor) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

var defaultExec executor = &osExecutor{}

// sofficeBins are the LibreOffice binary names tried in order.
var sofficeBins = []string{"soffice", "libreoffice"}

// Soffice exports documents through a local LibreOffice install in headless
// mode. It holds no state beyond the binary name; LibreOffice manages its
// own profile lock per invocation.
type Soffice struct {
	bin  string
	exec executor
}

// NewSoffice returns a backend for the first LibreOffice binary found on
// PATH.
func NewSoffice() (*Soffice, error) {
	return newSoffice(defaultExec)
}

func newSoffice(exec executor) (*Soffice, error) {
	for _, bin := range sofficeBins {
		if _, err := exec.LookPath(bin); err == nil {
			return &Soffice{bin: bin, exec: exec}, nil
		}
	}
	return nil, fmt.Errorf("LibreOffice not found on PATH (tried %s)", strings.Join(sofficeBins, ", "))
}

func (s *Soffice) Name() string { return s.bin }

func (s *Soffice) Close() error { return nil }

// Convert runs `soffice --headless --convert-to pdf` on path. LibreOffice
// names the output after the input with a .pdf extension inside outDir.
func (s *Soffice) Convert(ctx context.Context, path, outDir string) (string, error) {
	out, err := s.exec.Run(ctx, s.bin,
		"--headless", "--norestore", "--convert-to", "pdf", "--outdir", outDir, path)
	if err != nil {
		return "", fmt.Errorf("%s export failed: %w (output: %s)",
			s.bin, err, strings.TrimSpace(string(out)))
	}
	pdfPath := pdfSibling(path, outDir)
	if _, err := os.Stat(pdfPath); err != nil {
		return "", fmt.Errorf("%s produced no output for %s: %w", s.bin, path, err)
	}
	return pdfPath, nil
}

// pdfSibling is the output path LibreOffice produces for path inside
// outDir: same base name, .pdf extension.
func pdfSibling(path, outDir string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return filepath.Join(outDir, base+".pdf")
}
