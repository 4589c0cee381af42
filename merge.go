package docmerge

import (
	"errors"
	"fmt"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// countPages returns the number of pages in the PDF at path. It doubles as
// the readability gate: a PDF this cannot open (corrupt, encrypted) is
// skipped per-file instead of poisoning the merge later.
func countPages(path string) (int, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open PDF: %w", err)
	}
	defer f.Close()
	n := r.NumPage()
	if n < 1 {
		return 0, fmt.Errorf("PDF has no pages")
	}
	return n, nil
}

// mergePDFs concatenates the given PDFs into outPath. Pages of file i
// precede pages of file i+1; no page content is transformed. An empty
// input list fails fast rather than producing a zero-page document.
func mergePDFs(paths []string, outPath string) error {
	if len(paths) == 0 {
		return &MergeError{Err: errors.New("no PDFs to merge")}
	}
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	if err := api.MergeCreateFile(paths, outPath, false, conf); err != nil {
		return &MergeError{Err: err}
	}
	return nil
}
