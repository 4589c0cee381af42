package docmerge

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/docpipe/docmerge/internal/ooxml"
)

// pdfToDocx converts the merged PDF into the final DOCX at docxPath. Layout
// fidelity is best-effort: each extracted text line becomes one paragraph.
// Returns the number of PDF pages read.
func pdfToDocx(pdfPath, docxPath string) (int, error) {
	f, r, err := pdf.Open(pdfPath)
	if err != nil {
		return 0, &BackConversionError{Path: pdfPath, Err: fmt.Errorf("open merged PDF: %w", err)}
	}
	defer f.Close()

	var paragraphs []string
	numPages := r.NumPage()
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text := normalizeText(extractPageText(page))
		for _, line := range strings.Split(text, "\n") {
			if strings.TrimSpace(line) != "" {
				paragraphs = append(paragraphs, line)
			}
		}
	}

	if err := ooxml.WriteDocx(docxPath, paragraphs); err != nil {
		return 0, &BackConversionError{Path: docxPath, Err: err}
	}
	return numPages, nil
}

// textSpan is a positioned text fragment on a PDF page.
type textSpan struct {
	x    float64
	y    float64
	text string
	size float64
}

// extractPageText pulls the text off one PDF page. It prefers GetTextByRow,
// which groups fragments into visual rows; when that yields nothing it falls
// back to grouping raw positioned fragments into lines by Y proximity.
func extractPageText(page pdf.Page) string {
	rows, err := page.GetTextByRow()
	if err == nil && len(rows) > 0 {
		var result strings.Builder
		for _, row := range rows {
			var line strings.Builder
			sawGap := false
			for _, word := range row.Content {
				if word.S == "" {
					// An empty fragment between non-empty ones marks a word boundary.
					sawGap = true
					continue
				}
				if line.Len() > 0 && sawGap && !strings.HasSuffix(line.String(), " ") {
					line.WriteString(" ")
				}
				line.WriteString(word.S)
				sawGap = false
			}
			if text := strings.TrimSpace(line.String()); text != "" {
				result.WriteString(text)
				result.WriteString("\n")
			}
		}
		if text := result.String(); strings.TrimSpace(text) != "" {
			return text
		}
	}

	return extractPositioned(page)
}

// extractPositioned is the fallback path: gather positioned fragments,
// bucket them into lines by Y proximity, then order each line by X and
// re-insert spaces where the horizontal gap exceeds a font-relative
// threshold.
func extractPositioned(page pdf.Page) string {
	content := page.Content()
	if len(content.Text) == 0 {
		return ""
	}

	var spans []textSpan
	for _, t := range content.Text {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		spans = append(spans, textSpan{x: t.X, y: t.Y, text: t.S, size: t.FontSize})
	}
	if len(spans) == 0 {
		return ""
	}

	yTolerance := 3.0
	if spans[0].size > 0 {
		yTolerance = spans[0].size * 0.3
	}

	type line struct {
		y     float64
		spans []textSpan
	}
	var lines []line
	for _, s := range spans {
		placed := false
		for i := range lines {
			if abs(lines[i].y-s.y) < yTolerance {
				lines[i].spans = append(lines[i].spans, s)
				placed = true
				break
			}
		}
		if !placed {
			lines = append(lines, line{y: s.y, spans: []textSpan{s}})
		}
	}

	// PDF Y grows upward: sort top to bottom.
	sort.Slice(lines, func(i, j int) bool { return lines[i].y > lines[j].y })

	var result strings.Builder
	for _, ln := range lines {
		sort.Slice(ln.spans, func(i, j int) bool { return ln.spans[i].x < ln.spans[j].x })

		var lineText strings.Builder
		var lastX, lastWidth float64
		for i, s := range ln.spans {
			if i > 0 {
				threshold := s.size * 0.2
				if threshold < 1.0 {
					threshold = 1.0
				}
				if s.x-(lastX+lastWidth) > threshold {
					lineText.WriteString(" ")
				}
			}
			lineText.WriteString(s.text)
			lastX = s.x
			lastWidth = float64(len([]rune(s.text))) * s.size * 0.55
		}

		if text := lineText.String(); strings.TrimSpace(text) != "" {
			result.WriteString(text)
			result.WriteString("\n")
		}
	}
	return result.String()
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
