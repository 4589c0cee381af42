package docmerge

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/docpipe/docmerge/internal/ooxml"
)

// WordFrequency is an insertion-ordered mapping from target word to its
// occurrence count. Duplicate targets are deduplicated when the table is
// built; the first occurrence keeps its display position.
type WordFrequency struct {
	words  []string
	counts map[string]int
}

func newWordFrequency(targets []string) *WordFrequency {
	t := &WordFrequency{counts: make(map[string]int, len(targets))}
	for _, w := range targets {
		w = norm.NFC.String(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, seen := t.counts[w]; seen {
			continue
		}
		t.words = append(t.words, w)
		t.counts[w] = 0
	}
	return t
}

// Words returns the target words in display order.
func (t *WordFrequency) Words() []string { return t.words }

// Count returns the occurrence count for word, 0 for unknown words. The
// lookup key is canonicalized the same way targets are at construction.
func (t *WordFrequency) Count(word string) int {
	return t.counts[norm.NFC.String(strings.TrimSpace(word))]
}

// Len returns the number of distinct target words.
func (t *WordFrequency) Len() int { return len(t.words) }

func (t *WordFrequency) add(token string) {
	if _, ok := t.counts[token]; ok {
		t.counts[token]++
	}
}

// countWords counts exact, case-sensitive, whole-word occurrences of each
// target word in text. Tokens are maximal runs of Unicode letters and
// digits; everything else (whitespace, punctuation) delimits. Both sides
// are NFC-normalized, then compared byte-for-byte: "Urgent" does not match
// "urgent", and "urgently" contributes nothing to "urgent". An empty target
// list yields an empty table.
func countWords(text string, targets []string) *WordFrequency {
	table := newWordFrequency(targets)
	if table.Len() == 0 {
		return table
	}
	tokens := strings.FieldsFunc(norm.NFC.String(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	for _, tok := range tokens {
		table.add(tok)
	}
	return table
}

// extractDocxText pulls all paragraph text out of a DOCX, including text
// inside table cells. Paragraphs are separated by newlines; explicit tabs
// and breaks become whitespace. Formatting is discarded.
func extractDocxText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read DOCX: %w", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open DOCX package: %w", err)
	}
	doc, err := ooxml.ReadFileFromZip(zr, ooxml.DocumentPath)
	if err != nil {
		return "", err
	}
	return documentText(doc)
}

// documentText walks word/document.xml collecting the character data of
// every <w:t> run. Table cells flow into the same stream: each cell ends
// with a tab, each row and paragraph with a newline, so whole-word
// tokenization never glues adjacent cells together.
func documentText(doc []byte) (string, error) {
	decoder := xml.NewDecoder(bytes.NewReader(doc))

	var (
		out    strings.Builder
		inText bool
	)
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse document.xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				out.WriteString("\t")
			case "br", "cr":
				out.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				out.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p", "tr":
				out.WriteString("\n")
			case "tc":
				out.WriteString("\t")
			}
		}
	}
	return out.String(), nil
}
