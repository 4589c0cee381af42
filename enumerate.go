package docmerge

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// enumeration holds the outcome of scanning the input folder: the files the
// pipeline will process, in merge order, plus the names it passed over.
type enumeration struct {
	Files       []FileRef
	Unsupported []string
}

// enumerate scans dir (non-recursively) for DOC, DOCX and PDF files. The
// returned order is lexicographic by base filename (byte order), which is
// the merge order: it is stable across runs and independent of how the
// directory happens to list its entries.
func enumerate(dir string) (enumeration, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return enumeration{}, fmt.Errorf("read input folder: %w", err)
	}

	var out enumeration
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		format := detectFormat(path)
		if format == FormatUnknown {
			out.Unsupported = append(out.Unsupported, entry.Name())
			continue
		}
		out.Files = append(out.Files, FileRef{Path: path, Format: format})
	}

	sort.Slice(out.Files, func(i, j int) bool {
		return filepath.Base(out.Files[i].Path) < filepath.Base(out.Files[j].Path)
	})
	sort.Strings(out.Unsupported)
	return out, nil
}

// detectFormat infers the document format from the file extension, falling
// back to content-based MIME detection for files without a recognized
// extension.
func detectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".doc":
		return FormatDoc
	case ".docx":
		return FormatDocx
	case ".pdf":
		return FormatPDF
	case "":
		// fall through to content sniffing
	default:
		return FormatUnknown
	}

	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return FormatUnknown
	}
	switch {
	case mtype.Is("application/pdf"):
		return FormatPDF
	case mtype.Is("application/vnd.openxmlformats-officedocument.wordprocessingml.document"):
		return FormatDocx
	case mtype.Is("application/msword"):
		return FormatDoc
	}
	return FormatUnknown
}
