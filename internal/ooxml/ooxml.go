// Package ooxml holds the WordprocessingML plumbing shared by the
// back-converter (which writes the final DOCX) and the word counter (which
// reads it back). A DOCX file is a ZIP package; the document body lives in
// word/document.xml.
package ooxml

import (
	"archive/zip"
	"fmt"
	"io"
)

// Common OOXML namespaces.
const (
	NSContentTypes     = "http://schemas.openxmlformats.org/package/2006/content-types"
	NSRelationships    = "http://schemas.openxmlformats.org/package/2006/relationships"
	NSWordprocessingML = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
)

// DocumentPath is the package part holding the document body.
const DocumentPath = "word/document.xml"

// ReadFileFromZip reads a named part from a DOCX package.
func ReadFileFromZip(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("part %q not found in package", name)
}
