// Copyright 2026 Docpipe Authors
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package docmerge

import "context"

// Format identifies a recognized input document format.
type Format int

const (
	FormatUnknown Format = iota
	FormatDoc
	FormatDocx
	FormatPDF
)

func (f Format) String() string {
	switch f {
	case FormatDoc:
		return "doc"
	case FormatDocx:
		return "docx"
	case FormatPDF:
		return "pdf"
	}
	return "unknown"
}

// FileRef is one enumerated input document: a file-system path plus the
// format detected for it. Created during enumeration, never mutated.
type FileRef struct {
	Path   string
	Format Format
}

// DocumentConverter abstracts the external office-suite tooling used to
// export DOC/DOCX files to PDF, so alternate backends (a local LibreOffice
// install, a containerized converter) can be substituted without touching
// the pipeline.
type DocumentConverter interface {
	// Convert writes a PDF rendition of the document at path into outDir
	// and returns the path of the PDF it produced. The original file is
	// left untouched. Convert must honor ctx cancellation.
	Convert(ctx context.Context, path, outDir string) (string, error)

	// Name identifies the backend, e.g. "soffice" or "docker".
	Name() string

	// Close releases any resources held by the backend.
	Close() error
}

// ConversionResult pairs a FileRef with either its PDF rendition or the
// reason conversion failed. Results are collected in enumeration order;
// that order determines merge order.
type ConversionResult struct {
	Source  FileRef
	PDFPath string
	Pages   int
	Err     error
}

// OK reports whether the file contributed a usable PDF.
func (r ConversionResult) OK() bool { return r.Err == nil }

// Identity reports whether the file was already a PDF and passed through
// without conversion.
func (r ConversionResult) Identity() bool {
	return r.Err == nil && r.Source.Format == FormatPDF
}
