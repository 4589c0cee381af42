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

// Package docmerge merges a folder of heterogeneous office documents (DOC,
// DOCX, PDF) into a single PDF, converts that PDF back into DOCX, counts
// target-word occurrences in the result, and keeps an audit log of every
// step. The pipeline is a linear state machine; per-file conversion
// failures are recorded and skipped, merge and back-conversion failures
// abort the run.
package docmerge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultConvertTimeout = 2 * time.Minute

// Job describes one run: the input folder, the final DOCX filename and the
// target words, in the order the user entered them.
type Job struct {
	InputDir   string
	OutputName string
	Words      []string
}

// Pipeline drives the merge-convert-count sequence. A Pipeline is
// single-threaded: one run at a time, stages strictly sequential.
type Pipeline struct {
	backend        DocumentConverter
	logger         *zap.Logger
	outputDir      string
	convertTimeout time.Duration
	reportName     string
	fallback       io.Writer
}

// New creates a Pipeline with the given options.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		logger:         zap.NewNop(),
		outputDir:      defaultOutputDir(),
		convertTimeout: defaultConvertTimeout,
		fallback:       os.Stderr,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes the full pipeline for job. The returned Report is non-nil on
// every path, including aborts, so callers can always print the summary and
// the audit log location. The error is non-nil exactly when the run ended
// in StateAborted.
func (p *Pipeline) Run(ctx context.Context, job Job) (*Report, error) {
	rep := &Report{
		InputDir:  job.InputDir,
		StartedAt: time.Now(),
		State:     StateCollectInputs,
	}

	// CollectInputs
	job, err := p.collectInputs(job)
	if err != nil {
		rep.State = StateAborted
		rep.FailedStage = StateCollectInputs
		rep.Err = err
		rep.FinishedAt = time.Now()
		return rep, err
	}
	rep.OutputPath = filepath.Join(p.outputDir, job.OutputName)

	// The output directory must exist before the audit log opens inside it:
	// the log file is the durable record of the run.
	if err := os.MkdirAll(p.outputDir, 0o755); err != nil {
		rep.State = StateAborted
		rep.FailedStage = StateCollectInputs
		rep.Err = &InputValidationError{Field: "output directory", Reason: err.Error()}
		rep.FinishedAt = time.Now()
		return rep, rep.Err
	}

	audit, auditErr := OpenAuditLog(p.auditPath(job.OutputName), p.fallback)
	rep.AuditPath = audit.Path()
	defer audit.Close()
	if auditErr != nil {
		// Non-fatal: entries go to the fallback writer instead.
		p.logger.Warn("audit log unavailable", zap.Error(auditErr))
	}

	audit.Record(LevelInfo, "run started: input folder %q, output %q, %d target word(s)",
		job.InputDir, job.OutputName, len(job.Words))

	files, err := enumerate(job.InputDir)
	if err != nil {
		return p.abort(rep, audit, StateCollectInputs,
			&InputValidationError{Field: "input folder", Reason: err.Error()})
	}
	rep.Unsupported = files.Unsupported
	for _, name := range files.Unsupported {
		audit.Record(LevelInfo, "skipping unsupported file format: %s", name)
	}

	workDir, err := os.MkdirTemp("", "docmerge-")
	if err != nil {
		return p.abort(rep, audit, StateConvertAll,
			fmt.Errorf("create work directory: %w", err))
	}
	defer os.RemoveAll(workDir)

	// ConvertAll: degrade gracefully, never abort.
	rep.State = StateConvertAll
	rep.Results = p.convertAll(ctx, files.Files, workDir, audit)

	// Merge
	rep.State = StateMerge
	merged, pages, err := p.merge(rep.Results, workDir, audit)
	if err != nil {
		return p.abort(rep, audit, StateMerge, err)
	}
	rep.MergedPages = pages

	// BackConvert
	rep.State = StateBackConvert
	if _, err := pdfToDocx(merged, rep.OutputPath); err != nil {
		return p.abort(rep, audit, StateBackConvert, err)
	}
	audit.Record(LevelInfo, "converted merged PDF to DOCX: %s", rep.OutputPath)
	p.logger.Info("back-conversion complete", zap.String("output", rep.OutputPath))

	// CountWords
	rep.State = StateCountWords
	rep.Words = newWordFrequency(job.Words)
	if rep.Words.Len() > 0 {
		text, err := extractDocxText(rep.OutputPath)
		if err != nil {
			// The deliverable we just wrote is unreadable: fatal.
			return p.abort(rep, audit, StateBackConvert,
				&BackConversionError{Path: rep.OutputPath, Err: err})
		}
		rep.Words = countWords(text, job.Words)
		for _, w := range rep.Words.Words() {
			audit.Record(LevelInfo, "word %q: %d occurrence(s)", w, rep.Words.Count(w))
		}
	}

	// WriteLog
	rep.State = StateWriteLog
	if p.reportName != "" {
		path := filepath.Join(p.outputDir, p.reportName)
		if err := rep.WriteXLSX(path); err != nil {
			audit.Record(LevelWarn, "report not written: %v", err)
		} else {
			audit.Record(LevelInfo, "report written: %s", path)
		}
	}

	rep.State = StateDone
	rep.FinishedAt = time.Now()
	audit.Record(LevelInfo, "run finished: %d processed, %d skipped, %d failed, %d pages, elapsed %s",
		rep.Processed(), rep.Skipped(), rep.Failed(), rep.MergedPages,
		rep.Elapsed().Round(time.Millisecond))
	return rep, nil
}

// collectInputs validates and canonicalizes the job before any processing.
func (p *Pipeline) collectInputs(job Job) (Job, error) {
	info, err := os.Stat(job.InputDir)
	if err != nil {
		return job, &InputValidationError{Field: "input folder", Reason: err.Error()}
	}
	if !info.IsDir() {
		return job, &InputValidationError{Field: "input folder", Reason: "not a directory"}
	}

	name := strings.TrimSpace(job.OutputName)
	if name == "" {
		return job, &InputValidationError{Field: "output name", Reason: "must not be empty"}
	}
	if filepath.Base(name) != name {
		return job, &InputValidationError{Field: "output name", Reason: "must be a bare filename"}
	}
	if !strings.HasSuffix(strings.ToLower(name), ".docx") {
		name += ".docx"
	}
	job.OutputName = name

	// An empty word list is fine: the counting stage becomes a no-op.
	return job, nil
}

// convertAll produces one ConversionResult per input file, in enumeration
// order. Failures are recorded and skipped; this stage never aborts.
func (p *Pipeline) convertAll(ctx context.Context, files []FileRef, workDir string, audit *AuditLog) []ConversionResult {
	results := make([]ConversionResult, 0, len(files))
	for _, ref := range files {
		res := p.convertOne(ctx, ref, workDir)
		if res.OK() {
			if res.Identity() {
				audit.Record(LevelInfo, "added existing PDF: %s (%d page(s))", ref.Path, res.Pages)
			} else {
				audit.Record(LevelInfo, "converted %s to PDF (%d page(s))", ref.Path, res.Pages)
			}
		} else {
			audit.Record(LevelError, "skipping %s: %v", ref.Path, res.Err)
			p.logger.Warn("conversion failed", zap.String("path", ref.Path), zap.Error(res.Err))
		}
		results = append(results, res)
	}
	return results
}

func (p *Pipeline) convertOne(ctx context.Context, ref FileRef, workDir string) ConversionResult {
	res := ConversionResult{Source: ref}

	pdfPath := ref.Path
	if ref.Format != FormatPDF {
		if p.backend == nil {
			res.Err = &ConversionError{Path: ref.Path, Err: errors.New("no conversion backend configured")}
			return res
		}
		cctx := ctx
		if p.convertTimeout > 0 {
			var cancel context.CancelFunc
			cctx, cancel = context.WithTimeout(ctx, p.convertTimeout)
			defer cancel()
		}
		out, err := p.backend.Convert(cctx, ref.Path, workDir)
		if err != nil {
			res.Err = &ConversionError{Path: ref.Path, Err: err}
			return res
		}
		pdfPath = out
	}

	pages, err := countPages(pdfPath)
	if err != nil {
		res.Err = &ConversionError{Path: ref.Path, Err: err}
		return res
	}
	res.PDFPath = pdfPath
	res.Pages = pages
	return res
}

// merge concatenates the successful results, verifies the page-count
// invariant, and returns the merged PDF path and its page count.
func (p *Pipeline) merge(results []ConversionResult, workDir string, audit *AuditLog) (string, int, error) {
	var paths []string
	wantPages := 0
	for _, res := range results {
		if res.OK() {
			paths = append(paths, res.PDFPath)
			wantPages += res.Pages
		}
	}

	merged := filepath.Join(workDir, "merged.pdf")
	if err := mergePDFs(paths, merged); err != nil {
		return "", 0, err
	}

	pages, err := countPages(merged)
	if err != nil {
		return "", 0, &MergeError{Err: fmt.Errorf("merged document unreadable: %w", err)}
	}
	if pages != wantPages {
		return "", 0, &MergeError{Err: fmt.Errorf("merged document has %d pages, inputs total %d", pages, wantPages)}
	}

	audit.Record(LevelInfo, "merged %d PDF(s), %d total page(s)", len(paths), pages)
	p.logger.Info("merge complete", zap.Int("files", len(paths)), zap.Int("pages", pages))
	return merged, pages, nil
}

// abort records the fatal error, flushes the audit log state, and finalizes
// the report in StateAborted.
func (p *Pipeline) abort(rep *Report, audit *AuditLog, stage State, err error) (*Report, error) {
	rep.State = StateAborted
	rep.FailedStage = stage
	rep.Err = err
	rep.FinishedAt = time.Now()
	audit.Record(LevelError, "run aborted at %s: %v", stage, err)
	audit.Record(LevelInfo, "summary: %d processed, %d skipped, %d failed",
		rep.Processed(), rep.Skipped(), rep.Failed())
	p.logger.Error("run aborted", zap.Stringer("stage", stage), zap.Error(err))
	return rep, err
}

// auditPath derives the audit log filename from the output name, so audit
// logs of different outputs in the same folder never collide.
func (p *Pipeline) auditPath(outputName string) string {
	base := strings.TrimSuffix(outputName, filepath.Ext(outputName))
	return filepath.Join(p.outputDir, base+"_audit.log")
}

// defaultOutputDir is the user's Documents folder, matching where office
// suites keep their documents; the working directory is the fallback.
func defaultOutputDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "Documents")
}
