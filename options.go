package docmerge

import (
	"io"
	"time"

	"go.uber.org/zap"
)

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithConverter sets the external DOC/DOCX-to-PDF backend. The caller keeps
// ownership: the pipeline never closes it, so the handle can be released
// unconditionally at run end regardless of which stage failed. Without a
// backend, non-PDF files fail per-file and PDFs still merge.
func WithConverter(c DocumentConverter) Option {
	return func(p *Pipeline) {
		p.backend = c
	}
}

// WithLogger sets the diagnostic logger (default: no-op). The audit log is
// a separate artifact and is always written.
func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithOutputDir sets the directory receiving the final DOCX, the audit log
// and the optional report (default: the user's Documents folder).
func WithOutputDir(dir string) Option {
	return func(p *Pipeline) {
		if dir != "" {
			p.outputDir = dir
		}
	}
}

// WithConvertTimeout bounds each external conversion call; external office
// automation can hang indefinitely on a bad file (default: 2m, 0 disables).
func WithConvertTimeout(d time.Duration) Option {
	return func(p *Pipeline) {
		p.convertTimeout = d
	}
}

// WithReport enables the XLSX run report at the given path inside the
// output directory.
func WithReport(name string) Option {
	return func(p *Pipeline) {
		p.reportName = name
	}
}

// WithAuditFallback sets the writer receiving audit entries that cannot be
// written to the log file (default: stderr).
func WithAuditFallback(w io.Writer) Option {
	return func(p *Pipeline) {
		if w != nil {
			p.fallback = w
		}
	}
}
