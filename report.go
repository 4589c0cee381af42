package docmerge

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

// State names a stage of the pipeline. Progression is linear; Aborted is
// reachable only from the fatal stages (input collection, merge,
// back-conversion).
type State int

const (
	StateCollectInputs State = iota
	StateConvertAll
	StateMerge
	StateBackConvert
	StateCountWords
	StateWriteLog
	StateDone
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateCollectInputs:
		return "CollectInputs"
	case StateConvertAll:
		return "ConvertAll"
	case StateMerge:
		return "Merge"
	case StateBackConvert:
		return "BackConvert"
	case StateCountWords:
		return "CountWords"
	case StateWriteLog:
		return "WriteLog"
	case StateDone:
		return "Done"
	case StateAborted:
		return "Aborted"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Report is the outcome of one pipeline run.
type Report struct {
	InputDir   string
	OutputPath string
	AuditPath  string

	StartedAt  time.Time
	FinishedAt time.Time

	// State is StateDone on success, StateAborted on fatal failure. On
	// abort, FailedStage names the stage that aborted the run.
	State       State
	FailedStage State
	Err         error

	// Results holds one entry per enumerated file, in merge order.
	Results     []ConversionResult
	Unsupported []string

	MergedPages int
	Words       *WordFrequency
}

// Elapsed returns the wall-clock duration of the run.
func (r *Report) Elapsed() time.Duration { return r.FinishedAt.Sub(r.StartedAt) }

// Converted counts files converted to PDF by the external backend.
func (r *Report) Converted() int {
	n := 0
	for _, res := range r.Results {
		if res.OK() && !res.Identity() {
			n++
		}
	}
	return n
}

// Passed counts PDFs that passed through without conversion.
func (r *Report) Passed() int {
	n := 0
	for _, res := range r.Results {
		if res.Identity() {
			n++
		}
	}
	return n
}

// Failed counts files excluded from the merge by a conversion failure.
func (r *Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if !res.OK() {
			n++
		}
	}
	return n
}

// Processed counts files that contributed pages to the merged document.
func (r *Report) Processed() int { return r.Converted() + r.Passed() }

// Skipped counts folder entries passed over for an unsupported format.
func (r *Report) Skipped() int { return len(r.Unsupported) }

// Summary renders the one-line terminal summary required on every
// termination path.
func (r *Report) Summary() string {
	if r.State == StateAborted {
		return fmt.Sprintf("aborted at %s: %v (%d processed, %d skipped, %d failed; log: %s)",
			r.FailedStage, r.Err, r.Processed(), r.Skipped(), r.Failed(), r.AuditPath)
	}
	return fmt.Sprintf("done: %d processed (%d converted, %d pass-through), %d skipped, %d failed, %d pages merged -> %s (log: %s)",
		r.Processed(), r.Converted(), r.Passed(), r.Skipped(), r.Failed(), r.MergedPages, r.OutputPath, r.AuditPath)
}

// WriteXLSX exports the run report as a spreadsheet: a summary sheet, the
// per-file outcomes, and the word-frequency table.
func (r *Report) WriteXLSX(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	const summary = "Summary"
	if err := f.SetSheetName("Sheet1", summary); err != nil {
		return fmt.Errorf("rename summary sheet: %w", err)
	}
	rows := [][]any{
		{"Input folder", r.InputDir},
		{"Output", r.OutputPath},
		{"State", r.State.String()},
		{"Started", r.StartedAt.UTC().Format(time.RFC3339)},
		{"Elapsed", r.Elapsed().Round(time.Millisecond).String()},
		{"Processed", r.Processed()},
		{"Converted", r.Converted()},
		{"Pass-through", r.Passed()},
		{"Skipped", r.Skipped()},
		{"Failed", r.Failed()},
		{"Merged pages", r.MergedPages},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summary, cell, &row); err != nil {
			return fmt.Errorf("write summary row: %w", err)
		}
	}

	const files = "Files"
	if _, err := f.NewSheet(files); err != nil {
		return fmt.Errorf("create files sheet: %w", err)
	}
	header := []any{"File", "Format", "Outcome", "Pages"}
	if err := f.SetSheetRow(files, "A1", &header); err != nil {
		return fmt.Errorf("write files header: %w", err)
	}
	for i, res := range r.Results {
		outcome := "converted"
		if res.Identity() {
			outcome = "pass-through"
		}
		if !res.OK() {
			outcome = "failed: " + res.Err.Error()
		}
		row := []any{res.Source.Path, res.Source.Format.String(), outcome, res.Pages}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(files, cell, &row); err != nil {
			return fmt.Errorf("write files row: %w", err)
		}
	}

	if r.Words != nil && r.Words.Len() > 0 {
		const freq = "Word Frequency"
		if _, err := f.NewSheet(freq); err != nil {
			return fmt.Errorf("create frequency sheet: %w", err)
		}
		header := []any{"Word", "Count"}
		if err := f.SetSheetRow(freq, "A1", &header); err != nil {
			return fmt.Errorf("write frequency header: %w", err)
		}
		for i, w := range r.Words.Words() {
			row := []any{w, r.Words.Count(w)}
			cell, _ := excelize.CoordinatesToCellName(1, i+2)
			if err := f.SetSheetRow(freq, cell, &row); err != nil {
				return fmt.Errorf("write frequency row: %w", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	return nil
}
