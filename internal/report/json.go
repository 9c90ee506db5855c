package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/AndreyAkinshin/bridgematrix/internal/model"
)

// Document is the machine-readable run report.
type Document struct {
	RunID      string         `json:"run_id"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
	Success    bool           `json:"success"`
	Total      int            `json:"total"`
	Failed     int            `json:"failed"`
	Cases      []CaseEntry    `json:"cases"`
	Failures   []FailureEntry `json:"failures"`
}

// CaseEntry is one executed case.
type CaseEntry struct {
	Mode       string `json:"mode"`
	Chain      string `json:"chain"`
	ChainID    uint64 `json:"chain_id"`
	Currency   string `json:"currency"`
	Amount     string `json:"amount"`
	ExitCode   int    `json:"exit_code"`
	Success    bool   `json:"success"`
	DurationMS int64  `json:"duration_ms"`
	Attempts   int    `json:"attempts"`
	Error      string `json:"error,omitempty"`
}

// FailureEntry mirrors a summary failure line.
type FailureEntry struct {
	Mode     string `json:"mode"`
	Chain    string `json:"chain"`
	Currency string `json:"currency"`
	ExitCode int    `json:"exit_code"`
}

// NewDocument builds a report from the results of a run and its summary.
func NewDocument(s model.Summary, results []model.ExecutionResult, started, finished time.Time) Document {
	doc := Document{
		RunID:      s.RunID,
		StartedAt:  started.UTC(),
		FinishedAt: finished.UTC(),
		Success:    s.Passed(),
		Total:      s.Total,
		Failed:     len(s.Failures),
		Cases:      make([]CaseEntry, 0, len(results)),
		Failures:   make([]FailureEntry, 0, len(s.Failures)),
	}
	for _, r := range results {
		entry := CaseEntry{
			Mode:       r.Case.Mode.String(),
			Chain:      r.Case.Chain.String(),
			ChainID:    r.Case.Chain.ID(),
			Currency:   r.Case.Currency.String(),
			Amount:     r.Case.Amount.String(),
			ExitCode:   r.ExitCode,
			Success:    r.Success,
			DurationMS: r.Duration.Milliseconds(),
			Attempts:   r.Attempts,
		}
		if r.Err != nil {
			entry.Error = r.Err.Error()
		}
		doc.Cases = append(doc.Cases, entry)
	}
	for _, f := range s.Failures {
		doc.Failures = append(doc.Failures, FailureEntry{
			Mode:     f.Mode.String(),
			Chain:    f.Chain.String(),
			Currency: f.Currency.String(),
			ExitCode: f.ExitCode,
		})
	}
	return doc
}

// WriteJSON writes doc to path, creating parent directories.
func WriteJSON(path string, doc Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
