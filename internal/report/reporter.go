package report

import (
	"fmt"
	"strings"
	"sync"

	"github.com/AndreyAkinshin/bridgematrix/internal/errors"
	"github.com/AndreyAkinshin/bridgematrix/internal/model"
	"github.com/AndreyAkinshin/bridgematrix/internal/output"
)

// SummaryHeader opens the summary block.
const SummaryHeader = "=== Summary ==="

// Reporter prints progress lines and the summary block.
// CaseDone may be called from multiple goroutines.
type Reporter struct {
	mu  sync.Mutex
	out *output.Writer
}

// NewReporter creates a reporter writing to out.
func NewReporter(out *output.Writer) *Reporter {
	return &Reporter{out: out}
}

// CaseDone prints the progress line for a completed case.
func (r *Reporter) CaseDone(res model.ExecutionResult) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := res.Case.Key
	if res.Success {
		r.out.CaseSuccess(k.Mode.String(), k.Chain.String(), k.Currency.String())
		return
	}
	r.out.CaseFailed(k.Mode.String(), k.Chain.String(), k.Currency.String(), res.ExitCode)
}

// Summary prints the summary block.
func (r *Reporter) Summary(s model.Summary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.out.Block(RenderSummary(s))
}

// RenderSummary renders the summary block. It depends only on s, so equal
// summaries render to identical text.
func RenderSummary(s model.Summary) string {
	var b strings.Builder
	b.WriteString(SummaryHeader + "\n")
	fmt.Fprintf(&b, "Total: %d\n", s.Total)

	if s.Passed() {
		fmt.Fprintf(&b, "All %d cases passed.\n", s.Total)
		return b.String()
	}

	fmt.Fprintf(&b, "Failed: %d\n", len(s.Failures))
	for _, f := range s.Failures {
		b.WriteString(f.String() + "\n")
	}
	fmt.Fprintf(&b, "%d of %d cases failed.\n", len(s.Failures), s.Total)
	return b.String()
}

// ExitCode returns the process exit code for a completed run.
func ExitCode(s model.Summary) int {
	if s.Passed() {
		return errors.ExitSuccess
	}
	return errors.ExitFailure
}
