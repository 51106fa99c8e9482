package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/agbru/numtheory/internal/orchestration"
)

// CLIResultPresenter implements orchestration.ResultPresenter for plain
// terminal output.
type CLIResultPresenter struct {
	// Quiet prints one "<candidate> prime|composite" line per candidate and
	// no summary.
	Quiet bool
}

// Verify interface compliance.
var _ orchestration.ResultPresenter = CLIResultPresenter{}

// PresentClassification prints the verdicts for one candidate.
func (p CLIResultPresenter) PresentClassification(c orchestration.Classification, out io.Writer) {
	n := FormatNumber(c.Candidate.String())
	if c.Err != nil {
		fmt.Fprintf(out, "%s: error: %v\n", n, c.Err)
		return
	}
	if p.Quiet {
		fmt.Fprintf(out, "%s %s\n", n, verdictWord(c.Prime()))
		return
	}

	parts := make([]string, len(c.Verdicts))
	for i, v := range c.Verdicts {
		parts[i] = fmt.Sprintf("%s=%s", v.Tester, verdictWord(v.Prime))
	}
	line := fmt.Sprintf("%s: %s (%s) in %s", n, verdictWord(c.Prime()), strings.Join(parts, ", "), FormatExecutionDuration(c.Duration))
	if !c.Agreed() {
		line += " [testers disagree]"
	}
	fmt.Fprintln(out, line)
}

// PresentSummary prints the batch counts and lists disagreements.
func (p CLIResultPresenter) PresentSummary(s orchestration.Summary, out io.Writer) {
	if p.Quiet {
		return
	}
	fmt.Fprintf(out, "\n--- Summary ---\nprobably prime: %d, composite: %d, failed: %d\n", s.Primes, s.Composites, len(s.Failed))
	for _, d := range s.Disagreements {
		fmt.Fprintf(out, "disagreement on %s: a tester was fooled by its witnesses (Carmichael numbers fool Fermat)\n", FormatNumber(d.Candidate.String()))
	}
}

func verdictWord(prime bool) string {
	if prime {
		return "prime"
	}
	return "composite"
}
