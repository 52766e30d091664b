// Package notify renders the review summary and delivers it to a webhook.
package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/naka-gawa/pr-notify/internal/domain"
)

// FormatMessage renders the two partitions into the text block posted to the
// webhook. The output is a pure function of its inputs; now is injected so
// the wait-age footer stays deterministic.
func FormatMessage(label string, waiting, complete []domain.ReviewOutcome, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Review status for label %q\n", label)
	b.WriteString("\n")

	fmt.Fprintf(&b, "Awaiting review (%d):\n", len(waiting))
	writeSection(&b, waiting)
	if footer := waitAgeFooter(waiting, now); footer != "" {
		b.WriteString(footer)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Review complete (%d):\n", len(complete))
	writeSection(&b, complete)

	return b.String()
}

func writeSection(b *strings.Builder, outcomes []domain.ReviewOutcome) {
	if len(outcomes) == 0 {
		b.WriteString("(none)\n")
		return
	}
	for _, o := range outcomes {
		fmt.Fprintf(b, "- %s (approvals: %d)\n", o.PullRequest.HTMLURL, o.ApprovedCount)
	}
}

// waitAgeFooter summarizes how long the waiting pull requests have been open.
func waitAgeFooter(waiting []domain.ReviewOutcome, now time.Time) string {
	if len(waiting) == 0 {
		return ""
	}
	ages := make([]float64, 0, len(waiting))
	for _, o := range waiting {
		ages = append(ages, now.Sub(o.PullRequest.CreatedAt).Hours())
	}
	oldest, err := stats.Max(ages)
	if err != nil {
		return ""
	}
	mean, err := stats.Mean(ages)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("Oldest has been waiting %.0fh, mean wait %.0fh.", oldest, mean)
}
