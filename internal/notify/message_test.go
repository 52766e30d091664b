package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/naka-gawa/pr-notify/internal/domain"
)

func outcome(htmlURL string, approvals int, createdAt time.Time) domain.ReviewOutcome {
	return domain.ReviewOutcome{
		PullRequest: domain.PullRequest{
			APIURL:    "https://api.example.com" + htmlURL,
			HTMLURL:   "https://example.com" + htmlURL,
			CreatedAt: createdAt,
		},
		ApprovedCount: approvals,
	}
}

func TestFormatMessage(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	t.Run("renders both sections with counts, bullets and wait ages", func(t *testing.T) {
		waiting := []domain.ReviewOutcome{
			outcome("/o/r/pull/1", 0, now.Add(-72*time.Hour)),
			outcome("/o/r/pull/2", 0, now.Add(-24*time.Hour)),
		}
		complete := []domain.ReviewOutcome{
			outcome("/o/r/pull/3", 2, now.Add(-10*time.Hour)),
		}

		got := FormatMessage("needs-review", waiting, complete, now)

		expected := "Review status for label \"needs-review\"\n" +
			"\n" +
			"Awaiting review (2):\n" +
			"- https://example.com/o/r/pull/1 (approvals: 0)\n" +
			"- https://example.com/o/r/pull/2 (approvals: 0)\n" +
			"Oldest has been waiting 72h, mean wait 48h.\n" +
			"\n" +
			"Review complete (1):\n" +
			"- https://example.com/o/r/pull/3 (approvals: 2)\n"
		assert.Equal(t, expected, got)
	})

	t.Run("empty sections render an explicit placeholder", func(t *testing.T) {
		got := FormatMessage("needs-review", nil, nil, now)

		assert.Contains(t, got, "Awaiting review (0):\n(none)\n")
		assert.Contains(t, got, "Review complete (0):\n(none)\n")
		assert.NotContains(t, got, "Oldest has been waiting")
	})

	t.Run("output is identical across repeated calls with the same input", func(t *testing.T) {
		waiting := []domain.ReviewOutcome{outcome("/o/r/pull/1", 0, now.Add(-5*time.Hour))}
		complete := []domain.ReviewOutcome{outcome("/o/r/pull/2", 1, now.Add(-3*time.Hour))}

		first := FormatMessage("needs-review", waiting, complete, now)
		second := FormatMessage("needs-review", waiting, complete, now)
		assert.Equal(t, first, second)
	})
}
