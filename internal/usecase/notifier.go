// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/naka-gawa/pr-notify/internal/domain"
	"github.com/naka-gawa/pr-notify/internal/gateway"
	"github.com/naka-gawa/pr-notify/internal/notify"
)

// maxConcurrentReviewFetches bounds the per-pull-request review fan-out.
const maxConcurrentReviewFetches = 4

// Sender delivers a rendered message to a webhook URL.
type Sender interface {
	Send(ctx context.Context, webhookURL, text string) error
}

// Notifier is the use case that turns one notification target into a
// delivered summary. It orchestrates fetching, filtering, classification,
// formatting and delivery.
type Notifier struct {
	fetcher   gateway.Fetcher
	sender    Sender
	threshold int
	logger    *log.Logger
	now       func() time.Time
}

// NewNotifier creates a new Notifier instance.
func NewNotifier(fetcher gateway.Fetcher, sender Sender, threshold int, logger *log.Logger) *Notifier {
	return &Notifier{
		fetcher:   fetcher,
		sender:    sender,
		threshold: threshold,
		logger:    logger,
		now:       time.Now,
	}
}

// FilterByLabel keeps the pull requests that carry label and are not drafts.
// Pure and order-preserving.
func FilterByLabel(prs []domain.PullRequest, label string) []domain.PullRequest {
	filtered := make([]domain.PullRequest, 0, len(prs))
	for _, pr := range prs {
		if pr.HasLabel(label) && !pr.Draft {
			filtered = append(filtered, pr)
		}
	}
	return filtered
}

// Classify fetches the approval count of every pull request and partitions
// them into waiting (below threshold) and complete (at or above threshold).
// A failed review fetch is logged and that pull request counted as zero
// approvals, so one broken pull request never sinks the whole run. Input
// order is preserved in both partitions.
func (n *Notifier) Classify(ctx context.Context, owner, repo string, prs []domain.PullRequest) (waiting, complete []domain.ReviewOutcome, err error) {
	counts := make([]int, len(prs))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(maxConcurrentReviewFetches)
	for i, pr := range prs {
		i, pr := i, pr
		eg.Go(func() error {
			count, err := n.fetcher.CountApprovals(egCtx, owner, repo, pr.Number)
			if err != nil {
				n.logger.Printf("Review fetch failed for %s, counting zero approvals: %v", pr.APIURL, err)
				return nil
			}
			counts[i] = count
			return nil
		})
	}
	if waitErr := eg.Wait(); waitErr != nil {
		return nil, nil, waitErr
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, nil, ctxErr
	}

	waiting = []domain.ReviewOutcome{}
	complete = []domain.ReviewOutcome{}
	for i, pr := range prs {
		outcome := domain.ReviewOutcome{PullRequest: pr, ApprovedCount: counts[i]}
		if outcome.ApprovedCount < n.threshold {
			waiting = append(waiting, outcome)
		} else {
			complete = append(complete, outcome)
		}
	}
	return waiting, complete, nil
}

// Run executes the full pipeline for a single target: fetch, filter,
// classify, format, send.
func (n *Notifier) Run(ctx context.Context, target domain.NotificationTarget) error {
	prs, err := n.fetcher.ListOpenPullRequests(ctx, target.Owner, target.Repo)
	if err != nil {
		return err
	}

	filtered := FilterByLabel(prs, target.Label)
	n.logger.Printf("%s/%s: %d of %d open pull requests carry label %q and are not drafts.",
		target.Owner, target.Repo, len(filtered), len(prs), target.Label)

	waiting, complete, err := n.Classify(ctx, target.Owner, target.Repo, filtered)
	if err != nil {
		return err
	}

	message := notify.FormatMessage(target.Label, waiting, complete, n.now())
	return n.sender.Send(ctx, target.WebhookURL, message)
}

// RunAll processes every target sequentially. A failing target is logged and
// skipped; the remaining targets still execute. The joined error reports
// every failure at the end.
func (n *Notifier) RunAll(ctx context.Context, targets []domain.NotificationTarget) error {
	var errs []error
	for _, target := range targets {
		n.logger.Printf("Processing %s/%s...", target.Owner, target.Repo)
		if err := n.Run(ctx, target); err != nil {
			n.logger.Printf("Skipping %s/%s: %v", target.Owner, target.Repo, err)
			errs = append(errs, fmt.Errorf("%s/%s: %w", target.Owner, target.Repo, err))
		}
	}
	return errors.Join(errs...)
}
