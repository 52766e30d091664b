// Package domain contains the core data structures and domain logic for the application.
package domain

import (
	"time"

	"github.com/naka-gawa/pr-notify/internal/apperrors"
)

// NotificationTarget identifies one repository to report on and where to send
// the report. Loaded once per run and immutable afterwards.
type NotificationTarget struct {
	Owner      string
	Repo       string
	Label      string
	WebhookURL string
}

// PullRequest is a minimal view of an open pull request, as much of the API
// response as the pipeline needs.
type PullRequest struct {
	APIURL    string
	HTMLURL   string
	Number    int
	Title     string
	Author    string
	Draft     bool
	Labels    []string
	CreatedAt time.Time
}

// NewPullRequest validates the fields every later stage relies on.
func NewPullRequest(apiURL, htmlURL string, number int, title, author string, draft bool, labels []string, createdAt time.Time) (PullRequest, error) {
	if apiURL == "" {
		return PullRequest{}, apperrors.ErrAPIURLRequired
	}
	if htmlURL == "" {
		return PullRequest{}, apperrors.ErrHTMLURLRequired
	}
	return PullRequest{
		APIURL:    apiURL,
		HTMLURL:   htmlURL,
		Number:    number,
		Title:     title,
		Author:    author,
		Draft:     draft,
		Labels:    labels,
		CreatedAt: createdAt,
	}, nil
}

// HasLabel reports whether the pull request carries the given label.
func (p PullRequest) HasLabel(label string) bool {
	for _, l := range p.Labels {
		if l == label {
			return true
		}
	}
	return false
}

// ReviewOutcome pairs a pull request with the number of distinct reviewers
// whose latest review approved it.
type ReviewOutcome struct {
	PullRequest   PullRequest
	ApprovedCount int
}
