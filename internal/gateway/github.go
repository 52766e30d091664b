// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/naka-gawa/pr-notify/internal/apperrors"
	"github.com/naka-gawa/pr-notify/internal/domain"
)

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	ListOpenPullRequests(ctx context.Context, owner, repo string) ([]domain.PullRequest, error)
	CountApprovals(ctx context.Context, owner, repo string, number int) (int, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	logger        *log.Logger
}

// reviewStatesQuery fetches the review events of one pull request: who
// reviewed, with what state, and when.
type reviewStatesQuery struct {
	Repository struct {
		PullRequest struct {
			Reviews struct {
				PageInfo struct {
					HasNextPage bool
					EndCursor   githubv4.String
				}
				Nodes []struct {
					Author struct {
						Login githubv4.String
					}
					State       githubv4.String
					SubmittedAt githubv4.DateTime
				}
			} `graphql:"reviews(first: 100, after: $cursor)"`
		} `graphql:"pullRequest(number: $number)"`
	} `graphql:"repository(owner: $owner, name: $name)"`
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
func NewGitHubGateway(token string, logger *log.Logger) (Fetcher, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		},
	}
	return &GitHubGateway{
		restClient:    github.NewClient(httpClient),
		graphqlClient: githubv4.NewClient(httpClient),
		logger:        logger,
	}, nil
}

// ListOpenPullRequests fetches the open pull requests of a repository using
// the REST API. A single page of up to 100 pull requests is fetched; larger
// repositories are truncated.
func (g *GitHubGateway) ListOpenPullRequests(ctx context.Context, owner, repo string) ([]domain.PullRequest, error) {
	g.logger.Printf("Fetching open pull requests for %s/%s...", owner, repo)
	opts := &github.PullRequestListOptions{
		State:       "open",
		ListOptions: github.ListOptions{PerPage: 100},
	}
	prs, _, err := g.restClient.PullRequests.List(ctx, owner, repo, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: list pull requests for %s/%s: %w", apperrors.ErrNetwork, owner, repo, err)
	}

	result := make([]domain.PullRequest, 0, len(prs))
	for _, pr := range prs {
		labels := make([]string, 0, len(pr.Labels))
		for _, l := range pr.Labels {
			labels = append(labels, l.GetName())
		}
		converted, err := domain.NewPullRequest(
			pr.GetURL(),
			pr.GetHTMLURL(),
			pr.GetNumber(),
			pr.GetTitle(),
			pr.GetUser().GetLogin(),
			pr.GetDraft(),
			labels,
			pr.GetCreatedAt().Time,
		)
		if err != nil {
			g.logger.Printf("Skipping malformed pull request in %s/%s response: %v", owner, repo, err)
			continue
		}
		result = append(result, converted)
	}
	g.logger.Printf("Completed fetching pull requests for %s/%s: %d open.", owner, repo, len(result))
	return result, nil
}

// CountApprovals fetches the review events of one pull request with the
// GraphQL API and counts distinct approving reviewers. A reviewer who reviews
// several times is resolved to the state of their most recent review, so an
// approval followed by a request for changes does not count.
func (g *GitHubGateway) CountApprovals(ctx context.Context, owner, repo string, number int) (int, error) {
	variables := map[string]interface{}{
		"owner":  githubv4.String(owner),
		"name":   githubv4.String(repo),
		"number": githubv4.Int(number),
		"cursor": (*githubv4.String)(nil),
	}

	type latestReview struct {
		state       string
		submittedAt time.Time
	}
	latestByReviewer := make(map[string]latestReview)

	for {
		var q reviewStatesQuery
		if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
			return 0, fmt.Errorf("%w: fetch reviews for %s/%s#%d: %w", apperrors.ErrNetwork, owner, repo, number, err)
		}

		for _, node := range q.Repository.PullRequest.Reviews.Nodes {
			login := string(node.Author.Login)
			if login == "" {
				continue // Reviewer account no longer resolvable.
			}
			prev, seen := latestByReviewer[login]
			if !seen || node.SubmittedAt.After(prev.submittedAt) {
				latestByReviewer[login] = latestReview{
					state:       string(node.State),
					submittedAt: node.SubmittedAt.Time,
				}
			}
		}

		if !q.Repository.PullRequest.Reviews.PageInfo.HasNextPage {
			break
		}
		variables["cursor"] = githubv4.NewString(q.Repository.PullRequest.Reviews.PageInfo.EndCursor)
		g.logger.Printf("  Fetching next page of reviews for %s/%s#%d...", owner, repo, number)
	}

	approved := 0
	for _, review := range latestByReviewer {
		if review.state == "APPROVED" {
			approved++
		}
	}
	g.logger.Printf("%s/%s#%d: %d approving reviewer(s).", owner, repo, number, approved)
	return approved, nil
}
