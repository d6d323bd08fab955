package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v60/github"
	"github.com/sirupsen/logrus"
	"github.com/sombaner/GitHub-copilot-automation-scripts/internal/models"
	"golang.org/x/oauth2"
)

const defaultBaseURL = "https://api.github.com"

type teamsService interface {
	ListTeams(ctx context.Context, org string, opts *github.ListOptions) ([]*github.Team, *github.Response, error)
	ListTeamMembersBySlug(ctx context.Context, org, slug string, opts *github.TeamListTeamMembersOptions) ([]*github.User, *github.Response, error)
}

// Client implements GitHub team and Copilot billing operations.
type Client struct {
	teamsService teamsService
	transport    *transport
	baseURL      string
}

// NewClient creates a GitHub client using a personal access token.
func NewClient(token string) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("github token is required")
	}
	ctx := context.Background()
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := oauth2.NewClient(ctx, ts)
	client := github.NewClient(httpClient)
	return &Client{
		teamsService: client.Teams,
		transport:    newTransport(httpClient, token),
		baseURL:      defaultBaseURL,
	}, nil
}

// ValidateToken probes GET /user with the configured credential. A 401
// means the token is invalid; any other failure is surfaced as-is.
func (c *Client) ValidateToken(ctx context.Context) error {
	_, err := c.transport.getJSON(ctx, c.baseURL+"/user", nil, nil)
	if err != nil {
		if apiErr, ok := err.(*APIError); ok && apiErr.StatusCode == http.StatusUnauthorized {
			return fmt.Errorf("invalid GitHub personal access token: %w", err)
		}
		return fmt.Errorf("validating GitHub token: %w", err)
	}
	return nil
}

// ListEnterpriseTeams enumerates all teams of an enterprise. The endpoint
// paginates via the Link header; iteration follows the "next" relation
// until it disappears. On failure the teams fetched so far are returned.
func (c *Client) ListEnterpriseTeams(ctx context.Context, enterprise string) ([]models.Team, error) {
	if enterprise == "" {
		return nil, fmt.Errorf("enterprise slug is required")
	}

	var teams []models.Team
	pageURL := fmt.Sprintf("%s/enterprises/%s/teams?per_page=100", c.baseURL, enterprise)

	for pageURL != "" {
		var page []models.Team
		header, err := c.transport.getJSON(ctx, pageURL, nil, &page)
		if err != nil {
			return teams, fmt.Errorf("listing enterprise teams: %w", err)
		}
		teams = append(teams, page...)

		pageURL = parseLinkNext(header.Get("Link"))
		if pageURL != "" {
			logrus.Info("fetching next page of enterprise teams")
		}
	}

	logrus.WithFields(logrus.Fields{
		"enterprise": enterprise,
		"teams":      len(teams),
	}).Info("fetched enterprise teams")
	return teams, nil
}

// ListOrgTeams enumerates all teams of an organization.
func (c *Client) ListOrgTeams(ctx context.Context, org string) ([]models.Team, error) {
	if org == "" {
		return nil, fmt.Errorf("org is required")
	}

	opts := &github.ListOptions{PerPage: 100}
	var result []models.Team
	for {
		var (
			teams []*github.Team
			resp  *github.Response
			err   error
		)
		err = c.retryOnRateLimit(ctx, func() error {
			teams, resp, err = c.teamsService.ListTeams(ctx, org, opts)
			return err
		})
		if err != nil {
			return result, fmt.Errorf("listing org teams: %w", err)
		}
		for _, team := range teams {
			result = append(result, models.Team{
				ID:   team.GetID(),
				Name: team.GetName(),
				Slug: team.GetSlug(),
			})
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return result, nil
}

// ListTeamMembers enumerates the member logins of one team, in API order.
func (c *Client) ListTeamMembers(ctx context.Context, org, teamSlug string) ([]string, error) {
	if org == "" || teamSlug == "" {
		return nil, fmt.Errorf("org and team slug are required")
	}

	opts := &github.TeamListTeamMembersOptions{ListOptions: github.ListOptions{PerPage: 100}}
	var logins []string
	for {
		var (
			users []*github.User
			resp  *github.Response
			err   error
		)
		err = c.retryOnRateLimit(ctx, func() error {
			users, resp, err = c.teamsService.ListTeamMembersBySlug(ctx, org, teamSlug, opts)
			return err
		})
		if err != nil {
			return logins, fmt.Errorf("listing members of team %s: %w", teamSlug, err)
		}
		for _, user := range users {
			if login := user.GetLogin(); login != "" {
				logins = append(logins, login)
			}
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return logins, nil
}

// GetUserProfile fetches a user's public profile via GET /users/{login}.
func (c *Client) GetUserProfile(ctx context.Context, login string) (models.UserProfile, error) {
	if login == "" {
		return models.UserProfile{}, fmt.Errorf("login is required")
	}
	var profile models.UserProfile
	_, err := c.transport.getJSON(ctx, fmt.Sprintf("%s/users/%s", c.baseURL, url.PathEscape(login)), nil, &profile)
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("fetching profile for %s: %w", login, err)
	}
	return profile, nil
}

// Stats returns request counters accumulated across all calls, raw and
// typed alike.
func (c *Client) Stats() models.APIStats {
	return models.APIStats{
		Requests:       c.transport.stats.requests,
		Retries:        c.transport.stats.retries,
		RateLimitWaits: c.transport.stats.rateLimitWaits,
	}
}

// retryOnRateLimit retries typed go-github calls that fail with a rate
// limit error, waiting out the reported reset time. Attempts and waits
// feed the same counters as the raw transport so Stats covers both paths.
func (c *Client) retryOnRateLimit(ctx context.Context, fn func() error) error {
	const maxRetries = 3
	for attempt := 0; attempt <= maxRetries; attempt++ {
		c.transport.stats.requests++
		err := fn()
		if err == nil {
			return nil
		}
		if wait, ok := rateLimitWait(err); ok {
			if attempt == maxRetries {
				return err
			}
			c.transport.stats.retries++
			c.transport.stats.rateLimitWaits++
			logrus.WithField("wait_seconds", wait.Seconds()).Warn("rate limit reached, waiting for reset")
			timer := time.NewTimer(wait + rateLimitBuffer)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
			continue
		}
		return err
	}
	return nil
}

func rateLimitWait(err error) (time.Duration, bool) {
	if rateErr, ok := err.(*github.RateLimitError); ok {
		wait := time.Until(rateErr.Rate.Reset.Time)
		if wait < 0 {
			return 0, true
		}
		return wait, true
	}
	if abuseErr, ok := err.(*github.AbuseRateLimitError); ok {
		return abuseErr.GetRetryAfter(), true
	}
	return 0, false
}

// parseLinkNext extracts the "next" URL from a GitHub Link header.
func parseLinkNext(linkHeader string) string {
	if linkHeader == "" {
		return ""
	}
	for _, part := range strings.Split(linkHeader, ",") {
		part = strings.TrimSpace(part)
		if strings.Contains(part, `rel="next"`) {
			start := strings.Index(part, "<")
			end := strings.Index(part, ">")
			if start >= 0 && end > start {
				return part[start+1 : end]
			}
		}
	}
	return ""
}
