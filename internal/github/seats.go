package github

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/sombaner/GitHub-copilot-automation-scripts/internal/models"
)

// ListSeats enumerates Copilot billing seats for a scope. The endpoint is
// walked page by page until a page comes back with an empty seat list. On
// a non-retryable error the seats accumulated from prior pages are
// returned along with the error, never discarded.
func (c *Client) ListSeats(ctx context.Context, scope models.Scope) ([]models.Seat, error) {
	if scope.Name == "" {
		return nil, fmt.Errorf("scope name is required")
	}

	var endpoint string
	switch scope.Kind {
	case models.ScopeEnterprise:
		endpoint = fmt.Sprintf("%s/enterprises/%s/copilot/billing/seats", c.baseURL, scope.Name)
	case models.ScopeOrganization:
		endpoint = fmt.Sprintf("%s/orgs/%s/copilot/billing/seats", c.baseURL, scope.Name)
	default:
		return nil, fmt.Errorf("unsupported scope kind %q", scope.Kind)
	}

	var seats []models.Seat
	for page := 1; ; page++ {
		logrus.WithFields(logrus.Fields{
			"scope": scope.Name,
			"page":  page,
		}).Info("fetching page of Copilot billing seats")

		params := url.Values{
			"per_page": {"100"},
			"page":     {strconv.Itoa(page)},
		}
		var pageData models.SeatsPage
		if _, err := c.transport.getJSON(ctx, endpoint, params, &pageData); err != nil {
			return seats, fmt.Errorf("fetching seats page %d: %w", page, err)
		}
		if len(pageData.Seats) == 0 {
			break
		}
		seats = append(seats, pageData.Seats...)
	}

	logrus.WithFields(logrus.Fields{
		"scope": scope.Name,
		"seats": len(seats),
	}).Info("fetched Copilot billing seats")
	return seats, nil
}
