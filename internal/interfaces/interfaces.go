package interfaces

import (
	"context"

	"github.com/sombaner/GitHub-copilot-automation-scripts/internal/models"
)

// SeatSource defines the GitHub API operations the collector needs.
type SeatSource interface {
	// ValidateToken probes the API with the configured credential and
	// fails if it is missing or rejected.
	ValidateToken(ctx context.Context) error

	// ListEnterpriseTeams enumerates all teams of an enterprise.
	ListEnterpriseTeams(ctx context.Context, enterprise string) ([]models.Team, error)

	// ListOrgTeams enumerates all teams of an organization.
	ListOrgTeams(ctx context.Context, org string) ([]models.Team, error)

	// ListTeamMembers enumerates the member logins of one team.
	ListTeamMembers(ctx context.Context, org, teamSlug string) ([]string, error)

	// ListSeats enumerates Copilot billing seats for a scope. On a
	// non-retryable error it returns the seats accumulated so far along
	// with the error.
	ListSeats(ctx context.Context, scope models.Scope) ([]models.Seat, error)

	// GetUserProfile fetches a user's public profile for row enrichment.
	GetUserProfile(ctx context.Context, login string) (models.UserProfile, error)

	// Stats returns request-level counters accumulated so far.
	Stats() models.APIStats
}

// ArtifactStore persists a staged report artifact to object storage.
type ArtifactStore interface {
	Upload(ctx context.Context, key string, localPath string) error
}

// Mailer distributes a report artifact to a recipient list.
type Mailer interface {
	SendReport(ctx context.Context, recipients []string, artifact *models.Artifact) error
}

// MetricsEmitter publishes run statistics.
type MetricsEmitter interface {
	EmitRunSummary(ctx context.Context, summary models.RunSummary) error
}
