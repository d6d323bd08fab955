package github

import (
	"context"

	"github.com/sombaner/GitHub-copilot-automation-scripts/internal/models"
)

// MockClient is a simple mock implementation of the seat source.
type MockClient struct {
	ValidateTokenFunc       func(ctx context.Context) error
	ListEnterpriseTeamsFunc func(ctx context.Context, enterprise string) ([]models.Team, error)
	ListOrgTeamsFunc        func(ctx context.Context, org string) ([]models.Team, error)
	ListTeamMembersFunc     func(ctx context.Context, org, teamSlug string) ([]string, error)
	ListSeatsFunc           func(ctx context.Context, scope models.Scope) ([]models.Seat, error)
	GetUserProfileFunc      func(ctx context.Context, login string) (models.UserProfile, error)
	StatsFunc               func() models.APIStats
}

func (m *MockClient) ValidateToken(ctx context.Context) error {
	if m.ValidateTokenFunc == nil {
		return nil
	}
	return m.ValidateTokenFunc(ctx)
}

func (m *MockClient) ListEnterpriseTeams(ctx context.Context, enterprise string) ([]models.Team, error) {
	if m.ListEnterpriseTeamsFunc == nil {
		return nil, nil
	}
	return m.ListEnterpriseTeamsFunc(ctx, enterprise)
}

func (m *MockClient) ListOrgTeams(ctx context.Context, org string) ([]models.Team, error) {
	if m.ListOrgTeamsFunc == nil {
		return nil, nil
	}
	return m.ListOrgTeamsFunc(ctx, org)
}

func (m *MockClient) ListTeamMembers(ctx context.Context, org, teamSlug string) ([]string, error) {
	if m.ListTeamMembersFunc == nil {
		return nil, nil
	}
	return m.ListTeamMembersFunc(ctx, org, teamSlug)
}

func (m *MockClient) ListSeats(ctx context.Context, scope models.Scope) ([]models.Seat, error) {
	if m.ListSeatsFunc == nil {
		return nil, nil
	}
	return m.ListSeatsFunc(ctx, scope)
}

func (m *MockClient) GetUserProfile(ctx context.Context, login string) (models.UserProfile, error) {
	if m.GetUserProfileFunc == nil {
		return models.UserProfile{}, nil
	}
	return m.GetUserProfileFunc(ctx, login)
}

func (m *MockClient) Stats() models.APIStats {
	if m.StatsFunc == nil {
		return models.APIStats{}
	}
	return m.StatsFunc()
}
