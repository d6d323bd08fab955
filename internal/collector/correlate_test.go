package collector

import (
	"context"
	"errors"
	"testing"

	"github.com/sombaner/GitHub-copilot-automation-scripts/internal/models"
)

func enterpriseSeat(login, team, slug string) models.Seat {
	seat := models.Seat{
		CreatedAt:          "2023-01-01T00:00:00Z",
		LastActivityAt:     "2024-05-01T10:00:00Z",
		LastActivityEditor: "vscode/1.80/copilot/1.2",
		Assignee:           &models.SeatAssignee{Login: login, Email: login + "@example.com"},
	}
	if team != "" {
		seat.AssigningTeam = &models.SeatTeam{Name: team, Slug: slug}
	}
	return seat
}

func TestEnterpriseCorrelationFiltersByTeam(t *testing.T) {
	correlator := &Correlator{
		Policy: FilterByAssigningTeam,
		Scope:  models.Scope{Kind: models.ScopeEnterprise, Name: "acme"},
		KnownTeams: []models.Team{
			{ID: 1, Name: "Eng", Slug: "eng"},
			{ID: 2, Name: "Ops", Slug: "ops"},
		},
	}

	seats := []models.Seat{
		enterpriseSeat("alice", "Eng", "eng"),
		enterpriseSeat("bob", "Eng", "eng"),
		enterpriseSeat("carol", "Marketing", "marketing"),
	}

	rows, skipped := correlator.Rows(context.Background(), seats)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if skipped != 1 {
		t.Fatalf("expected 1 skipped seat, got %d", skipped)
	}
	for _, row := range rows {
		if row.Username == "carol" {
			t.Fatalf("seat outside known teams must be dropped")
		}
		if row.TeamSlug != "eng" {
			t.Fatalf("expected team slug populated, got %q", row.TeamSlug)
		}
	}
	if rows[0].LastActiveEditor != "vscode" || rows[0].PluginVersion != "1.2" {
		t.Fatalf("unexpected editor split: %#v", rows[0])
	}
}

func TestEnterpriseCorrelationDropsSeatsWithoutAssignee(t *testing.T) {
	correlator := &Correlator{
		Policy:     FilterByAssigningTeam,
		KnownTeams: []models.Team{{ID: 1, Name: "Eng", Slug: "eng"}},
	}

	seats := []models.Seat{
		{AssigningTeam: &models.SeatTeam{Name: "Eng", Slug: "eng"}},
		enterpriseSeat("alice", "Eng", "eng"),
	}

	rows, skipped := correlator.Rows(context.Background(), seats)
	if len(rows) != 1 || rows[0].Username != "alice" {
		t.Fatalf("expected only alice kept, got %v", rows)
	}
	if skipped != 1 {
		t.Fatalf("expected 1 skipped, got %d", skipped)
	}
}

func TestEnterpriseCorrelationEnrichesMissingFields(t *testing.T) {
	lookups := []string{}
	correlator := &Correlator{
		Policy:     FilterByAssigningTeam,
		KnownTeams: []models.Team{{ID: 1, Name: "Eng", Slug: "eng"}},
		Lookup: func(ctx context.Context, login string) (models.UserProfile, error) {
			lookups = append(lookups, login)
			return models.UserProfile{
				Login:     login,
				Email:     login + "@corp.example.com",
				CreatedAt: "2019-06-01T00:00:00Z",
			}, nil
		},
	}

	seat := models.Seat{
		LastActivityAt: "2024-05-01T10:00:00Z",
		Assignee:       &models.SeatAssignee{Login: "alice"},
		AssigningTeam:  &models.SeatTeam{Name: "Eng", Slug: "eng"},
	}
	rows, _ := correlator.Rows(context.Background(), []models.Seat{seat})
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].Email != "alice@corp.example.com" {
		t.Fatalf("expected email enriched from profile, got %q", rows[0].Email)
	}
	if rows[0].CreatedAt != "2019-06-01T00:00:00Z" {
		t.Fatalf("expected created-at enriched from profile, got %q", rows[0].CreatedAt)
	}
	if len(lookups) != 1 || lookups[0] != "alice" {
		t.Fatalf("expected one profile lookup for alice, got %v", lookups)
	}
}

func TestEnterpriseCorrelationSkipsLookupWhenComplete(t *testing.T) {
	correlator := &Correlator{
		Policy:     FilterByAssigningTeam,
		KnownTeams: []models.Team{{ID: 1, Name: "Eng", Slug: "eng"}},
		Lookup: func(ctx context.Context, login string) (models.UserProfile, error) {
			t.Fatalf("lookup must not be called when seat fields are complete")
			return models.UserProfile{}, nil
		},
	}

	rows, _ := correlator.Rows(context.Background(), []models.Seat{enterpriseSeat("alice", "Eng", "eng")})
	if len(rows) != 1 || rows[0].Email != "alice@example.com" {
		t.Fatalf("unexpected rows %v", rows)
	}
}

func TestEnterpriseCorrelationLookupFailureDegrades(t *testing.T) {
	correlator := &Correlator{
		Policy:     FilterByAssigningTeam,
		KnownTeams: []models.Team{{ID: 1, Name: "Eng", Slug: "eng"}},
		Lookup: func(ctx context.Context, login string) (models.UserProfile, error) {
			return models.UserProfile{}, errors.New("boom")
		},
	}

	seat := models.Seat{
		Assignee:      &models.SeatAssignee{Login: "alice"},
		AssigningTeam: &models.SeatTeam{Name: "Eng", Slug: "eng"},
	}
	rows, _ := correlator.Rows(context.Background(), []models.Seat{seat})
	if len(rows) != 1 {
		t.Fatalf("expected the row kept despite lookup failure, got %d", len(rows))
	}
	if rows[0].Email != models.SentinelNA || rows[0].CreatedAt != models.SentinelNA {
		t.Fatalf("expected sentinel fields, got %#v", rows[0])
	}
}

func TestOrganizationCorrelationAnnotatesFromIndex(t *testing.T) {
	index := models.MembershipIndex{}
	index.Add("alice", "TeamA")
	index.Add("alice", "TeamB")
	index.Add("bob", "TeamA")

	correlator := &Correlator{
		Policy: AnnotateFromIndex,
		Scope:  models.Scope{Kind: models.ScopeOrganization, Name: "example-org"},
		Index:  index,
	}

	seats := []models.Seat{
		{Assignee: &models.SeatAssignee{Login: "alice"}, CreatedAt: "2023-01-01T00:00:00Z"},
		{Assignee: &models.SeatAssignee{Login: "bob"}},
		{Assignee: &models.SeatAssignee{Login: "mallory"}},
	}

	rows, skipped := correlator.Rows(context.Background(), seats)
	if skipped != 0 {
		t.Fatalf("organization policy must keep every seat, skipped %d", skipped)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].TeamNames != "TeamA, TeamB" {
		t.Fatalf("expected joined team names, got %q", rows[0].TeamNames)
	}
	if rows[2].TeamNames != models.SentinelNoTeam {
		t.Fatalf("expected %q for index miss, got %q", models.SentinelNoTeam, rows[2].TeamNames)
	}
	if rows[0].Organization != "example-org" {
		t.Fatalf("expected organization column set, got %q", rows[0].Organization)
	}
	if rows[1].CreatedAt != models.SentinelNA {
		t.Fatalf("expected missing fields as %q, got %q", models.SentinelNA, rows[1].CreatedAt)
	}
}
