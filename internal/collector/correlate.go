package collector

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/sombaner/GitHub-copilot-automation-scripts/internal/models"
)

// CorrelationPolicy selects how seats are joined against team data.
type CorrelationPolicy int

const (
	// FilterByAssigningTeam keeps a seat only when its assigning team is
	// one of the known teams and the seat has an assignee login. Used for
	// enterprise scopes.
	FilterByAssigningTeam CorrelationPolicy = iota

	// AnnotateFromIndex keeps every seat and attaches the assignee's team
	// names from the membership index. Used for organization scopes.
	AnnotateFromIndex
)

// ProfileLookup fetches a user profile for row enrichment.
type ProfileLookup func(ctx context.Context, login string) (models.UserProfile, error)

// Correlator normalizes raw seat records into report rows under one of the
// two correlation policies.
type Correlator struct {
	Policy     CorrelationPolicy
	Scope      models.Scope
	KnownTeams []models.Team
	Index      models.MembershipIndex

	// Lookup, when set, enriches email and created-at for rows whose seat
	// payload omits them. Lookup failures degrade to sentinels.
	Lookup ProfileLookup
}

// Rows converts seats into report rows, returning the rows and the number
// of seats dropped by the policy.
func (c *Correlator) Rows(ctx context.Context, seats []models.Seat) ([]models.ReportRow, int) {
	var rows []models.ReportRow
	skipped := 0

	knownNames := make(map[string]struct{}, len(c.KnownTeams))
	for _, team := range c.KnownTeams {
		knownNames[team.Name] = struct{}{}
	}

	for i := range seats {
		seat := &seats[i]
		switch c.Policy {
		case FilterByAssigningTeam:
			row, ok := c.enterpriseRow(ctx, seat, knownNames)
			if !ok {
				skipped++
				continue
			}
			rows = append(rows, row)
		case AnnotateFromIndex:
			rows = append(rows, c.organizationRow(seat))
		}
	}
	return rows, skipped
}

func (c *Correlator) enterpriseRow(ctx context.Context, seat *models.Seat, knownNames map[string]struct{}) (models.ReportRow, bool) {
	teamName := ""
	teamSlug := ""
	if seat.AssigningTeam != nil {
		teamName = seat.AssigningTeam.Name
		teamSlug = seat.AssigningTeam.Slug
	}
	login := seat.Login()

	if _, known := knownNames[teamName]; !known || login == "" {
		logrus.WithFields(logrus.Fields{
			"login": login,
			"team":  teamName,
		}).Debug("dropping seat outside known teams")
		return models.ReportRow{}, false
	}

	email := ""
	createdAt := seat.CreatedAt
	if seat.Assignee != nil {
		email = seat.Assignee.Email
	}
	if (email == "" || createdAt == "") && c.Lookup != nil {
		profile, err := c.Lookup(ctx, login)
		if err != nil {
			logrus.WithError(err).WithField("login", login).Error("failed to fetch user profile")
		} else {
			if email == "" {
				email = profile.Email
			}
			if createdAt == "" {
				createdAt = profile.CreatedAt
			}
		}
	}

	editor, editorVersion, plugin, pluginVersion := SplitEditor(seat.LastActivityEditor)
	return models.ReportRow{
		Username:         login,
		Email:            orNA(email),
		CreatedAt:        orNA(createdAt),
		LastActivityAt:   orNA(seat.LastActivityAt),
		LastActiveEditor: editor,
		EditorVersion:    editorVersion,
		Plugin:           plugin,
		PluginVersion:    pluginVersion,
		TeamSlug:         orNA(teamSlug),
	}, true
}

func (c *Correlator) organizationRow(seat *models.Seat) models.ReportRow {
	email := ""
	if seat.Assignee != nil {
		email = seat.Assignee.Email
	}

	// The index miss sentinel is "null", not "N/A": the lookup happened
	// and the user has no team, as opposed to a missing field value.
	teamNames := models.SentinelNoTeam
	if teams, ok := c.Index.TeamNames(seat.Login()); ok {
		teamNames = strings.Join(teams, ", ")
	}

	return models.ReportRow{
		Organization:            c.Scope.Name,
		Username:                orNA(seat.Login()),
		Email:                   orNA(email),
		CreatedAt:               orNA(seat.CreatedAt),
		LastActivityAt:          orNA(seat.LastActivityAt),
		PendingCancellationDate: orNA(seat.PendingCancellationDate),
		TeamNames:               teamNames,
	}
}

func orNA(value string) string {
	if value == "" {
		return models.SentinelNA
	}
	return value
}
