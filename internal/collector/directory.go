package collector

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/sombaner/GitHub-copilot-automation-scripts/internal/interfaces"
	"github.com/sombaner/GitHub-copilot-automation-scripts/internal/models"
)

// BuildMembershipIndex enumerates every team of an organization and, for
// each, every member, producing a username → team-names index in discovery
// order. Teams without a slug are skipped. A failure fetching one team's
// members ends only that team's enumeration; remaining teams still index,
// and any members fetched before the failure are kept.
func BuildMembershipIndex(ctx context.Context, source interfaces.SeatSource, org string) (models.MembershipIndex, []models.Team) {
	index := models.MembershipIndex{}

	teams, err := source.ListOrgTeams(ctx, org)
	if err != nil {
		logrus.WithError(err).WithField("org", org).Error("failed to fetch org teams, indexing what was returned")
	}

	for _, team := range teams {
		if team.Slug == "" {
			logrus.WithFields(logrus.Fields{
				"org":  org,
				"team": team.Name,
			}).Debug("skipping team without slug")
			continue
		}

		members, err := source.ListTeamMembers(ctx, org, team.Slug)
		if err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"org":  org,
				"team": team.Slug,
			}).Warn("failed to fetch team members, continuing with remaining teams")
		}
		for _, login := range members {
			index.Add(login, team.Name)
		}
	}

	logrus.WithFields(logrus.Fields{
		"org":   org,
		"teams": len(teams),
		"users": len(index),
	}).Info("membership index built")
	return index, teams
}
