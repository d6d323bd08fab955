package collector

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sombaner/GitHub-copilot-automation-scripts/internal/config"
	"github.com/sombaner/GitHub-copilot-automation-scripts/internal/interfaces"
	"github.com/sombaner/GitHub-copilot-automation-scripts/internal/models"
	"github.com/sombaner/GitHub-copilot-automation-scripts/internal/report"
)

// interOrgPause is the fixed delay between successive organization scopes.
const interOrgPause = 30 * time.Second

// Engine orchestrates a report run: team data first, then seat collection,
// then emission. One API call in flight at a time; the only suspensions
// are rate-limit waits and the inter-organization pause.
type Engine struct {
	source     interfaces.SeatSource
	emitter    *report.Emitter
	store      interfaces.ArtifactStore
	mailer     interfaces.Mailer
	metrics    interfaces.MetricsEmitter
	recipients []string
	cfg        *config.Config
	sleep      func(time.Duration)
}

// NewEngine creates a report engine.
func NewEngine(source interfaces.SeatSource, emitter *report.Emitter, cfg *config.Config) *Engine {
	return &Engine{source: source, emitter: emitter, cfg: cfg, sleep: time.Sleep}
}

// SetStore sets the artifact store. If nil, upload is skipped.
func (e *Engine) SetStore(store interfaces.ArtifactStore) {
	e.store = store
}

// SetMailer sets the mailer and recipient list. If nil, email is skipped.
func (e *Engine) SetMailer(mailer interfaces.Mailer, recipients []string) {
	e.mailer = mailer
	e.recipients = recipients
}

// SetMetrics sets the metrics emitter. If nil, metrics are skipped.
func (e *Engine) SetMetrics(metrics interfaces.MetricsEmitter) {
	e.metrics = metrics
}

// Run performs one report run across all configured scopes. Collection
// failures inside a scope degrade to partial results and are recorded on
// the run; only a rejected credential aborts the run outright.
func (e *Engine) Run(ctx context.Context) (*models.RunResult, error) {
	start := time.Now()

	if err := e.source.ValidateToken(ctx); err != nil {
		return nil, err
	}

	result := &models.RunResult{
		DryRun:    e.cfg.Run.DryRun,
		StartTime: start,
	}

	if e.cfg.GitHub.Enterprise != "" {
		rows := e.collectEnterprise(ctx, result)
		e.emit(ctx, report.EnterpriseReport, rows, result)
	}

	if len(e.cfg.GitHub.Organizations) > 0 {
		rows := e.collectOrganizations(ctx, result)
		e.emit(ctx, report.OrganizationReport, rows, result)
	}

	stats := e.source.Stats()
	result.Summary.Requests = stats.Requests
	result.Summary.Retries = stats.Retries
	result.Summary.RateLimitWaits = stats.RateLimitWaits

	end := time.Now()
	result.EndTime = end
	result.DurationMs = end.Sub(start).Milliseconds()

	if e.metrics != nil {
		if err := e.metrics.EmitRunSummary(ctx, result.Summary); err != nil {
			logrus.WithError(err).Warn("⚠ Could not publish run metrics (non-fatal)")
		}
	}

	logrus.WithField("duration_ms", result.DurationMs).Info(result.Summary.String())
	return result, nil
}

// collectEnterprise fetches enterprise teams and seats and correlates them
// under the assigning-team filter.
func (e *Engine) collectEnterprise(ctx context.Context, result *models.RunResult) []models.ReportRow {
	scope := models.Scope{Kind: models.ScopeEnterprise, Name: e.cfg.GitHub.Enterprise}

	teams, err := e.source.ListEnterpriseTeams(ctx, scope.Name)
	if err != nil {
		e.recordError(result, err)
	}
	result.Summary.TeamsFetched += len(teams)
	logrus.WithFields(logrus.Fields{
		"enterprise": scope.Name,
		"teams":      len(teams),
	}).Info("📋 [1/3] Enterprise teams loaded")

	seats, err := e.source.ListSeats(ctx, scope)
	if err != nil {
		e.recordError(result, err)
	}
	result.Summary.SeatsSeen += len(seats)
	logrus.WithFields(logrus.Fields{
		"enterprise": scope.Name,
		"seats":      len(seats),
	}).Info("💺 [2/3] Billing seats collected")

	correlator := &Correlator{
		Policy:     FilterByAssigningTeam,
		Scope:      scope,
		KnownTeams: teams,
		Lookup:     e.source.GetUserProfile,
	}
	rows, skipped := correlator.Rows(ctx, seats)
	result.Summary.SeatsSkipped += skipped
	result.Summary.RowsEmitted += len(rows)
	result.Summary.ScopesProcessed++
	return rows
}

// collectOrganizations walks the configured organization list, building a
// membership index per org and annotating every seat, with a fixed pause
// between successive organizations.
func (e *Engine) collectOrganizations(ctx context.Context, result *models.RunResult) []models.ReportRow {
	var rows []models.ReportRow

	processed := 0
	for _, org := range e.cfg.GitHub.Organizations {
		if org == "" {
			logrus.Warn("empty organization name in configuration, skipping")
			continue
		}
		// Pause only between organizations that were actually processed;
		// skipped names must not delay the first real one.
		if processed > 0 {
			logrus.WithField("wait_seconds", interOrgPause.Seconds()).Info("pausing before next organization")
			e.sleep(interOrgPause)
		}
		processed++

		scope := models.Scope{Kind: models.ScopeOrganization, Name: org}
		logrus.WithField("org", org).Info("🏢 Processing organization")

		index, teams := BuildMembershipIndex(ctx, e.source, org)
		result.Summary.TeamsFetched += len(teams)
		result.Summary.UsersIndexed += len(index)

		seats, err := e.source.ListSeats(ctx, scope)
		if err != nil {
			e.recordError(result, err)
		}
		result.Summary.SeatsSeen += len(seats)

		correlator := &Correlator{
			Policy: AnnotateFromIndex,
			Scope:  scope,
			Index:  index,
		}
		orgRows, skipped := correlator.Rows(ctx, seats)
		result.Summary.SeatsSkipped += skipped
		result.Summary.RowsEmitted += len(orgRows)
		result.Summary.ScopesProcessed++
		rows = append(rows, orgRows...)
	}

	return rows
}

// emit stages the rows and hands the artifact to the storage and email
// collaborators. Collaborator failures are recorded, not fatal.
func (e *Engine) emit(ctx context.Context, variant report.Variant, rows []models.ReportRow, result *models.RunResult) {
	artifact, err := e.emitter.Write(variant, rows)
	if err != nil {
		e.recordError(result, err)
		return
	}
	result.Artifacts = append(result.Artifacts, artifact)
	logrus.WithFields(logrus.Fields{
		"file": artifact.Filename,
		"rows": artifact.RowCount,
	}).Info("📝 [3/3] Report emitted")

	if e.cfg.Run.DryRun {
		logrus.WithField("object_key", artifact.ObjectKey).Info("[DRY RUN] skipping upload and email")
		return
	}

	if e.store != nil {
		if err := e.store.Upload(ctx, artifact.ObjectKey, artifact.LocalPath); err != nil {
			e.recordError(result, err)
		}
	}

	if e.mailer != nil && len(e.recipients) > 0 {
		if err := e.mailer.SendReport(ctx, e.recipients, artifact); err != nil {
			e.recordError(result, err)
		}
	}
}

func (e *Engine) recordError(result *models.RunResult, err error) {
	logrus.WithError(err).Error("report step failed, continuing with partial results")
	result.Errors = append(result.Errors, err.Error())
}
