package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sombaner/GitHub-copilot-automation-scripts/internal/models"
)

// Variant selects the report schema.
type Variant int

const (
	// EnterpriseReport carries per-seat editor/plugin detail and the
	// assigning team slug.
	EnterpriseReport Variant = iota

	// OrganizationReport carries the organization name, cancellation
	// date, and the annotated team-name list.
	OrganizationReport
)

var enterpriseHeader = []string{
	"Username", "Email", "Created At", "Last Activity At",
	"Last Active Editor", "Editor Version", "Plugin", "Plugin Version",
	"Team Slug",
}

var organizationHeader = []string{
	"Organization", "Username", "Email", "Created At", "Last Activity At",
	"Pending Cancellation Date", "Team Name",
}

// Header returns the fixed CSV header for a variant. Column order and
// presence never depend on the rows.
func Header(v Variant) []string {
	if v == OrganizationReport {
		return organizationHeader
	}
	return enterpriseHeader
}

// Record renders one row in the variant's column order.
func Record(v Variant, row models.ReportRow) []string {
	if v == OrganizationReport {
		return []string{
			row.Organization, row.Username, row.Email, row.CreatedAt,
			row.LastActivityAt, row.PendingCancellationDate, row.TeamNames,
		}
	}
	return []string{
		row.Username, row.Email, row.CreatedAt, row.LastActivityAt,
		row.LastActiveEditor, row.EditorVersion, row.Plugin, row.PluginVersion,
		row.TeamSlug,
	}
}

func filename(v Variant) string {
	if v == OrganizationReport {
		return "copilot-seat-analysis.csv"
	}
	return "copilot_billing_seats.csv"
}

// Emitter serializes report rows to a staged CSV file.
type Emitter struct {
	stagingDir string
	now        func() time.Time
}

// NewEmitter creates an emitter staging files under dir.
func NewEmitter(dir string) *Emitter {
	return &Emitter{stagingDir: dir, now: time.Now}
}

// Write stages rows as a CSV artifact. An empty row set still produces a
// header-only file. The object key embeds the run date.
func (e *Emitter) Write(v Variant, rows []models.ReportRow) (*models.Artifact, error) {
	name := filename(v)
	localPath := filepath.Join(e.stagingDir, name)

	file, err := os.Create(localPath)
	if err != nil {
		return nil, fmt.Errorf("creating report file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(Header(v)); err != nil {
		return nil, fmt.Errorf("writing report header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(Record(v, row)); err != nil {
			return nil, fmt.Errorf("writing report row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flushing report: %w", err)
	}

	date := e.now().Format("2006_01_02")
	ext := filepath.Ext(name)
	objectKey := strings.TrimSuffix(name, ext) + "_" + date + ext

	logrus.WithFields(logrus.Fields{
		"file": localPath,
		"rows": len(rows),
	}).Info("report staged")

	return &models.Artifact{
		LocalPath: localPath,
		Filename:  name,
		ObjectKey: objectKey,
		RowCount:  len(rows),
	}, nil
}
