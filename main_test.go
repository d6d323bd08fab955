package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sombaner/GitHub-copilot-automation-scripts/internal/config"
	"github.com/sombaner/GitHub-copilot-automation-scripts/internal/models"
)

func setupEnv(t *testing.T) {
	t.Helper()
	t.Setenv("GITHUB_ENTERPRISE", "acme")
	t.Setenv("GITHUB_TOKEN", "ghp_test")
	t.Setenv("REPORT_BUCKET", "copilot-reports")
	t.Setenv("EMAIL_SENDER", "ccoe@example.com")
}

func stubRunReport(t *testing.T, stub func(ctx context.Context, cfg *config.Config) (*models.RunResult, error)) {
	t.Helper()
	original := runReport
	runReport = stub
	t.Cleanup(func() { runReport = original })
}

func TestHandleRequest(t *testing.T) {
	setupEnv(t)

	var gotCfg *config.Config
	stubRunReport(t, func(ctx context.Context, cfg *config.Config) (*models.RunResult, error) {
		gotCfg = cfg
		result := &models.RunResult{}
		result.Summary.RowsEmitted = 5
		return result, nil
	})

	resp, err := HandleRequest(context.Background(), models.LambdaEvent{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, resp.Message)
	}
	if resp.Message != "report completed: 5 rows" {
		t.Fatalf("unexpected message %q", resp.Message)
	}
	if gotCfg == nil || gotCfg.GitHub.Enterprise != "acme" {
		t.Fatalf("expected config loaded from environment, got %+v", gotCfg)
	}
}

func TestHandleRequestDryRunEvent(t *testing.T) {
	setupEnv(t)

	stubRunReport(t, func(ctx context.Context, cfg *config.Config) (*models.RunResult, error) {
		if !cfg.Run.DryRun {
			t.Fatalf("expected dry-run from event override")
		}
		return &models.RunResult{DryRun: true}, nil
	})

	dryRun := true
	resp, err := HandleRequest(context.Background(), models.LambdaEvent{DryRun: &dryRun})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.HasPrefix(resp.Message, "[DRY RUN] ") {
		t.Fatalf("expected dry-run message prefix, got %q", resp.Message)
	}
}

func TestHandleRequestOrganizationsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orgs.csv")
	if err := os.WriteFile(path, []byte("org-one\norg-two\n"), 0o600); err != nil {
		t.Fatalf("writing orgs file: %v", err)
	}

	t.Setenv("GITHUB_ENTERPRISE", "")
	t.Setenv("GITHUB_ORGANIZATIONS_FILE", path)
	t.Setenv("GITHUB_TOKEN", "ghp_test")
	t.Setenv("REPORT_BUCKET", "copilot-reports")
	t.Setenv("EMAIL_SENDER", "ccoe@example.com")

	var gotOrgs []string
	stubRunReport(t, func(ctx context.Context, cfg *config.Config) (*models.RunResult, error) {
		gotOrgs = cfg.GitHub.Organizations
		return &models.RunResult{}, nil
	})

	resp, err := HandleRequest(context.Background(), models.LambdaEvent{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, resp.Message)
	}
	// An orgs-file-only scope must reach the runner as a resolved list,
	// not an unread file path.
	if len(gotOrgs) != 2 || gotOrgs[0] != "org-one" || gotOrgs[1] != "org-two" {
		t.Fatalf("expected organizations resolved from the file, got %v", gotOrgs)
	}
}

func TestHandleRequestScheduledEvent(t *testing.T) {
	setupEnv(t)

	stubRunReport(t, func(ctx context.Context, cfg *config.Config) (*models.RunResult, error) {
		return &models.RunResult{}, nil
	})

	event := models.LambdaEvent{Source: "aws.events", DetailType: "Scheduled Event"}
	resp, err := HandleRequest(context.Background(), event)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200 for scheduled event, got %d: %s", resp.StatusCode, resp.Message)
	}
}

func TestHandleRequestUnsupportedEvent(t *testing.T) {
	setupEnv(t)

	stubRunReport(t, func(ctx context.Context, cfg *config.Config) (*models.RunResult, error) {
		t.Fatalf("runner must not be invoked for unsupported events")
		return nil, nil
	})

	event := models.LambdaEvent{Source: "aws.s3", DetailType: "Object Created"}
	resp, err := HandleRequest(context.Background(), event)
	if err != nil {
		t.Fatalf("expected error carried in the response, got %v", err)
	}
	if resp.StatusCode != 500 || !strings.Contains(resp.Message, "unsupported event source") {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestHandleRequestInvalidConfig(t *testing.T) {
	setupEnv(t)
	t.Setenv("GITHUB_ENTERPRISE", "")

	stubRunReport(t, func(ctx context.Context, cfg *config.Config) (*models.RunResult, error) {
		t.Fatalf("runner must not be invoked for invalid config")
		return nil, nil
	})

	resp, err := HandleRequest(context.Background(), models.LambdaEvent{})
	if err != nil {
		t.Fatalf("expected error carried in the response, got %v", err)
	}
	if resp.StatusCode != 500 || !strings.Contains(resp.Message, "scope") {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestHandleRequestRunnerError(t *testing.T) {
	setupEnv(t)

	stubRunReport(t, func(ctx context.Context, cfg *config.Config) (*models.RunResult, error) {
		return nil, errors.New("invalid GitHub personal access token")
	})

	resp, err := HandleRequest(context.Background(), models.LambdaEvent{})
	if err != nil {
		t.Fatalf("expected error carried in the response, got %v", err)
	}
	if resp.StatusCode != 500 || !strings.Contains(resp.Message, "invalid GitHub personal access token") {
		t.Fatalf("unexpected response %+v", resp)
	}
}
