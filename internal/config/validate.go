package config

import (
	"fmt"
	"net/mail"
	"strings"
)

// Validate ensures configuration is complete and well-formed. It runs
// before any network call; a failure here aborts the run.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	var errs []string

	requireNonEmpty := func(value string, field string) {
		if value == "" {
			errs = append(errs, fmt.Sprintf("%s is required", field))
		}
	}

	hasScope := cfg.GitHub.Enterprise != "" ||
		len(cfg.GitHub.Organizations) > 0 ||
		cfg.GitHub.OrganizationsFile != ""
	if !hasScope {
		errs = append(errs, "at least one scope is required: github.enterprise or github.organizations")
	}

	if cfg.IsLambda {
		requireNonEmpty(cfg.GitHub.TokenSecret, "github.token_secret")
	} else if cfg.GitHub.Token == "" && cfg.GitHub.TokenSecret == "" {
		errs = append(errs, "github.token or github.token_secret is required")
	}

	if !cfg.Run.DryRun {
		requireNonEmpty(cfg.Report.Bucket, "report.bucket")
	}

	if cfg.Email.Enabled && !cfg.Run.DryRun {
		if cfg.Email.Sender == "" {
			errs = append(errs, "email.sender is required")
		} else if _, err := mail.ParseAddress(cfg.Email.Sender); err != nil {
			errs = append(errs, "email.sender must be a valid email")
		}
		requireNonEmpty(cfg.Email.RecipientsFile, "email.recipients_file")
	}

	if cfg.Metrics.Enabled {
		requireNonEmpty(cfg.Metrics.Namespace, "metrics.namespace")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}

	return nil
}
