package config

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration from file, environment variables, and defaults.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	v.SetDefault("report.staging_dir", os.TempDir())
	v.SetDefault("email.enabled", true)
	v.SetDefault("email.subject", "Copilot Report")
	v.SetDefault("email.recipients_file", "emails.json")
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.namespace", "CopilotReport")
	v.SetDefault("run.dry_run", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("github.enterprise", "GITHUB_ENTERPRISE")
	_ = v.BindEnv("github.organizations", "GITHUB_ORGANIZATIONS")
	_ = v.BindEnv("github.organizations_file", "GITHUB_ORGANIZATIONS_FILE")
	_ = v.BindEnv("github.token", "GITHUB_TOKEN")
	_ = v.BindEnv("github.token_secret", "GITHUB_TOKEN_SECRET")
	_ = v.BindEnv("report.bucket", "REPORT_BUCKET")
	_ = v.BindEnv("report.staging_dir", "REPORT_STAGING_DIR")
	_ = v.BindEnv("email.enabled", "EMAIL_ENABLED")
	_ = v.BindEnv("email.sender", "EMAIL_SENDER")
	_ = v.BindEnv("email.subject", "EMAIL_SUBJECT")
	_ = v.BindEnv("email.recipients_file", "EMAIL_RECIPIENTS_FILE")
	_ = v.BindEnv("metrics.enabled", "METRICS_ENABLED")
	_ = v.BindEnv("metrics.namespace", "METRICS_NAMESPACE")
	_ = v.BindEnv("run.dry_run", "DRY_RUN")
	_ = v.BindEnv("log.level", "LOG_LEVEL")
	_ = v.BindEnv("log.format", "LOG_FORMAT")

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	// Explicitly map values to avoid tag mismatch issues.
	cfg.GitHub.Enterprise = v.GetString("github.enterprise")
	cfg.GitHub.Organizations = organizationList(v.GetStringSlice("github.organizations"))
	cfg.GitHub.OrganizationsFile = v.GetString("github.organizations_file")
	cfg.GitHub.Token = v.GetString("github.token")
	cfg.GitHub.TokenSecret = v.GetString("github.token_secret")

	cfg.Report.Bucket = v.GetString("report.bucket")
	cfg.Report.StagingDir = v.GetString("report.staging_dir")

	cfg.Email.Enabled = v.GetBool("email.enabled")
	cfg.Email.Sender = v.GetString("email.sender")
	cfg.Email.Subject = v.GetString("email.subject")
	cfg.Email.RecipientsFile = v.GetString("email.recipients_file")

	cfg.Metrics.Enabled = v.GetBool("metrics.enabled")
	cfg.Metrics.Namespace = v.GetString("metrics.namespace")

	cfg.Run.DryRun = v.GetBool("run.dry_run")

	cfg.Log.Level = v.GetString("log.level")
	cfg.Log.Format = v.GetString("log.format")

	cfg.IsLambda = os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != ""

	// Resolve the organizations file here so every entry point sees the
	// final list; flag overrides re-resolve in the CLI.
	if len(cfg.GitHub.Organizations) == 0 && cfg.GitHub.OrganizationsFile != "" {
		orgs, err := LoadOrganizations(cfg.GitHub.OrganizationsFile)
		if err != nil {
			return nil, err
		}
		cfg.GitHub.Organizations = orgs
	}

	return cfg, nil
}

// organizationList normalizes a configured organization list: environment
// values arrive as one comma-separated entry, config files as a list.
func organizationList(values []string) []string {
	var orgs []string
	for _, value := range values {
		for _, org := range strings.Split(value, ",") {
			org = strings.TrimSpace(org)
			if org != "" {
				orgs = append(orgs, org)
			}
		}
	}
	return orgs
}
