package config

// Config holds all configuration for a report run.
type Config struct {
	GitHub   GitHubConfig  `json:"github"`
	Report   ReportConfig  `json:"report"`
	Email    EmailConfig   `json:"email"`
	Metrics  MetricsConfig `json:"metrics"`
	Run      RunConfig     `json:"run"`
	Log      LogConfig     `json:"log"`
	IsLambda bool          `json:"-"`
}

// GitHubConfig holds GitHub scope and credential settings.
type GitHubConfig struct {
	Enterprise        string   `json:"enterprise,omitempty"`
	Organizations     []string `json:"organizations,omitempty"`
	OrganizationsFile string   `json:"organizations_file,omitempty"`
	Token             string   `json:"-"`
	TokenSecret       string   `json:"token_secret,omitempty"`
}

// ReportConfig holds artifact staging and storage settings.
type ReportConfig struct {
	Bucket     string `json:"bucket"`
	StagingDir string `json:"staging_dir"`
}

// EmailConfig holds report distribution settings.
type EmailConfig struct {
	Enabled        bool   `json:"enabled"`
	Sender         string `json:"sender,omitempty"`
	Subject        string `json:"subject"`
	RecipientsFile string `json:"recipients_file"`
}

// MetricsConfig holds CloudWatch settings.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled"`
	Namespace string `json:"namespace"`
}

// RunConfig holds run behavior settings.
type RunConfig struct {
	DryRun bool `json:"dry_run"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}
