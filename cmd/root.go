package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/sirupsen/logrus"
	"github.com/sombaner/GitHub-copilot-automation-scripts/internal/config"
	"github.com/sombaner/GitHub-copilot-automation-scripts/internal/log"
	"github.com/sombaner/GitHub-copilot-automation-scripts/internal/models"
	"github.com/spf13/cobra"
)

var (
	cfgFile        string
	flagDryRun     bool
	flagEnterprise string
	flagOrgs       []string
	flagOrgsFile   string
	flagToken      string
	flagBucket     string
	flagLogLevel   string
	flagLogFormat  string

	lambdaHandler func(ctx context.Context, event models.LambdaEvent) (*models.LambdaResponse, error)
	runReport     func(ctx context.Context, cfg *config.Config) (*models.RunResult, error)
)

// SetLambdaHandler registers the Lambda handler used in Lambda mode.
func SetLambdaHandler(handler func(ctx context.Context, event models.LambdaEvent) (*models.LambdaResponse, error)) {
	lambdaHandler = handler
}

// SetRunReport registers the report runner used by the CLI.
func SetRunReport(handler func(ctx context.Context, cfg *config.Config) (*models.RunResult, error)) {
	runReport = handler
}

var rootCmd = &cobra.Command{
	Use:   "copilot-report",
	Short: "Collect GitHub Copilot seat data and distribute a CSV report",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		overrideConfigFromFlags(cmd, cfg)

		// Load already resolved any configured organizations file; only an
		// explicit --orgs-file flag needs re-resolving here. --orgs wins
		// over the file either way.
		if cfg.GitHub.OrganizationsFile != "" && !cmd.Flags().Changed("orgs") &&
			(len(cfg.GitHub.Organizations) == 0 || cmd.Flags().Changed("orgs-file")) {
			orgs, orgsErr := config.LoadOrganizations(cfg.GitHub.OrganizationsFile)
			if orgsErr != nil {
				return orgsErr
			}
			cfg.GitHub.Organizations = orgs
		}

		if err := config.Validate(cfg); err != nil {
			return err
		}

		logger := log.NewLogger(cfg.Log.Level, cfg.Log.Format)
		logrus.SetFormatter(logger.Formatter)
		logrus.SetLevel(logger.Level)
		logrus.SetOutput(logger.Out)

		if runReport == nil {
			return fmt.Errorf("report runner is not configured")
		}

		result, err := runReport(context.Background(), cfg)
		if err != nil {
			return err
		}

		logrus.WithFields(logrus.Fields{
			"dry_run":     result.DryRun,
			"duration_ms": result.DurationMs,
		}).Info(result.Summary.String())

		for _, artifact := range result.Artifacts {
			logrus.WithFields(logrus.Fields{
				"file": artifact.Filename,
				"rows": artifact.RowCount,
				"key":  artifact.ObjectKey,
			}).Info("report artifact")
		}
		for _, runErr := range result.Errors {
			logrus.WithField("error", runErr).Warn("run finished with errors")
		}

		return nil
	},
}

// Execute runs the CLI or Lambda handler depending on environment.
func Execute() {
	if isLambda() {
		if lambdaHandler == nil {
			logrus.Fatal("lambda handler is not configured")
		}
		lambda.Start(lambdaHandler)
		return
	}

	if err := rootCmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&flagDryRun, "dry-run", false, "Collect and stage the report without uploading or emailing")
	rootCmd.PersistentFlags().StringVar(&flagEnterprise, "enterprise", "", "GitHub enterprise slug")
	rootCmd.PersistentFlags().StringSliceVar(&flagOrgs, "orgs", nil, "GitHub organization names")
	rootCmd.PersistentFlags().StringVar(&flagOrgsFile, "orgs-file", "", "Path to a file listing organizations, one per line")
	rootCmd.PersistentFlags().StringVar(&flagToken, "github-token", "", "GitHub Personal Access Token")
	rootCmd.PersistentFlags().StringVar(&flagBucket, "bucket", "", "S3 bucket for report artifacts")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "Log format: text, json, or pretty")
}

func isLambda() bool {
	return os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != ""
}

func overrideConfigFromFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("dry-run") {
		cfg.Run.DryRun = flagDryRun
	}
	if cmd.Flags().Changed("enterprise") {
		cfg.GitHub.Enterprise = flagEnterprise
	}
	if cmd.Flags().Changed("orgs") {
		cfg.GitHub.Organizations = flagOrgs
	}
	if cmd.Flags().Changed("orgs-file") {
		cfg.GitHub.OrganizationsFile = flagOrgsFile
	}
	if cmd.Flags().Changed("github-token") {
		cfg.GitHub.Token = flagToken
	}
	if cmd.Flags().Changed("bucket") {
		cfg.Report.Bucket = flagBucket
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Log.Format = flagLogFormat
	}
}
