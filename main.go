package main

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/sirupsen/logrus"
	"github.com/sombaner/GitHub-copilot-automation-scripts/cmd"
	"github.com/sombaner/GitHub-copilot-automation-scripts/internal/collector"
	"github.com/sombaner/GitHub-copilot-automation-scripts/internal/config"
	"github.com/sombaner/GitHub-copilot-automation-scripts/internal/email"
	"github.com/sombaner/GitHub-copilot-automation-scripts/internal/github"
	"github.com/sombaner/GitHub-copilot-automation-scripts/internal/metrics"
	"github.com/sombaner/GitHub-copilot-automation-scripts/internal/models"
	"github.com/sombaner/GitHub-copilot-automation-scripts/internal/report"
	"github.com/sombaner/GitHub-copilot-automation-scripts/internal/secrets"
	"github.com/sombaner/GitHub-copilot-automation-scripts/internal/storage"
)

func main() {
	cmd.SetLambdaHandler(HandleRequest)
	cmd.SetRunReport(runReport)
	cmd.Execute()
}

// HandleRequest is the AWS Lambda handler.
func HandleRequest(ctx context.Context, event models.LambdaEvent) (*models.LambdaResponse, error) {
	if event.Source != "" || event.DetailType != "" {
		if !isScheduledEvent(event) {
			return models.NewErrorResponse(fmt.Errorf("unsupported event source")), nil
		}
	}
	cfg, err := config.Load("")
	if err != nil {
		return models.NewErrorResponse(err), nil
	}

	cfg.Run.DryRun = event.IsDryRun(cfg.Run.DryRun)
	if err := config.Validate(cfg); err != nil {
		return models.NewErrorResponse(err), nil
	}

	result, err := runReport(ctx, cfg)
	if err != nil {
		return models.NewErrorResponse(err), nil
	}

	return models.NewSuccessResponse(result), nil
}

func isScheduledEvent(event models.LambdaEvent) bool {
	return event.Source == "aws.events" && event.DetailType == "Scheduled Event"
}

var runReport = func(ctx context.Context, cfg *config.Config) (*models.RunResult, error) {
	token := cfg.GitHub.Token
	if token == "" {
		resolved, tokenErr := secrets.ResolveSecretValue(cfg.GitHub.TokenSecret, "")
		if tokenErr != nil {
			return nil, fmt.Errorf("github token: %w", tokenErr)
		}
		token = resolved
	}

	client, err := github.NewClient(token)
	if err != nil {
		return nil, err
	}

	engine := collector.NewEngine(client, report.NewEmitter(cfg.Report.StagingDir), cfg)

	if !cfg.Run.DryRun {
		awsCfg, awsErr := awsconfig.LoadDefaultConfig(ctx)
		if awsErr != nil {
			return nil, fmt.Errorf("loading AWS config: %w", awsErr)
		}

		bucket := storage.NewBucket(awsCfg, cfg.Report.Bucket)
		engine.SetStore(bucket)

		if cfg.Email.Enabled {
			recipients, recErr := email.LoadRecipients(ctx, cfg.Email.RecipientsFile, bucket.Fetch)
			if recErr != nil {
				logrus.WithError(recErr).Warn("⚠ Could not load recipients, email distribution disabled")
			} else {
				engine.SetMailer(email.NewSender(awsCfg, cfg.Email.Sender, cfg.Email.Subject), recipients)
			}
		}

		if cfg.Metrics.Enabled {
			engine.SetMetrics(metrics.NewEmitter(awsCfg, cfg.Metrics.Namespace))
			logrus.WithField("namespace", cfg.Metrics.Namespace).Info("✅ CloudWatch metrics enabled")
		}
	}

	return engine.Run(ctx)
}
