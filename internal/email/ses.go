package email

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/sirupsen/logrus"
	"github.com/sombaner/GitHub-copilot-automation-scripts/internal/models"
)

const htmlBody = "Hello, <br/><br/>Please find the attached Copilot Report<br/><br/>Thanks,<br/>CCOE"

// SESAPI defines the SES client operations used for report delivery.
type SESAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// Sender delivers a report artifact as an email attachment via SES.
type Sender struct {
	client  SESAPI
	sender  string
	subject string
}

// NewSender creates an SES-backed report mailer.
func NewSender(cfg aws.Config, sender string, subject string) *Sender {
	return &Sender{
		client:  sesv2.NewFromConfig(cfg),
		sender:  sender,
		subject: subject,
	}
}

// SendReport emails the staged artifact to the recipient list with an HTML
// body and the CSV attached.
func (s *Sender) SendReport(ctx context.Context, recipients []string, artifact *models.Artifact) error {
	if len(recipients) == 0 {
		return fmt.Errorf("recipient list is empty")
	}

	attachment, err := os.ReadFile(artifact.LocalPath)
	if err != nil {
		return fmt.Errorf("reading report attachment: %w", err)
	}

	raw, err := buildRawMessage(s.sender, recipients, s.subject, artifact.Filename, attachment)
	if err != nil {
		return fmt.Errorf("building report email: %w", err)
	}

	_, err = s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.sender),
		Destination:      &types.Destination{ToAddresses: recipients},
		Content: &types.EmailContent{
			Raw: &types.RawMessage{Data: raw},
		},
	})
	if err != nil {
		return fmt.Errorf("sending report email: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"recipients": len(recipients),
		"attachment": artifact.Filename,
	}).Info("✉️  Report emailed")
	return nil
}

// buildRawMessage assembles a multipart MIME message with an HTML part and
// a base64-encoded CSV attachment.
func buildRawMessage(from string, to []string, subject string, filename string, attachment []byte) ([]byte, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", writer.Boundary())

	bodyHeader := textproto.MIMEHeader{}
	bodyHeader.Set("Content-Type", "text/html; charset=utf-8")
	body, err := writer.CreatePart(bodyHeader)
	if err != nil {
		return nil, err
	}
	if _, err := body.Write([]byte(htmlBody)); err != nil {
		return nil, err
	}

	attachmentHeader := textproto.MIMEHeader{}
	attachmentHeader.Set("Content-Type", "text/csv")
	attachmentHeader.Set("Content-Transfer-Encoding", "base64")
	attachmentHeader.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	part, err := writer.CreatePart(attachmentHeader)
	if err != nil {
		return nil, err
	}
	encoded := base64.StdEncoding.EncodeToString(attachment)
	if _, err := part.Write([]byte(encoded)); err != nil {
		return nil, err
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
