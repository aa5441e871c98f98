package email

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"github.com/MrJamesThe3rd/filingdesk/internal/notification"
)

// SESClient is the subset of the SES API the mailer uses.
type SESClient interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SESMailer struct {
	client SESClient
	from   string
}

func NewSESMailer(client SESClient, from string) *SESMailer {
	return &SESMailer{client: client, from: from}
}

// NewSESMailerFromRegion builds a mailer using the default AWS credential chain.
func NewSESMailerFromRegion(ctx context.Context, region, from string) (*SESMailer, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	return NewSESMailer(ses.NewFromConfig(cfg), from), nil
}

func (m *SESMailer) Send(ctx context.Context, e notification.Email) error {
	body := &types.Body{
		Html: &types.Content{Data: aws.String(e.HTML), Charset: aws.String("UTF-8")},
	}

	if e.Text != "" {
		body.Text = &types.Content{Data: aws.String(e.Text), Charset: aws.String("UTF-8")}
	}

	_, err := m.client.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{e.To},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(e.Subject), Charset: aws.String("UTF-8")},
			Body:    body,
		},
		Source: aws.String(m.from),
	})
	if err != nil {
		return fmt.Errorf("sending email via SES: %w", err)
	}

	return nil
}

// LogMailer writes emails to the log instead of sending them.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, e notification.Email) error {
	slog.Info("email delivery disabled, logging message", "to", e.To, "subject", e.Subject, "bytes", len(e.HTML), "text_bytes", len(e.Text))
	return nil
}
