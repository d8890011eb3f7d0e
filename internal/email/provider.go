// Package email renders and delivers transactional storefront email.
package email

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/murshadpk/storefront/internal/observability"
)

type Provider interface {
	SendEmail(ctx context.Context, email *Email) error
}

type Email struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

type Config struct {
	Provider string
	APIKey   string
	From     string
}

const (
	sendTimeout   = 15 * time.Second
	resendAPIHost = "api.resend.com"
)

func NewProvider(cfg Config, logger *slog.Logger) (Provider, error) {
	switch cfg.Provider {
	case "", "log":
		return NewLogProvider(logger), nil
	case "resend":
		if cfg.APIKey == "" || cfg.From == "" {
			return nil, fmt.Errorf("resend provider requires an API key and a sender address")
		}
		return NewResendProvider(cfg.APIKey, cfg.From, observability.NewHTTPClient(sendTimeout, resendAPIHost)), nil
	default:
		return nil, fmt.Errorf("EMAIL_PROVIDER must be either 'log' or 'resend'")
	}
}

// LogProvider writes outgoing email to the logger instead of delivering it.
type LogProvider struct {
	logger *slog.Logger
}

func NewLogProvider(logger *slog.Logger) *LogProvider {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogProvider{logger: logger.With("component", "email_log")}
}

func (p *LogProvider) SendEmail(ctx context.Context, email *Email) error {
	if email == nil {
		return fmt.Errorf("email is required")
	}
	p.logger.InfoContext(ctx, "email not delivered (log provider)",
		"to", email.To,
		"subject", email.Subject,
		"text", email.Text,
	)
	return nil
}
