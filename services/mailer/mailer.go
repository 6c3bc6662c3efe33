package mailer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/jordan-wright/email"
)

type SmtpConfig struct {
	Server       string `json:"server"`
	Port         int    `json:"port"`
	EmailAddress string `json:"email_address"`
	Password     string `json:"password"`
}

// Client delivers deal notifications over SMTP. The zero value is a
// disabled client that reports every delivery as failed, so a missing
// smtp config degrades to "notification recorded but not sent".
type Client struct {
	config SmtpConfig
}

func NewClient(config SmtpConfig) Client {
	return Client{config: config}
}

func (c Client) enabled() bool {
	return c.config.Server != ""
}

func (c Client) sendOne(to, subject, text, html string) error {
	mail := email.NewEmail()
	mail.From = fmt.Sprintf("Award Fare Monitor <%s>", c.config.EmailAddress)
	mail.To = []string{to}
	mail.Subject = subject
	mail.Text = []byte(text)
	mail.HTML = []byte(html)

	addr := fmt.Sprintf("%s:%d", c.config.Server, c.config.Port)
	err := mail.Send(
		addr,
		smtp.PlainAuth("", c.config.EmailAddress, c.config.Password, c.config.Server),
	)
	if err != nil && strings.Contains(err.Error(), "server doesn't support AUTH") {
		return mail.Send(addr, nil)
	}
	return err
}

// Send delivers the message to every address, one email per recipient.
// It reports true if at least one delivery went through.
func (c Client) Send(ctx context.Context, to []string, subject, text, html string) (bool, error) {
	if !c.enabled() {
		slog.WarnContext(ctx, "smtp not configured, skipping email")
		return false, nil
	}
	if len(to) == 0 {
		slog.WarnContext(ctx, "no active recipients, skipping email")
		return false, nil
	}

	delivered := false
	var errlist []error
	for _, addr := range to {
		err := c.sendOne(addr, subject, text, html)
		if err != nil {
			slog.ErrorContext(ctx, "send email", "to", addr, "err", err)
			errlist = append(errlist, fmt.Errorf("%s: %w", addr, err))
			continue
		}
		slog.InfoContext(ctx, "email sent", "to", addr)
		delivered = true
	}
	return delivered, errors.Join(errlist...)
}
