package email

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"net/smtp"
	"strings"

	settingsdomain "github.com/santaradigital/backoffice/internal/settings/domain"
	"go.uber.org/zap"
)

// SMTPProvider sends mail through the SMTP server configured in the
// persisted settings. Configuration is resolved per send so admin edits
// take effect without a restart.
type SMTPProvider struct {
	log      *zap.Logger
	settings settingsdomain.Service
}

func NewSMTP(log *zap.Logger, settings settingsdomain.Service) Provider {
	return &SMTPProvider{
		log:      log.Named("providers.email"),
		settings: settings,
	}
}

func (p *SMTPProvider) Send(ctx context.Context, msg Message) error {
	cfg, err := p.settings.Get(ctx)
	if err != nil {
		return err
	}
	if !cfg.EmailEnabled {
		return ErrDisabled
	}
	if cfg.SMTPHost == "" || cfg.FromEmail == "" {
		return fmt.Errorf("smtp settings incomplete")
	}
	if len(msg.To) == 0 {
		return fmt.Errorf("no recipients")
	}

	from := cfg.FromEmail
	if cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", cfg.FromName), cfg.FromEmail)
	}

	body := buildMIME(from, msg)

	auth := smtp.PlainAuth("", cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPHost)
	addr := fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort)
	if err := smtp.SendMail(addr, auth, cfg.FromEmail, msg.To, body); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	p.log.Info("email sent",
		zap.String("subject", msg.Subject),
		zap.Int("recipients", len(msg.To)),
		zap.Int("attachments", len(msg.Attachments)),
	)
	return nil
}

const mimeBoundary = "backoffice-mime-boundary"

func buildMIME(from string, msg Message) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", strings.Join(msg.To, ", "))
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	buf.WriteString("MIME-Version: 1.0\r\n")

	if len(msg.Attachments) == 0 {
		buf.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
		buf.WriteString(msg.HTMLBody)
		return buf.Bytes()
	}

	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", mimeBoundary)

	fmt.Fprintf(&buf, "--%s\r\n", mimeBoundary)
	buf.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
	buf.WriteString(msg.HTMLBody)
	buf.WriteString("\r\n")

	for _, att := range msg.Attachments {
		contentType := att.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		fmt.Fprintf(&buf, "--%s\r\n", mimeBoundary)
		fmt.Fprintf(&buf, "Content-Type: %s\r\n", contentType)
		buf.WriteString("Content-Transfer-Encoding: base64\r\n")
		fmt.Fprintf(&buf, "Content-Disposition: attachment; filename=%q\r\n\r\n", att.Filename)

		encoded := base64.StdEncoding.EncodeToString(att.Content)
		for len(encoded) > 76 {
			buf.WriteString(encoded[:76])
			buf.WriteString("\r\n")
			encoded = encoded[76:]
		}
		buf.WriteString(encoded)
		buf.WriteString("\r\n")
	}
	fmt.Fprintf(&buf, "--%s--\r\n", mimeBoundary)

	return buf.Bytes()
}
