package notification

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"habit/config"
	"habit/internal/domain/service"
	"habit/internal/errors"
	"habit/internal/util"
)

// SMTPNotifier sends plain text email through an SMTP relay, upgrading to STARTTLS when offered.
type SMTPNotifier struct {
	cfg    config.SMTPConfig
	from   string
	logger *slog.Logger
	now    func() time.Time
}

var _ service.Notifier = (*SMTPNotifier)(nil)

func NewSMTPNotifier(cfg config.SMTPConfig, from string, logger *slog.Logger) *SMTPNotifier {
	return &SMTPNotifier{
		cfg:    cfg,
		from:   from,
		logger: logger,
		now:    time.Now,
	}
}

// Send reports delivery failures as false and logs the cause.
func (n *SMTPNotifier) Send(ctx context.Context, to, subject, body string) bool {
	if err := n.send(ctx, to, subject, body); err != nil {
		n.logger.WarnContext(ctx, "Failed to send email",
			slog.String("to", util.MaskEmail(to)),
			slog.String("subject", subject),
			slog.Any("error", err),
		)

		return false
	}

	n.logger.InfoContext(ctx, "Email sent",
		slog.String("to", util.MaskEmail(to)),
		slog.String("subject", subject),
	)

	return true
}

func (n *SMTPNotifier) send(ctx context.Context, to, subject, body string) error {
	if strings.ContainsAny(to, "\r\n") || strings.ContainsAny(subject, "\r\n") {
		return errors.New("header values must not contain line breaks")
	}

	addr := net.JoinHostPort(n.cfg.Host, strconv.Itoa(n.cfg.Port))

	dialer := &net.Dialer{Timeout: n.cfg.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return errors.Wrap(err, "dial smtp relay")
	}

	// now only stamps the Date header; network deadlines use the wall clock.
	deadline := time.Now().Add(n.cfg.Timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := conn.SetDeadline(deadline); err != nil {
		_ = conn.Close()

		return errors.Wrap(err, "set smtp deadline")
	}

	client, err := smtp.NewClient(conn, n.cfg.Host)
	if err != nil {
		_ = conn.Close()

		return errors.Wrap(err, "smtp handshake")
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: n.cfg.Host, MinVersion: tls.VersionTLS12}); err != nil {
			return errors.Wrap(err, "smtp starttls")
		}
	}

	if n.cfg.Username != "" {
		auth := smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
		if err := client.Auth(auth); err != nil {
			return errors.Wrap(err, "smtp auth")
		}
	}

	if err := client.Mail(n.from); err != nil {
		return errors.Wrap(err, "smtp MAIL FROM")
	}
	if err := client.Rcpt(to); err != nil {
		return errors.Wrap(err, "smtp RCPT TO")
	}

	w, err := client.Data()
	if err != nil {
		return errors.Wrap(err, "smtp DATA")
	}
	if _, err := w.Write(n.buildMessage(to, subject, body)); err != nil {
		_ = w.Close()

		return errors.Wrap(err, "write smtp message")
	}
	if err := w.Close(); err != nil {
		return errors.Wrap(err, "close smtp message")
	}

	return client.Quit()
}

func (n *SMTPNotifier) buildMessage(to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", n.from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	fmt.Fprintf(&b, "Date: %s\r\n", n.now().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))

	return []byte(b.String())
}
