package notifier

import (
	"context"
	"fmt"
	"food-inventory/config"
	"food-inventory/internal/model"
	"net"
	"net/smtp"
	"strconv"
	"strings"
)

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPNotifier : smtp.SendMail сам переходит на STARTTLS, если сервер его поддерживает
type SMTPNotifier struct {
	cfg      *config.MailConfig
	sendMail sendMailFunc
}

func NewSMTPNotifier(cfg *config.MailConfig) *SMTPNotifier {
	return &SMTPNotifier{cfg: cfg, sendMail: smtp.SendMail}
}

func (n *SMTPNotifier) Send(ctx context.Context, message model.Message) error {
	addr := net.JoinHostPort(n.cfg.SMTPServer, strconv.Itoa(n.cfg.Port))

	var auth smtp.Auth
	if n.cfg.Username != "" {
		auth = smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.SMTPServer)
	}

	done := make(chan error, 1)
	go func() {
		done <- n.sendMail(addr, auth, n.cfg.FromEmail, []string{message.To}, n.compose(message))
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("[SMTPNotifier] ошибка отправки письма: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("[SMTPNotifier] отправка прервана: %w", ctx.Err())
	}
}

func (n *SMTPNotifier) compose(message model.Message) []byte {
	from := n.cfg.FromEmail
	if n.cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", n.cfg.FromName, n.cfg.FromEmail)
	}

	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + message.To + "\r\n")
	b.WriteString("Subject: " + message.Subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(message.Body)
	return []byte(b.String())
}
