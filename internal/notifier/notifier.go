package notifier

import (
	"context"
	"fmt"
	"food-inventory/config"
	"food-inventory/internal/model"
	"food-inventory/internal/ports"
	"html"
	"log"
	"net/url"
	"time"
)

const (
	DriverSMTP  = "smtp"
	DriverKafka = "kafka"
	DriverLog   = "log"

	PasswordResetSubject = "Forgot password"
)

// New : выбирает драйвер по cfg.Driver
func New(cfg *config.MailConfig) (ports.Notifier, error) {
	switch cfg.Driver {
	case DriverSMTP:
		return NewSMTPNotifier(cfg), nil
	case DriverKafka:
		if len(cfg.KafkaBrokers) == 0 || cfg.KafkaTopic == "" {
			return nil, fmt.Errorf("[Notifier] для kafka нужны kafka_brokers и kafka_topic")
		}
		return NewKafkaNotifier(cfg.KafkaBrokers, cfg.KafkaTopic), nil
	case DriverLog, "":
		return NewLogNotifier(), nil
	}
	return nil, fmt.Errorf("[Notifier] неизвестный драйвер %q", cfg.Driver)
}

// SendAsync : отправка в фоне, ошибка только логируется
func SendAsync(notifier ports.Notifier, message model.Message, timeout time.Duration) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := notifier.Send(ctx, message); err != nil {
			log.Printf("[Notifier] письмо для %s не отправлено: %v", message.To, err)
		}
	}()
}

// PasswordResetBody : HTML письма со ссылкой на форму сброса пароля
func PasswordResetBody(resetURL, email, token string) string {
	query := url.Values{}
	query.Set("email", email)
	query.Set("token", token)
	link := html.EscapeString(resetURL + "?" + query.Encode())

	return fmt.Sprintf(`<h1>Reset your password</h1><br />
<p>You are receiving this e-mail because a password reset was requested for your account.</p>
<br />
<p>Click the link below to choose a new password:</p>
<br />
<a href="%s" target="_blank" style="background:black;padding:10px;border:none;color:white;border-radius:4px;display:block;margin:0 auto;width:50%%;text-align:center;text-decoration:none">Reset password</a><br />
`, link)
}

type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Send(_ context.Context, message model.Message) error {
	log.Printf("[Notifier] письмо для %s: %s\n%s", message.To, message.Subject, message.Body)
	return nil
}
