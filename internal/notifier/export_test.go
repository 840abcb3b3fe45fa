package notifier

import (
	"net/smtp"
)

func NewSMTPNotifierWithSender(n *SMTPNotifier, send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error) *SMTPNotifier {
	n.sendMail = send
	return n
}

func NewKafkaNotifierWithWriter(writer messageWriter) *KafkaNotifier {
	return &KafkaNotifier{writer: writer}
}
