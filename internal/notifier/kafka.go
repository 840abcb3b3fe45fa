package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"food-inventory/internal/model"
	"food-inventory/internal/util"

	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaNotifier : кладет письмо в топик, отправкой занимается отдельный mail worker
type KafkaNotifier struct {
	writer messageWriter
}

func NewKafkaNotifier(brokers []string, topic string) *KafkaNotifier {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
	}
	return &KafkaNotifier{writer: writer}
}

func (n *KafkaNotifier) Send(ctx context.Context, message model.Message) error {
	value, err := json.Marshal(message)
	if err != nil {
		return util.LogError("[KafkaNotifier] ошибка сериализации письма", err)
	}

	msg := kafka.Message{
		Key:   []byte(message.To),
		Value: value,
	}
	if err := n.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("[KafkaNotifier] ошибка отправки сообщения: %w", err)
	}
	return nil
}

func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}
