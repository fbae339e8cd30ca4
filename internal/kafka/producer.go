package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// LedgerEvent сообщение о крупной операции по балансу
type LedgerEvent struct {
	UserID    string    `json:"user_id"`
	Type      string    `json:"type"`
	Crypto    string    `json:"crypto,omitempty"`
	Amount    float64   `json:"amount"`
	Status    string    `json:"status,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Producer Kafka producer для отправки событий леджера
type Producer struct {
	writer    *kafka.Writer
	threshold float64
	logger    *logrus.Logger
}

// NewProducer создает новый Kafka producer
func NewProducer(brokers []string, topic string, threshold float64, logger *logrus.Logger) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		Async:        true, // Асинхронная отправка для производительности
		Compression:  kafka.Snappy,
		BatchTimeout: 10 * time.Millisecond,
	}

	logger.Infof("Kafka producer initialized for topic: %s", topic)

	return &Producer{
		writer:    writer,
		threshold: threshold,
		logger:    logger,
	}
}

// SendLargeOperationNotification отправляет событие, если сумма операции превышает порог
func (p *Producer) SendLargeOperationNotification(ctx context.Context, userID, opType, crypto, status string, amount float64) error {
	// Проверяем, превышает ли сумма порог
	if amount < p.threshold {
		p.logger.Debugf("Operation amount %.2f is below threshold %.2f, skipping Kafka notification", amount, p.threshold)
		return nil
	}

	event := LedgerEvent{
		UserID:    userID,
		Type:      opType,
		Crypto:    crypto,
		Amount:    amount,
		Status:    status,
		Timestamp: time.Now(),
	}

	// Сериализуем событие в JSON
	eventBytes, err := json.Marshal(event)
	if err != nil {
		p.logger.Errorf("Failed to marshal Kafka message: %v", err)
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	// Отправляем сообщение в Kafka
	kafkaMessage := kafka.Message{
		Key:   []byte(fmt.Sprintf("user_%s", userID)),
		Value: eventBytes,
		Time:  time.Now(),
	}

	err = p.writer.WriteMessages(ctx, kafkaMessage)
	if err != nil {
		p.logger.Errorf("Failed to send message to Kafka: %v", err)
		return fmt.Errorf("failed to send message: %w", err)
	}

	p.logger.Infof("Sent large operation notification to Kafka: UserID=%s, Type=%s, Amount=%.2f",
		userID, opType, amount)

	return nil
}

// Close закрывает Kafka producer
func (p *Producer) Close() error {
	if p.writer != nil {
		p.logger.Info("Closing Kafka producer")
		return p.writer.Close()
	}
	return nil
}
