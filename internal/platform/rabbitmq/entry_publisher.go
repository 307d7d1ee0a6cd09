package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"contentpilot/internal/model"
)

type EntryPublisher struct {
	conn      *amqp.Connection
	queueName string
}

func NewEntryPublisher(conn *amqp.Connection, queueName string) *EntryPublisher {
	return &EntryPublisher{
		conn:      conn,
		queueName: queueName,
	}
}

func (p *EntryPublisher) Publish(ctx context.Context, entry model.ConversationEntry) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("open rabbitmq channel failed: %w", err)
	}
	defer ch.Close()

	_, err = ch.QueueDeclare(
		p.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare queue failed: %w", err)
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal entry payload failed: %w", err)
	}

	if err := ch.PublishWithContext(
		ctx,
		"",
		p.queueName,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         payload,
			DeliveryMode: amqp.Persistent,
		},
	); err != nil {
		return fmt.Errorf("publish entry failed: %w", err)
	}
	return nil
}
