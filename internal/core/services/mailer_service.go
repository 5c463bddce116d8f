package services

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/velorashop/velora_backend/internal/core/domain"
	portssvc "github.com/velorashop/velora_backend/internal/core/ports/services"
)

// EmailQueueName is the durable queue the external mail worker consumes.
const EmailQueueName = "email.outbound"

// mailerService publishes email jobs to RabbitMQ. Delivery, templating, and
// retry are the mail worker's problem; the API only enqueues.
type mailerService struct {
	channel *amqp.Channel
}

// NewMailerService declares the outbound email queue and returns the
// publishing service.
func NewMailerService(conn *amqp.Connection) (portssvc.MailerSvc, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open amqp channel: %w", err)
	}
	_, err = ch.QueueDeclare(
		EmailQueueName,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to declare email queue: %w", err)
	}
	return &mailerService{channel: ch}, nil
}

func (s *mailerService) Send(ctx context.Context, job domain.EmailJob) error {
	body, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to encode email job: %w", err)
	}
	err = s.channel.PublishWithContext(ctx,
		"",             // default exchange
		EmailQueueName, // routing key
		false,          // mandatory
		false,          // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish email job: %w", err)
	}
	return nil
}
