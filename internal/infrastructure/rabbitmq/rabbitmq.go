package rabbitmq

import (
	"fmt"

	"github.com/streadway/amqp"
)

func SetupRabbitMQ(url, exchange string) (*amqp.Channel, *amqp.Connection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("failed to open RabbitMQ channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}

	return ch, conn, nil
}

func CloseRabbitMQ(ch *amqp.Channel, conn *amqp.Connection) error {
	var errs []error

	if err := ch.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing RabbitMQ channel: %w", err))
	}

	if err := conn.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing RabbitMQ connection: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors occurred during RabbitMQ shutdown: %v", errs)
	}

	return nil
}
