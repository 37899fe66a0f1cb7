package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	domain "github.com/YaRavva/Fiction-Library-sub007/internal/domain/library"
	"github.com/streadway/amqp"
)

const RoutingKeyItemFilled = "library.item_filled"

type publisher interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type ItemFilledEvent struct {
	Job      string    `json:"job"`
	ItemID   string    `json:"item_id"`
	Value    string    `json:"value"`
	FilledAt time.Time `json:"filled_at"`
}

// Notifier publishes an event to the exchange each time a sync job fills an
// item.
type Notifier struct {
	ch       publisher
	exchange string
	now      func() time.Time
}

func NewNotifier(ch publisher, exchange string) *Notifier {
	return &Notifier{ch: ch, exchange: exchange, now: time.Now}
}

func (n *Notifier) ItemFilled(ctx context.Context, job string, item domain.WorkItem, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := json.Marshal(ItemFilledEvent{
		Job:      job,
		ItemID:   item.ID,
		Value:    value,
		FilledAt: n.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal item filled event: %w", err)
	}

	if err := n.ch.Publish(n.exchange, RoutingKeyItemFilled, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	}); err != nil {
		return fmt.Errorf("failed to publish message to RabbitMQ: %w", err)
	}
	return nil
}
