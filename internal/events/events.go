// Package events publishes order lifecycle messages to a broker.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// RoutingKeyOrderPlaced is the topic routing key of OrderPlaced messages.
const RoutingKeyOrderPlaced = "order.placed"

// OrderLine is one item of a placed order.
type OrderLine struct {
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
}

// OrderPlaced is emitted after an order has been committed.
type OrderPlaced struct {
	OrderID    int64       `json:"order_id"`
	Login      string      `json:"login"`
	StoreID    int         `json:"store_id"`
	TotalCents int64       `json:"total_cents"`
	Lines      []OrderLine `json:"lines"`
	PlacedAt   time.Time   `json:"placed_at"`
}

// Publisher delivers order events.
type Publisher interface {
	PublishOrderPlaced(ctx context.Context, ev OrderPlaced) error
}

// Nop discards every event.
type Nop struct{}

func (Nop) PublishOrderPlaced(context.Context, OrderPlaced) error { return nil }

// channel is the part of *amqp.Channel the publisher uses.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPPublisher publishes persistent JSON messages to a durable topic exchange.
type AMQPPublisher struct {
	conn     *amqp.Connection
	ch       channel
	exchange string
	log      logrus.FieldLogger
}

// DialAMQP connects to url and declares exchange as a durable topic exchange.
func DialAMQP(url, exchange string, log logrus.FieldLogger) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}
	return &AMQPPublisher{conn: conn, ch: ch, exchange: exchange, log: log}, nil
}

// PublishOrderPlaced sends ev with routing key order.placed.
func (p *AMQPPublisher) PublishOrderPlaced(ctx context.Context, ev OrderPlaced) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}
	msg := amqp.Publishing{
		MessageId:    uuid.NewString(),
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		ContentType:  "application/json",
		Type:         RoutingKeyOrderPlaced,
		Body:         body,
	}
	if err := p.ch.PublishWithContext(ctx, p.exchange, RoutingKeyOrderPlaced, false, false, msg); err != nil {
		return fmt.Errorf("publish order %d: %w", ev.OrderID, err)
	}
	p.log.WithFields(logrus.Fields{"order_id": ev.OrderID, "message_id": msg.MessageId}).Debug("order event published")
	return nil
}

// Close releases the channel and connection.
func (p *AMQPPublisher) Close() error {
	if p == nil {
		return nil
	}
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
