// Package amqp publishes repository mutation events to a RabbitMQ exchange.
// The broker is optional; when no URL is configured the application simply
// runs without a publisher.
package amqp

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"tripbudget/internal/core"
)

type Client struct {
	conn         *amqp091.Connection
	channel      *amqp091.Channel
	exchangeName string
	queueName    string
}

func NewClient(url, exchangeName, queueName string) (*Client, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	client := &Client{
		conn:         conn,
		channel:      channel,
		exchangeName: exchangeName,
		queueName:    queueName,
	}

	if err := client.setup(); err != nil {
		client.Close()
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}

	return client, nil
}

func (c *Client) setup() error {
	err := c.channel.ExchangeDeclare(
		c.exchangeName,
		"direct",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	_, err = c.channel.QueueDeclare(
		c.queueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	err = c.channel.QueueBind(
		c.queueName,
		c.queueName, // routing key matches queue name for direct exchange
		c.exchangeName,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}

	return nil
}

func (c *Client) publish(ctx context.Context, msg *Message) error {
	body, err := msg.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = c.channel.PublishWithContext(
		ctx,
		c.exchangeName,
		c.queueName,
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	slog.DebugContext(ctx, "Published event",
		"type", msg.Type,
		"trip_id", msg.TripID,
		"expense_id", msg.ExpenseID,
		"exchange", c.exchangeName)

	return nil
}

// The methods below satisfy the repository's Events interface.

func (c *Client) TripCreated(ctx context.Context, t core.Trip) error {
	return c.publish(ctx, NewMessage(TypeTripCreated, t.ID, "", 0))
}

func (c *Client) TripUpdated(ctx context.Context, t core.Trip) error {
	return c.publish(ctx, NewMessage(TypeTripUpdated, t.ID, "", 0))
}

func (c *Client) TripDeleted(ctx context.Context, tripID string) error {
	return c.publish(ctx, NewMessage(TypeTripDeleted, tripID, "", 0))
}

func (c *Client) ExpenseAdded(ctx context.Context, e core.Expense) error {
	return c.publish(ctx, NewMessage(TypeExpenseAdded, e.TripID, e.ID, e.Amount.Cents))
}

func (c *Client) ExpenseDeleted(ctx context.Context, e core.Expense) error {
	return c.publish(ctx, NewMessage(TypeExpenseDeleted, e.TripID, e.ID, e.Amount.Cents))
}

func (c *Client) Close() error {
	var firstErr error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			firstErr = err
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
