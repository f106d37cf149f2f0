// Package service holds outbound integrations that sit beside the request
// path, currently the movie-viewed event publisher.
package service

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/movies-catalogue/internal/queue"
)

// Publisher sends MovieViewedEvents to a durable queue.  Each publish opens
// its own connection; views are rare enough that pooling is not worth the
// reconnect handling.
type Publisher struct {
	URL   string
	Queue string
	Log   *logrus.Entry
}

// PublishMovieViewed publishes ev as a persistent JSON message.  Errors are
// logged and returned; callers treat them as non-fatal.
func (p *Publisher) PublishMovieViewed(ctx context.Context, ev queue.MovieViewedEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	conn, err := amqp.Dial(p.URL)
	if err != nil {
		p.Log.WithError(err).Warn("rabbitmq: dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.Log.WithError(err).Warn("rabbitmq: channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		p.Queue, // name
		true,    // durable
		false,   // autoDelete
		false,   // exclusive
		false,   // noWait
		nil,     // args
	); err != nil {
		p.Log.WithError(err).Warn("rabbitmq: queue declare failed")
		return err
	}

	return ch.PublishWithContext(ctx,
		"",      // default exchange
		p.Queue, // routing key = queue name
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			MessageId:    ev.RequestID,
			Body:         body,
		},
	)
}
