package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// ViewLogFile is the file the consumer appends to inside its log directory.
const ViewLogFile = "views.log"

// ViewConsumer drains the movie-viewed queue into a log file.
type ViewConsumer struct {
	URL    string
	Queue  string
	LogDir string
	Log    *logrus.Entry
}

// Run connects to the broker and consumes until ctx is cancelled.  Lost
// connections are retried with exponential backoff capped at 30s.
func (vc *ViewConsumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(vc.URL)
		if err != nil {
			vc.Log.WithError(err).Warnf("view consumer: dial failed; retrying in %s", backoff)
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = vc.consume(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		vc.Log.WithError(err).Warn("view consumer: consume loop ended; reconnecting")
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func (vc *ViewConsumer) consume(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		vc.Log.WithError(err).Warn("view consumer: set QoS failed")
	}
	if _, err := ch.QueueDeclare(vc.Queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(vc.Queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := vc.HandleMessage(d.Body); err != nil {
				vc.Log.WithError(err).Warn("view consumer: rejecting message")
				_ = d.Nack(false, false) // no requeue, a bad body would loop forever
				continue
			}
			_ = d.Ack(false)
		}
	}
}

// HandleMessage decodes one MovieViewedEvent and appends it as a line to
// LogDir/views.log.
func (vc *ViewConsumer) HandleMessage(body []byte) error {
	var ev MovieViewedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.MovieID == "" {
		return errors.New("event without movie_id")
	}
	if err := os.MkdirAll(vc.LogDir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", vc.LogDir, err)
	}
	f, err := os.OpenFile(filepath.Join(vc.LogDir, ViewLogFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open view log: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(ev.LogLine()); err != nil {
		return fmt.Errorf("write view log: %w", err)
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
