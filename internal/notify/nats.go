package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/FlorentLa/obsidian-whisper/internal/logger"
	"github.com/nats-io/nats.go"
)

type natsPublisher struct {
	conn    *nats.Conn
	subject string
	logger  logger.Logger
}

// NewNATS connects to url and publishes events on subject. The connection
// keeps retrying in the background when the server is not up yet.
func NewNATS(ctx context.Context, url, token, subject string, log logger.Logger) (Publisher, error) {
	opts := []nats.Option{
		nats.Name("obsidian-whisper"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(60),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn(ctx, "NATS disconnected: %v", err)
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			log.Info(ctx, "NATS reconnected")
		}),
	}
	if token != "" {
		opts = append(opts, nats.Token(token))
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	return &natsPublisher{conn: nc, subject: subject, logger: log}, nil
}

func (p *natsPublisher) Publish(ctx context.Context, event RunCompleted) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := p.conn.Publish(p.subject, payload); err != nil {
		return fmt.Errorf("publish %s: %w", p.subject, err)
	}
	p.logger.Debug(ctx, "Published run %s on %s", event.RunID, p.subject)
	return nil
}

// Close flushes pending events before closing the connection.
func (p *natsPublisher) Close() {
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
	}
}
