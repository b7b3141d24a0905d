package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/formrelay/internal/platform/logging"
	"github.com/louisbranch/formrelay/internal/platform/requestctx"
	"github.com/louisbranch/formrelay/internal/services/form/storage"
	"github.com/nats-io/nats.go"
)

// NATSConfig holds NATS publisher configuration.
type NATSConfig struct {
	URL     string
	Subject string
	// Name identifies the connection on the NATS server.
	Name          string
	ReconnectWait time.Duration
	Timeout       time.Duration
}

// msgPublisher is the slice of *nats.Conn the publisher needs.
type msgPublisher interface {
	PublishMsg(msg *nats.Msg) error
	Close()
}

// NATSPublisher publishes accepted submissions as JSON on a NATS subject.
type NATSPublisher struct {
	conn    msgPublisher
	subject string
}

// NewNATSPublisher connects to cfg.URL.
func NewNATSPublisher(cfg NATSConfig, logger *logging.Logger) (*NATSPublisher, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, fmt.Errorf("nats url is required")
	}
	logger = logger.OrDefault()
	if cfg.Name == "" {
		cfg.Name = "formrelay-form"
	}
	if cfg.ReconnectWait <= 0 {
		cfg.ReconnectWait = 2 * time.Second
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}

	conn, err := nats.Connect(cfg.URL,
		nats.Name(cfg.Name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.Timeout(cfg.Timeout),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", logging.Error(err))
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("nats reconnected", logging.Addr(c.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}
	return newNATSPublisher(conn, cfg.Subject), nil
}

func newNATSPublisher(conn msgPublisher, subject string) *NATSPublisher {
	if strings.TrimSpace(subject) == "" {
		subject = DefaultSubject
	}
	return &NATSPublisher{conn: conn, subject: subject}
}

// PublishAccepted implements Publisher.
func (p *NATSPublisher) PublishAccepted(ctx context.Context, submission storage.Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(NewSubmissionAccepted(submission))
	if err != nil {
		return fmt.Errorf("marshal submission accepted: %w", err)
	}
	msg := nats.NewMsg(p.subject)
	msg.Data = data
	if reqID := requestctx.RequestIDFromContext(ctx); reqID != "" {
		msg.Header.Set(requestctx.HeaderRequestID, reqID)
	}
	if err := p.conn.PublishMsg(msg); err != nil {
		return fmt.Errorf("publish %s: %w", p.subject, err)
	}
	return nil
}

// Close implements Publisher.
func (p *NATSPublisher) Close() error {
	p.conn.Close()
	return nil
}
