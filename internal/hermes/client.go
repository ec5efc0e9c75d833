package hermes

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// Client is the session transport: JSON payloads over subjects.
type Client interface {
	Publish(subject string, data interface{}) error
	Subscribe(subject string, handler func(subject string, data []byte)) error
	Close()
}

// Options tunes the NATS connection.
type Options struct {
	Name          string
	MaxReconnects int
	ReconnectWait time.Duration
}

type NATSClient struct {
	conn   *nats.Conn
	js     jetstream.JetStream
	logger *slog.Logger

	mu   sync.Mutex
	subs []*nats.Subscription
}

// NewNATSClient connects to url and makes sure the chart event stream exists.
// A missing stream is logged, not fatal: plain pub/sub still works.
func NewNATSClient(ctx context.Context, url string, opts Options, logger *slog.Logger) (*NATSClient, error) {
	if opts.MaxReconnects == 0 {
		opts.MaxReconnects = 60
	}
	if opts.ReconnectWait == 0 {
		opts.ReconnectWait = 2 * time.Second
	}
	nc, err := nats.Connect(url,
		nats.Name(opts.Name),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(opts.MaxReconnects),
		nats.ReconnectWait(opts.ReconnectWait),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("nats reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	c := &NATSClient{conn: nc, js: js, logger: logger}
	if err := c.ensureStream(ctx); err != nil {
		logger.Warn("failed to ensure stream", "stream", StreamName, "error", err)
	}
	return c, nil
}

func (c *NATSClient) ensureStream(ctx context.Context) error {
	maxAge, err := time.ParseDuration(StreamMaxAge)
	if err != nil {
		return fmt.Errorf("stream max age: %w", err)
	}
	_, err = c.js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:        StreamName,
		Description: "ValueCharts chart mutations",
		Subjects:    []string{SubjectChartPrefix + ">"},
		MaxAge:      maxAge,
	})
	return err
}

func (c *NATSClient) Publish(subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode %s: %w", subject, err)
	}
	return c.conn.Publish(subject, payload)
}

func (c *NATSClient) Subscribe(subject string, handler func(string, []byte)) error {
	sub, err := c.conn.Subscribe(subject, func(msg *nats.Msg) {
		handler(msg.Subject, msg.Data)
	})
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", subject, err)
	}
	c.mu.Lock()
	c.subs = append(c.subs, sub)
	c.mu.Unlock()
	c.logger.Debug("subscribed", "subject", subject)
	return nil
}

// Close unsubscribes everything and drains the connection.
func (c *NATSClient) Close() {
	c.mu.Lock()
	for _, sub := range c.subs {
		_ = sub.Unsubscribe()
	}
	c.subs = nil
	c.mu.Unlock()
	if err := c.conn.Drain(); err != nil {
		c.conn.Close()
	}
}

// DecodeChartEvent parses and validates a chart event payload.
func DecodeChartEvent(data []byte) (ChartEvent, error) {
	var evt ChartEvent
	if err := json.Unmarshal(data, &evt); err != nil {
		return ChartEvent{}, fmt.Errorf("decode chart event: %w", err)
	}
	if err := evt.Validate(); err != nil {
		return ChartEvent{}, err
	}
	return evt, nil
}
