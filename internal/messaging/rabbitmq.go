package messaging

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Additional-Code/orders/internal/config"
)

// rabbitClient publishes to and consumes from a single durable queue on the
// default exchange.
type rabbitClient struct {
	cfg    config.RabbitMQ
	logger *zap.Logger

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func newRabbitClient(lc fx.Lifecycle, cfg config.RabbitMQ, logger *zap.Logger) Client {
	client := &rabbitClient{cfg: cfg, logger: logger}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("closing rabbitmq client")
			return client.close()
		},
	})

	return client
}

func (r *rabbitClient) Topic() string { return r.cfg.Queue }

func (r *rabbitClient) Publish(ctx context.Context, key []byte, value []byte) error {
	ch, err := r.publishChannel()
	if err != nil {
		return err
	}

	return ch.PublishWithContext(ctx, "", r.cfg.Queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    string(key),
		Timestamp:    time.Now().UTC(),
		Body:         value,
	})
}

// publishChannel returns the shared publishing channel, redialing when the
// broker dropped the previous one.
func (r *rabbitClient) publishChannel() (*amqp.Channel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.ch != nil && !r.ch.IsClosed() {
		return r.ch, nil
	}
	if r.conn == nil || r.conn.IsClosed() {
		conn, err := amqp.Dial(r.cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("rabbitmq dial: %w", err)
		}
		r.conn = conn
	}
	ch, err := r.openChannel(r.conn)
	if err != nil {
		return nil, err
	}
	r.ch = ch
	return ch, nil
}

func (r *rabbitClient) openChannel(conn *amqp.Connection) (*amqp.Channel, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}
	if _, err := ch.QueueDeclare(r.cfg.Queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("rabbitmq queue declare: %w", err)
	}
	return ch, nil
}

// Consume runs on its own connection and reconnects until ctx ends.
func (r *rabbitClient) Consume(ctx context.Context, handler Handler) error {
	backoff := time.Second
	for {
		err := r.consumeOnce(ctx, handler)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		r.logger.Warn("rabbitmq consumer stopped; reconnecting", zap.Error(err), zap.Duration("backoff", backoff))
		if !sleepCtx(ctx, backoff) {
			return ctx.Err()
		}
		if backoff < 30*time.Second {
			backoff *= 2
		}
	}
}

func (r *rabbitClient) consumeOnce(ctx context.Context, handler Handler) error {
	conn, err := amqp.Dial(r.cfg.URL)
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := r.openChannel(conn)
	if err != nil {
		return err
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(r.cfg.Prefetch, 0, false); err != nil {
		r.logger.Warn("rabbitmq qos failed", zap.Error(err))
	}

	deliveries, err := ch.ConsumeWithContext(ctx, r.cfg.Queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("rabbitmq consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			msg := Message{
				Topic: r.cfg.Queue,
				Key:   []byte(d.MessageId),
				Value: d.Body,
				Time:  d.Timestamp,
			}
			if len(d.Headers) > 0 {
				msg.Headers = make(map[string]string, len(d.Headers))
				for k, v := range d.Headers {
					msg.Headers[k] = fmt.Sprint(v)
				}
			}
			if err := handler(ctx, msg); err != nil {
				r.logger.Error("message handler failed", zap.Error(err), zap.String("message_id", d.MessageId))
				// Drop rather than requeue so a poison message cannot spin.
				_ = d.Nack(false, false)
				continue
			}
			if err := d.Ack(false); err != nil {
				r.logger.Warn("rabbitmq ack failed", zap.Error(err))
			}
		}
	}
}

func (r *rabbitClient) close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var err error
	if r.ch != nil {
		err = errors.Join(err, ignoreClosed(r.ch.Close()))
		r.ch = nil
	}
	if r.conn != nil {
		err = errors.Join(err, ignoreClosed(r.conn.Close()))
		r.conn = nil
	}
	return err
}

func ignoreClosed(err error) error {
	if errors.Is(err, amqp.ErrClosed) {
		return nil
	}
	return err
}
