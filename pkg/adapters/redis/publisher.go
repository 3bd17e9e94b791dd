// Package redis fans carousel changes out over Redis pub/sub so remote
// renderers can follow a carousel. Nothing is stored.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/rotator/internal/logging"
	"github.com/aretw0/rotator/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// DefaultChannel is the pub/sub channel used when none is configured.
const DefaultChannel = "rotator:changes"

// Message is the JSON payload published for every applied change.
type Message struct {
	Carousel string        `json:"carousel"`
	Change   domain.Change `json:"change"`
	SentAt   time.Time     `json:"sent_at"`
}

// Publisher implements ports.ChangePublisher using Redis PUBLISH.
type Publisher struct {
	client  *backend.Client
	channel string
	owned   bool
	timeout time.Duration
	buffer  int
	logger  *slog.Logger
	now     func() time.Time
}

type Option func(*Publisher)

// WithChannel sets the pub/sub channel.
func WithChannel(channel string) Option {
	return func(p *Publisher) {
		if channel != "" {
			p.channel = channel
		}
	}
}

// WithTimeout bounds each PUBLISH issued by Attach.
func WithTimeout(d time.Duration) Option {
	return func(p *Publisher) {
		p.timeout = d
	}
}

// WithBuffer sets how many changes Attach queues before dropping.
func WithBuffer(n int) Option {
	return func(p *Publisher) {
		if n > 0 {
			p.buffer = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// New creates a publisher with its own client. Close releases it.
func New(address, password string, db int, opts ...Option) *Publisher {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	p := NewFromClient(rdb, opts...)
	p.owned = true
	return p
}

// NewFromClient creates a publisher over an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Publisher {
	p := &Publisher{
		client:  client,
		channel: DefaultChannel,
		timeout: 2 * time.Second,
		buffer:  64,
		logger:  logging.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Channel returns the pub/sub channel in use.
func (p *Publisher) Channel() string {
	return p.channel
}

// Ping checks connectivity.
func (p *Publisher) Ping(ctx context.Context) error {
	if err := p.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Publish sends one change.
func (p *Publisher) Publish(ctx context.Context, carousel string, ch domain.Change) error {
	payload, err := json.Marshal(Message{Carousel: carousel, Change: ch, SentAt: p.now()})
	if err != nil {
		return fmt.Errorf("failed to marshal change: %w", err)
	}
	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("redis publish failed: %w", err)
	}
	return nil
}

// Notifier is anything that reports applied changes (e.g. *rotator.Controller).
type Notifier interface {
	OnChange(fn func(domain.Change)) func()
}

// Attach publishes every change of src in the background. Changes are queued
// so a slow Redis never blocks the controller; when the queue is full the
// change is dropped and logged. The returned function detaches and waits for
// the queue to drain.
func (p *Publisher) Attach(src Notifier, carousel string) func() {
	queue := make(chan domain.Change, p.buffer)
	var (
		mu     sync.Mutex
		closed bool
		wg     sync.WaitGroup
	)

	unsubscribe := src.OnChange(func(ch domain.Change) {
		mu.Lock()
		defer mu.Unlock()
		if closed {
			return
		}
		select {
		case queue <- ch:
		default:
			p.logger.Warn("redis queue full, dropping change", "carousel", carousel, "epoch", ch.Epoch)
		}
	})

	wg.Add(1)
	go func() {
		defer wg.Done()
		for ch := range queue {
			ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
			if err := p.Publish(ctx, carousel, ch); err != nil {
				p.logger.Error("publish failed", "carousel", carousel, "epoch", ch.Epoch, "err", err)
			}
			cancel()
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			unsubscribe()
			mu.Lock()
			closed = true
			close(queue)
			mu.Unlock()
			wg.Wait()
		})
	}
}

// Subscribe streams decoded messages until ctx is canceled. The subscription
// is confirmed before Subscribe returns, so no message published afterwards
// is missed.
func (p *Publisher) Subscribe(ctx context.Context) (<-chan Message, error) {
	ps := p.client.Subscribe(ctx, p.channel)
	if _, err := ps.Receive(ctx); err != nil {
		ps.Close()
		return nil, fmt.Errorf("redis subscribe failed: %w", err)
	}

	out := make(chan Message)
	go func() {
		defer close(out)
		defer ps.Close()
		msgs := ps.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case m, ok := <-msgs:
				if !ok {
					return
				}
				var msg Message
				if err := json.Unmarshal([]byte(m.Payload), &msg); err != nil {
					p.logger.Warn("ignoring malformed message", "channel", m.Channel, "err", err)
					continue
				}
				select {
				case out <- msg:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// Close releases the client if the publisher created it.
func (p *Publisher) Close() error {
	if !p.owned {
		return nil
	}
	return p.client.Close()
}
