package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"yatra/pkg/logger"
)

// BusMessage carries an encoded frame to every instance holding clients
// in Room.
type BusMessage struct {
	Room  string          `json:"room"`
	Frame json.RawMessage `json:"frame"`
}

// Bus fans room broadcasts out across instances.
type Bus interface {
	Publish(ctx context.Context, msg BusMessage) error
	StartForwarder(ctx context.Context, onMsg func(m BusMessage)) error
	Close() error
}

type localBus struct {
	mu       sync.RWMutex
	handlers []func(BusMessage)
}

// NewLocalBus delivers in-process only, for single-instance deployments.
func NewLocalBus() Bus {
	return &localBus{}
}

func (b *localBus) Publish(_ context.Context, msg BusMessage) error {
	b.mu.RLock()
	handlers := append(([]func(BusMessage))(nil), b.handlers...)
	b.mu.RUnlock()
	for _, h := range handlers {
		h(msg)
	}
	return nil
}

func (b *localBus) StartForwarder(_ context.Context, onMsg func(m BusMessage)) error {
	b.mu.Lock()
	b.handlers = append(b.handlers, onMsg)
	b.mu.Unlock()
	return nil
}

func (b *localBus) Close() error { return nil }

type redisBus struct {
	log     *logger.Logger
	rdb     *redis.Client
	channel string
}

func NewRedisBus(rdb *redis.Client, channel string, log *logger.Logger) Bus {
	if channel == "" {
		channel = "chat"
	}
	return &redisBus{log: log.With("service", "RedisChatBus"), rdb: rdb, channel: channel}
}

func (b *redisBus) Publish(ctx context.Context, msg BusMessage) error {
	raw, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, b.channel, raw).Err()
}

func (b *redisBus) StartForwarder(ctx context.Context, onMsg func(m BusMessage)) error {
	sub := b.rdb.Subscribe(ctx, b.channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("redis subscribe: %w", err)
	}

	go func() {
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				_ = sub.Close()
				return
			case m, ok := <-ch:
				if !ok || m == nil {
					return
				}
				var msg BusMessage
				if err := json.Unmarshal([]byte(m.Payload), &msg); err != nil {
					b.log.Warn("bad chat bus payload", "error", err)
					continue
				}
				onMsg(msg)
			}
		}
	}()
	return nil
}

func (b *redisBus) Close() error {
	if b == nil || b.rdb == nil {
		return nil
	}
	return b.rdb.Close()
}
