package support

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"yatra/pkg/memcache"
	"yatra/pkg/utils"
)

// ConversationTTL bounds how long an idle session keeps its context.
const ConversationTTL = 2 * time.Hour

// ConversationStore keeps the per-session context handed to the chat model.
type ConversationStore interface {
	Get(ctx context.Context, sessionID string) (utils.ChatContext, bool, error)
	Set(ctx context.Context, sessionID string, cc utils.ChatContext) error
	Delete(ctx context.Context, sessionID string) error
}

type memoryConversationStore struct {
	store *memcache.TTLStore[utils.ChatContext]
	ttl   time.Duration
}

func NewMemoryConversationStore(ttl time.Duration) ConversationStore {
	return &memoryConversationStore{store: memcache.NewTTLStore[utils.ChatContext](), ttl: ttl}
}

func (m *memoryConversationStore) Get(_ context.Context, sessionID string) (utils.ChatContext, bool, error) {
	cc, ok := m.store.Get(sessionID)
	return cc, ok, nil
}

func (m *memoryConversationStore) Set(_ context.Context, sessionID string, cc utils.ChatContext) error {
	m.store.Set(sessionID, cc, m.ttl)
	return nil
}

func (m *memoryConversationStore) Delete(_ context.Context, sessionID string) error {
	m.store.Delete(sessionID)
	return nil
}

type redisConversationStore struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisConversationStore shares conversation context across instances.
func NewRedisConversationStore(rdb *redis.Client, ttl time.Duration) ConversationStore {
	return &redisConversationStore{rdb: rdb, prefix: "chat:ctx:", ttl: ttl}
}

func (r *redisConversationStore) Get(ctx context.Context, sessionID string) (utils.ChatContext, bool, error) {
	var cc utils.ChatContext
	raw, err := r.rdb.Get(ctx, r.prefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return cc, false, nil
	}
	if err != nil {
		return cc, false, err
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		return cc, false, err
	}
	return cc, true, nil
}

func (r *redisConversationStore) Set(ctx context.Context, sessionID string, cc utils.ChatContext) error {
	raw, err := json.Marshal(cc)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, r.prefix+sessionID, raw, r.ttl).Err()
}

func (r *redisConversationStore) Delete(ctx context.Context, sessionID string) error {
	return r.rdb.Del(ctx, r.prefix+sessionID).Err()
}
