package results

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
)

// Cache keeps page state in a fiber.Storage, one entry per session and key.
// Requests write only the entries they change, so a slow request finishing
// after a newer submission cannot put an older result set back.
type Cache struct {
	storage fiber.Storage
	ttl     time.Duration
}

// NewCache creates a cache whose entries expire ttl after they were written.
func NewCache(storage fiber.Storage, ttl time.Duration) *Cache {
	return &Cache{storage: storage, ttl: ttl}
}

// Session returns the page state of the session with the given ID.
func (c *Cache) Session(ctx context.Context, id string) Session {
	return &cachedSession{cache: c, ctx: ctx, prefix: "pathways:" + id + ":"}
}

type cachedSession struct {
	cache  *Cache
	ctx    context.Context
	prefix string
}

func (s *cachedSession) Get(key string) (string, error) {
	raw, err := s.cache.storage.GetWithContext(s.ctx, s.prefix+key)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", key, err)
	}
	return string(raw), nil
}

func (s *cachedSession) Set(key, value string) error {
	if value == "" {
		return s.Delete(key)
	}
	if err := s.cache.storage.SetWithContext(s.ctx, s.prefix+key, []byte(value), s.cache.ttl); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (s *cachedSession) Delete(key string) error {
	if err := s.cache.storage.DeleteWithContext(s.ctx, s.prefix+key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
