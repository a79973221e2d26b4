// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"jobportal_backend/internal/feature/account/domain/entity"
	"jobportal_backend/internal/feature/account/usecase"
)

// CachingAccountRepository decorates an AccountRepository with a Redis
// read-through cache for lookups by ID. Lookups by email always hit the
// inner repository so uniqueness checks never see stale data.
type CachingAccountRepository struct {
	inner     usecase.AccountRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.AccountRepository = (*CachingAccountRepository)(nil)

// NewCachingAccountRepository decorates inner with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "accounts".
func NewCachingAccountRepository(rdb *redis.Client, ttl time.Duration, inner usecase.AccountRepository, namespace string) *CachingAccountRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "accounts"
	}
	return &CachingAccountRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Create passes through to the inner repository.
func (c *CachingAccountRepository) Create(ctx context.Context, a *entity.Account) error {
	return c.inner.Create(ctx, a)
}

// FindByEmail passes through to the inner repository.
func (c *CachingAccountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	return c.inner.FindByEmail(ctx, email)
}

// FindByID checks the cache first, then falls back to the inner repository.
func (c *CachingAccountRepository) FindByID(ctx context.Context, id string) (*entity.Account, error) {
	if c.rdb == nil {
		return c.inner.FindByID(ctx, id)
	}

	key := c.cacheKey(id)

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var a entity.Account
		if err := json.Unmarshal(b, &a); err == nil {
			return &a, nil
		}
		_ = c.rdb.Del(ctx, key).Err()
	}

	a, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// best effort
	if b, err := json.Marshal(a); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return a, nil
}

// Update writes through and evicts the cached entry. A stale write also
// evicts, since the cached copy is the likely source of the old version.
func (c *CachingAccountRepository) Update(ctx context.Context, a *entity.Account) error {
	err := c.inner.Update(ctx, a)
	if err != nil && !errors.Is(err, usecase.ErrStaleAccount) {
		return err
	}
	if c.rdb != nil {
		if delErr := c.rdb.Del(ctx, c.cacheKey(a.ID)).Err(); delErr != nil {
			// A stale entry expires after ttl.
			slog.Warn("failed to evict account cache", "error", delErr, "account_id", a.ID)
		}
	}
	return err
}

func (c *CachingAccountRepository) cacheKey(id string) string {
	return fmt.Sprintf("%s:id:%s", c.namespace, safe(id))
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
