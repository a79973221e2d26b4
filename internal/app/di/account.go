// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"jobportal_backend/internal/feature/account/adapters"
	"jobportal_backend/internal/feature/account/usecase"
	"jobportal_backend/internal/platform/cache"
)

// NewAccountRepository creates the AccountRepository. With Redis available
// the GORM store is wrapped in a read-through cache; otherwise it is used directly.
func NewAccountRepository(rdb *redis.Client, db *gorm.DB, ttl time.Duration) usecase.AccountRepository {
	repo := adapters.NewAccountRepository(db)
	if rdb == nil {
		return repo
	}
	return cache.NewCachingAccountRepository(rdb, ttl, repo, "accounts")
}
