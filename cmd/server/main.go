package main

import (
	"context"
	"errors"
	"log"
	"log/slog"

	redisv9 "github.com/redis/go-redis/v9"

	"jobportal_backend/internal/app/config"
	"jobportal_backend/internal/app/di"
	"jobportal_backend/internal/app/router"
	accounthandler "jobportal_backend/internal/feature/account/transport/handler"
	accountusecase "jobportal_backend/internal/feature/account/usecase"
	infradb "jobportal_backend/internal/platform/db"
	platformhandler "jobportal_backend/internal/platform/http/handler"
	jwtmw "jobportal_backend/internal/platform/jwt"
	"jobportal_backend/internal/platform/password"
	infraredis "jobportal_backend/internal/platform/redis"
)

func main() {
	ctx := context.Background()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	// db
	db, err := infradb.OpenDB(cfg.DB)
	if err != nil {
		log.Fatal(err)
	}
	if cfg.RunMigrations {
		if err := infradb.Migrate(db); err != nil {
			log.Fatal(err)
		}
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal(err)
	}

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(ctx, cfg.Redis); err != nil {
		if errors.Is(err, infraredis.ErrNotConfigured) {
			slog.Info("Redis not configured. Running without cache.")
		} else {
			slog.Warn("Redis unavailable. Running without cache.", "error", err)
		}
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
	}

	// Media
	mediaStore, err := di.NewMediaStore(ctx, cfg.Media)
	if err != nil {
		log.Fatal(err)
	}

	// Repository
	accountRepo := di.NewAccountRepository(rdb, db, cfg.Redis.CacheTTL)

	// Usecase
	tokens := jwtmw.NewGenerator(cfg.JWTSecret, cfg.TokenTTL)
	accountUC := accountusecase.NewAccountUsecase(accountRepo, password.NewBcryptHasher(cfg.PasswordCost), tokens, mediaStore)

	// Handler
	accountH := accounthandler.NewAccountHandler(accountUC, accounthandler.CookieConfig{
		Name:   cfg.CookieName,
		MaxAge: cfg.TokenTTL,
		Secure: cfg.CookieSecure,
	})
	checks := map[string]platformhandler.CheckFunc{"database": sqlDB.PingContext}
	if rdb != nil {
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}
	healthH := platformhandler.NewHealthHandler(checks, 0)

	// Router
	r := router.NewRouter(cfg, accountH, healthH, jwtmw.AuthRequired(tokens, cfg.CookieName))

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
