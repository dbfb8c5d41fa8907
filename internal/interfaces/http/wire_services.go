package http

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	ticketUsecases "github.com/dggcrm/dggcrm/internal/application/ticket/usecases"
	"github.com/dggcrm/dggcrm/internal/application/user/usecases"
	"github.com/dggcrm/dggcrm/internal/infrastructure/adapters"
	"github.com/dggcrm/dggcrm/internal/infrastructure/auth"
	"github.com/dggcrm/dggcrm/internal/infrastructure/cache"
	"github.com/dggcrm/dggcrm/internal/infrastructure/config"
	"github.com/dggcrm/dggcrm/internal/infrastructure/email"
	"github.com/dggcrm/dggcrm/internal/infrastructure/permission"
	"github.com/dggcrm/dggcrm/internal/infrastructure/ratelimit"
	"github.com/dggcrm/dggcrm/internal/shared/logger"
	"github.com/dggcrm/dggcrm/internal/shared/services/markdown"
)

// services holds the infrastructure services shared by use cases and
// middleware.
type services struct {
	redis *redis.Client

	jwtService   *auth.JWTService
	oauthManager *auth.OAuthServiceManager
	stateStore   usecases.StateStore
	rateLimiter  ratelimit.RateLimiter
	enforcer     *permission.Enforcer
	notifier     ticketUsecases.AssignmentNotifier
	markdown     markdown.MarkdownService
}

func newServices(ctx context.Context, database *gorm.DB, repos *repositories, cfg *config.Config, log logger.Interface) (*services, error) {
	s := &services{
		jwtService:   auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes, cfg.Auth.JWT.RefreshExpDays),
		oauthManager: auth.NewOAuthServiceManager(cfg.OAuth, cfg.Server.BaseURL, log),
		markdown:     markdown.NewMarkdownService(),
	}

	// Redis backs OAuth state and rate limiting when available. Without it
	// both fall back to process memory, which only works for one instance.
	s.redis = initRedis(ctx, cfg, log)
	if s.redis != nil {
		s.stateStore = cache.NewRedisStateStore(s.redis, cache.OAuthStatePrefix, cache.OAuthStateTTL)
		s.rateLimiter = ratelimit.NewRedisRateLimiter(s.redis)
	} else {
		s.stateStore = cache.NewMemoryStateStore(cache.OAuthStateTTL)
		s.rateLimiter = ratelimit.NewMemoryRateLimiter()
	}

	if cfg.Email.Enabled {
		s.notifier = email.NewSMTPEmailService(email.SMTPConfigFrom(cfg.Email, cfg.Server.FrontendURL))
		log.Infow("assignment emails enabled", "smtp_host", cfg.Email.SMTPHost)
	} else {
		s.notifier = email.DisabledNotifier{}
	}

	enforcer, err := permission.NewEnforcer(database, cfg.Permission.ModelPath, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create permission enforcer: %w", err)
	}
	if err := enforcer.InitRolePolicies(); err != nil {
		return nil, fmt.Errorf("failed to initialize role policies: %w", err)
	}
	if err := enforcer.SyncUserRoles(ctx, adapters.NewUserRoleSourceAdapter(repos.userRepo)); err != nil {
		return nil, fmt.Errorf("failed to sync user roles: %w", err)
	}
	s.enforcer = enforcer

	return s, nil
}

// initRedis connects to Redis when it is enabled. A failed ping is logged
// and treated as Redis being unavailable.
func initRedis(ctx context.Context, cfg *config.Config, log logger.Interface) *redis.Client {
	if !cfg.Redis.Enabled {
		log.Infow("redis disabled, using in-memory state store and rate limiter")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warnw("failed to connect to redis, falling back to in-memory stores",
			"addr", cfg.Redis.GetAddr(),
			"error", err)
		_ = client.Close()
		return nil
	}

	log.Infow("redis connection established successfully", "addr", cfg.Redis.GetAddr())
	return client
}
