package app

import (
	"database/sql"
	"time"

	"resto-admin/internal/assignment"
	"resto-admin/internal/audit"
	"resto-admin/internal/auth"
	"resto-admin/internal/catalog"
	"resto-admin/internal/config"
	"resto-admin/internal/feature"
	"resto-admin/internal/messaging/kafka"
	"resto-admin/internal/middleware"
	"resto-admin/internal/permission"
	"resto-admin/internal/platform"
	"resto-admin/internal/rbac"
	"resto-admin/internal/rbac/infra"
	"resto-admin/internal/role"
	"resto-admin/internal/session"
	"resto-admin/internal/shared/cache"
	"resto-admin/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

const (
	idempotencyTTL = 24 * time.Hour
	userRPS        = 20
	userBurst      = 40
)

type backends struct {
	sqlDB  *sql.DB
	gormDB *gorm.DB
	rdb    *redis.Client
}

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	deps backends,
	logger *zap.Logger,
) error {
	// --- Infrastructure adapters ---
	api := platform.NewClient(cfg.Platform, logger)
	sharedCache := cache.New(deps.rdb)
	sessions := session.NewRedisStore(deps.rdb)

	var outboxRepo kafka.OutboxRepository
	if cfg.Kafka.Broker != "" {
		outboxRepo = kafka.NewOutboxRepository(deps.sqlDB)
	}

	// --- Repositories ---
	auditRepo := audit.NewRepository(deps.gormDB)
	authRepo := auth.NewRepository(api)
	featureRepo := feature.NewRepository(api)
	permissionRepo := permission.NewRepository(api)
	roleRepo := role.NewRepository(api)
	userRepo := user.NewRepository(api)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer)

	// --- Services ---
	auditService := audit.NewService(deps.sqlDB, auditRepo, outboxRepo, cfg.Kafka.AuditTopic)
	authService := auth.NewService(authRepo, sessions, auth.Config{
		SessionTTL:  cfg.Session.TTL,
		RememberTTL: cfg.Session.RememberTTL,
		RefreshSkew: cfg.Session.RefreshSkew,
		PlatformURL: cfg.Platform.BaseURL,
	})
	featureService := feature.NewService(featureRepo, sharedCache, cfg.Cache.TTL, auditService)
	permissionService := permission.NewService(permissionRepo, sharedCache, permission.Config{
		TTL:         cfg.Cache.TTL,
		TemplateTTL: cfg.Cache.TemplateTTL,
	}, auditService)
	roleService := role.NewService(roleRepo, sharedCache, cfg.Cache.TTL, auditService)
	userService := user.NewService(userRepo, auditService)
	catalogService := catalog.NewService(api, sharedCache, cfg.Cache.TTL, auditService)
	sources := assignment.NewSources(featureService, permissionService, roleService, userService)
	assignmentService := assignment.NewService(sources, auditService)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, auth.NewSealer(rememberSecret(cfg.Session.Secret, logger)), auth.CookieConfig{
		Name:        cfg.Session.CookieName,
		Secure:      cfg.Session.Secure,
		RememberTTL: cfg.Session.RememberTTL,
	}, logger)
	assignmentHandler := assignment.NewHandler(assignmentService, logger)
	auditHandler := audit.NewHandler(auditService, logger)
	catalogHandler := catalog.NewHandler(catalogService, logger)
	featureHandler := feature.NewHandler(featureService, logger)
	permissionHandler := permission.NewHandler(permissionService, logger)
	rbacHandler := rbac.NewHandler(rbacService)
	roleHandler := role.NewHandler(roleService, logger)
	userHandler := user.NewHandler(userService, logger)

	// --- Middleware ---
	authenticated := middleware.AuthMiddleware(sessions, authService, middleware.SessionTTL{
		Default:  cfg.Session.TTL,
		Remember: cfg.Session.RememberTTL,
	}, cfg.Session.CookieName)
	loginLimiter := middleware.RateLimitByIP(rate.Limit(cfg.Rate.LoginRPS), cfg.Rate.LoginBurst)
	idempotency := middleware.Idempotency(deps.rdb, idempotencyTTL)

	// --- Routes Registration ---
	v1 := router.Group("/api/v1")
	auth.RegisterRoutes(v1, authHandler, authenticated, loginLimiter)

	protected := v1.Group("", authenticated, middleware.RateLimitByUser(userRPS, userBurst))
	{
		assignment.RegisterRoutes(protected, assignmentHandler, sources, rbacService)
		audit.RegisterRoutes(protected, auditHandler, rbacService)
		catalog.RegisterRoutes(protected, catalogHandler, rbacService)
		feature.RegisterRoutes(protected, featureHandler, rbacService)
		permission.RegisterRoutes(protected, permissionHandler, rbacService, idempotency)
		role.RegisterRoutes(protected, roleHandler, rbacService)
		user.RegisterRoutes(protected, userHandler, rbacService)
		rbac.RegisterRoutes(protected, rbacHandler)
	}

	return nil
}

// rememberSecret falls back to a per-process key, so remembered usernames do not survive a restart.
func rememberSecret(secret string, logger *zap.Logger) string {
	if secret != "" {
		return secret
	}
	logger.Warn("session.secret not set; remember-me cookies are valid for this process only")
	return uuid.NewString() + uuid.NewString()
}
