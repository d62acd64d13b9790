package app

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	// Domains
	"github.com/orghub/server/internal/domain/invitation"
	"github.com/orghub/server/internal/domain/organization"

	// Inbound adapters
	orghttp "github.com/orghub/server/internal/adapter/inbound/http/organization"

	// Ports
	"github.com/orghub/server/internal/port/inbound"
	"github.com/orghub/server/internal/port/outbound"

	// Outbound adapters
	jwtadapter "github.com/orghub/server/internal/adapter/outbound/jwt"
	"github.com/orghub/server/internal/adapter/outbound/notification"
	"github.com/orghub/server/internal/adapter/outbound/postgres"
	redisadapter "github.com/orghub/server/internal/adapter/outbound/redis"

	// Shared infrastructure
	"github.com/orghub/server/internal/shared/cache"
	"github.com/orghub/server/internal/shared/config"
	"github.com/orghub/server/internal/shared/database"
	"github.com/orghub/server/internal/shared/logger"

	// Utils
	"github.com/orghub/server/internal/utils/metrics"
)

// ===== Infrastructure Providers =====

// InfraSet provides infrastructure dependencies.
var InfraSet = wire.NewSet(
	ProvideLogger,
	ProvideDatabase,
	ProvideRedisClient,
	ProvideRateLimiter,
	ProvideRegistry,
	ProvideMetrics,
	ProvideTokenValidator,
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) *zap.Logger {
	return logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
}

// ProvideDatabase opens the database and migrates it when configured to.
func ProvideDatabase(cfg *config.Config, log *zap.Logger) (*gorm.DB, func(), error) {
	db, err := database.New(&cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := database.Close(db); err != nil {
			log.Warn("close database", zap.Error(err))
		}
	}

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			cleanup()
			return nil, nil, err
		}
	}
	return db, cleanup, nil
}

// ProvideRedisClient creates a Redis client. Redis is optional; failures are logged.
func ProvideRedisClient(cfg *config.Config, log *zap.Logger) (goredis.UniversalClient, func()) {
	client, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Warn("Redis connection failed, continuing without rate limiting", zap.Error(err))
		return nil, func() {}
	}
	return client, func() { _ = cache.Close(client) }
}

// ProvideRateLimiter creates a rate limiter, or nil when disabled or Redis is absent.
func ProvideRateLimiter(cfg *config.Config, redis goredis.UniversalClient) outbound.RateLimiterPort {
	if !cfg.RateLimit.Enabled || redis == nil {
		return nil
	}
	return redisadapter.NewRateLimiter(redis)
}

// ProvideRegistry creates the Prometheus registry served on /metrics.
func ProvideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// ProvideMetrics creates the metrics instance, or nil when metrics are disabled.
func ProvideMetrics(cfg *config.Config, reg *prometheus.Registry) *metrics.Metrics {
	if !cfg.Metrics.Enabled {
		return nil
	}
	return metrics.New(cfg.Metrics.Namespace, reg)
}

// ProvideTokenValidator creates the access token validator.
func ProvideTokenValidator(cfg *config.Config) outbound.TokenValidatorPort {
	return jwtadapter.NewValidator(&jwtadapter.Config{
		Secret: cfg.Auth.JWTSecret,
		Issuer: cfg.Auth.Issuer,
	})
}

// ===== Store Providers =====

// StoreSet binds the database adapters to their ports.
var StoreSet = wire.NewSet(
	postgres.NewOrganizationAdapter,
	postgres.NewMembershipAdapter,
	postgres.NewInvitationAdapter,
	postgres.NewAuditLogAdapter,
	postgres.NewUserDirectoryAdapter,
	postgres.NewTransactionAdapter,
	wire.Bind(new(outbound.OrganizationDatabasePort), new(*postgres.OrganizationAdapter)),
	wire.Bind(new(outbound.MembershipDatabasePort), new(*postgres.MembershipAdapter)),
	wire.Bind(new(outbound.InvitationDatabasePort), new(*postgres.InvitationAdapter)),
	wire.Bind(new(outbound.AuditLogDatabasePort), new(*postgres.AuditLogAdapter)),
	wire.Bind(new(outbound.UserDirectoryPort), new(*postgres.UserDirectoryAdapter)),
	wire.Bind(new(outbound.TransactionPort), new(*postgres.TransactionAdapter)),
)

// ===== Notification Providers =====

// NotificationSet provides the email sender.
var NotificationSet = wire.NewSet(
	ProvideNotifier,
)

// ProvideNotifier builds the sender chain: SMTP (or log-only without a host),
// guarded by a circuit breaker and counted by metrics.
func ProvideNotifier(cfg *config.Config, m *metrics.Metrics, log *zap.Logger) outbound.NotificationPort {
	var sender outbound.NotificationPort
	if cfg.Email.SMTPHost != "" {
		sender = notification.NewSMTPSender(&notification.SMTPConfig{
			Host:             cfg.Email.SMTPHost,
			Port:             cfg.Email.SMTPPort,
			User:             cfg.Email.SMTPUser,
			Password:         cfg.Email.SMTPPassword,
			FromAddress:      cfg.Email.FromAddress,
			FromName:         cfg.Email.FromName,
			FrontendURL:      cfg.Email.FrontendURL,
			InvitationExpiry: cfg.Organization.InvitationExpiry,
		}, log)
	} else {
		log.Info("SMTP host not configured, emails will be logged")
		sender = notification.NewLogSender(cfg.Email.FrontendURL, log)
	}

	guarded := notification.NewBreakerSender(sender, notification.BreakerConfig{
		FailureThreshold: cfg.Email.FailureThreshold,
		Timeout:          cfg.Email.CircuitTimeout,
	}, log)
	return notification.NewMeteredSender(guarded, m)
}

// ===== Domain Providers =====

// DomainSet provides the organization and invitation domains.
var DomainSet = wire.NewSet(
	ProvideOrganizationConfig,
	ProvideOrganizationDomain,
	ProvideInvitationDomain,
)

// ProvideOrganizationConfig maps application config onto the domain config.
func ProvideOrganizationConfig(cfg *config.Config) *organization.Config {
	orgCfg := organization.DefaultConfig()
	orgCfg.InvitationExpiry = cfg.Organization.InvitationExpiry
	orgCfg.InvitationTokenBytes = cfg.Organization.InvitationTokenBytes
	if cfg.Organization.DefaultMaxUsers > 0 {
		orgCfg.DefaultSettings.Limits.MaxUsers = cfg.Organization.DefaultMaxUsers
	}
	return orgCfg
}

// ProvideOrganizationDomain creates the organization domain.
func ProvideOrganizationDomain(
	orgDB outbound.OrganizationDatabasePort,
	memberDB outbound.MembershipDatabasePort,
	invitationDB outbound.InvitationDatabasePort,
	auditDB outbound.AuditLogDatabasePort,
	users outbound.UserDirectoryPort,
	notifier outbound.NotificationPort,
	txPort outbound.TransactionPort,
	orgCfg *organization.Config,
	log *zap.Logger,
) inbound.OrganizationDomain {
	return organization.NewDomain(
		orgDB,
		memberDB,
		invitationDB,
		auditDB,
		users,
		notifier,
		txPort,
		orgCfg,
		log.Named("organization"),
	)
}

// ProvideInvitationDomain creates the invitation domain.
func ProvideInvitationDomain(
	invitationDB outbound.InvitationDatabasePort,
	memberDB outbound.MembershipDatabasePort,
	orgDB outbound.OrganizationDatabasePort,
	users outbound.UserDirectoryPort,
	notifier outbound.NotificationPort,
	txPort outbound.TransactionPort,
	log *zap.Logger,
) inbound.InvitationDomain {
	return invitation.NewDomain(
		invitationDB,
		memberDB,
		orgDB,
		users,
		notifier,
		txPort,
		log.Named("invitation"),
	)
}

// ===== HTTP Providers =====

// HTTPSet provides the HTTP handlers.
var HTTPSet = wire.NewSet(
	ProvideOrganizationHandler,
)

// ProvideOrganizationHandler creates the organization HTTP handler.
func ProvideOrganizationHandler(
	cfg *config.Config,
	orgs inbound.OrganizationDomain,
	invitations inbound.InvitationDomain,
	m *metrics.Metrics,
	log *zap.Logger,
) *orghttp.Handler {
	return orghttp.NewHandler(orgs, invitations, orghttp.Options{
		Metrics: m,
		Logger:  log,
		Debug:   cfg.Server.Mode == "debug",
	})
}

// ===== Combined Sets =====

// AppSet combines all provider sets.
var AppSet = wire.NewSet(
	InfraSet,
	StoreSet,
	NotificationSet,
	DomainSet,
	HTTPSet,
)
