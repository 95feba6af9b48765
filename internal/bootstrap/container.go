package bootstrap

import (
	"context"
	"log"
	"time"

	"github.com/cokeastorga/astorgayabogados/internal/config"
	"github.com/cokeastorga/astorgayabogados/internal/controller"
	"github.com/cokeastorga/astorgayabogados/internal/pkg/logger"
	"github.com/cokeastorga/astorgayabogados/internal/pkg/mailer"
	"github.com/cokeastorga/astorgayabogados/internal/repository/contract"
	"github.com/cokeastorga/astorgayabogados/internal/repository/implementation"
	"github.com/cokeastorga/astorgayabogados/internal/repository/memory"
	redisRepo "github.com/cokeastorga/astorgayabogados/internal/repository/redis"
	"github.com/cokeastorga/astorgayabogados/internal/service"
	"github.com/cokeastorga/astorgayabogados/pkg/events"
	"github.com/cokeastorga/astorgayabogados/pkg/llm"
	"github.com/cokeastorga/astorgayabogados/pkg/llm/factory"
	"github.com/cokeastorga/astorgayabogados/pkg/llm/gateway"

	pktNats "github.com/cokeastorga/astorgayabogados/pkg/nats"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController  controller.IChatController
	EmailController controller.IEmailController
	NewsController  controller.INewsController
	// AuditController is nil when no database is configured
	AuditController controller.IAuditController

	Logger logger.ILogger

	closers []func()
}

// NewContainer wires the relay. db may be nil; audit persistence is then unavailable
// and clients fall back to their local queue.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	c := &Container{Logger: sysLogger}

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
		cfg.SMTP.SenderName,
		cfg.SMTP.Recipient,
	)

	// 1. Provider chain
	providers, errs := factory.NewProviderChain(cfg)
	for _, err := range errs {
		log.Printf("[WARN] LLM provider skipped: %v", err)
	}
	if len(providers) == 0 {
		log.Printf("[WARN] No LLM provider configured, every chat will get the degraded reply")
	}

	chatGateway := gateway.New(gateway.Config{
		AttemptTimeout: cfg.Ai.ChatTimeout,
		Temperature:    cfg.Ai.Temperature,
		DegradedReply:  service.DegradedReply(cfg.Assistant.FirmPhone),
	}, sysLogger, providers...)
	summaryGateway := gateway.New(gateway.Config{
		AttemptTimeout: cfg.Ai.SummaryTimeout,
		Temperature:    0.2,
		ManualReview:   service.ManualReviewRecord(),
	}, sysLogger, providers...)
	log.Printf("[INFO] Provider chain: %v", chatGateway.Providers())

	var searcher llm.GroundedSearcher
	for _, p := range providers {
		if s, ok := p.(llm.GroundedSearcher); ok {
			searcher = s
			break
		}
	}

	// 2. Infrastructure
	var publisher events.Publisher
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL, sysLogger)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	} else {
		publisher = natsPub
		c.closers = append(c.closers, natsPub.Close)
	}

	newsCache := newNewsCache(cfg, sysLogger)

	// 3. Services
	chatService := service.NewChatService(chatGateway, sysLogger)
	summaryService := service.NewSummaryService(summaryGateway, sysLogger)
	notificationService := service.NewNotificationService(emailService, sysLogger)
	newsService := service.NewNewsService(searcher, newsCache, cfg.Ai.NewsCacheDuration, sysLogger)

	// 4. Controllers
	c.ChatController = controller.NewChatController(chatService, summaryService)
	c.EmailController = controller.NewEmailController(notificationService)
	c.NewsController = controller.NewNewsController(newsService)

	if db != nil {
		auditService := service.NewAuditService(
			implementation.NewAuditRepository(db),
			publisher,
			sysLogger,
			cfg.App.Platform,
			cfg.App.Environment,
		)
		c.AuditController = controller.NewAuditController(auditService)
	}

	return c
}

// newNewsCache prefers Redis so replicas share the feed, and falls back to process memory.
func newNewsCache(cfg *config.Config, log logger.ILogger) contract.NewsCache {
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Warn("Bootstrap", "Failed to parse Redis URL, using direct Addr", map[string]interface{}{
			"error": err.Error(),
		})
		opt = &redis.Options{Addr: cfg.App.RedisURL}
	}

	rdb := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("Bootstrap", "Redis unavailable, news cached in memory", map[string]interface{}{
			"error": err.Error(),
		})
		_ = rdb.Close()
		return memory.NewNewsCache()
	}
	return redisRepo.NewNewsCache(rdb, log)
}

// Close releases broker connections.
func (c *Container) Close() {
	for _, fn := range c.closers {
		fn()
	}
}
