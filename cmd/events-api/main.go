package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/payram/igaming-events-api/api/swagger"
	"github.com/payram/igaming-events-api/internal/handler"
	internalmiddleware "github.com/payram/igaming-events-api/internal/middleware"
	"github.com/payram/igaming-events-api/internal/messaging"
	"github.com/payram/igaming-events-api/internal/repository"
	"github.com/payram/igaming-events-api/internal/service"
	"github.com/payram/igaming-events-api/pkg/cache"
	"github.com/payram/igaming-events-api/pkg/config"
	"github.com/payram/igaming-events-api/pkg/database"
	"github.com/payram/igaming-events-api/pkg/logger"
	"github.com/payram/igaming-events-api/pkg/mailer"
	corsmiddleware "github.com/payram/igaming-events-api/pkg/middleware/cors"
	reqidmiddleware "github.com/payram/igaming-events-api/pkg/middleware/requestid"
)

// @title iGaming Events API
// @version 1.0.0
// @description Public iGaming events calendar: submissions, moderation imports, calendar views and invites.
// @BasePath /
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

type eventStore interface {
	repository.EventQuerier
	service.EventWriter
	service.RegistrationWriter
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg.Env, cfg.Log)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	metrics := service.NewMetricsService()
	probes := map[string]handler.Probe{}
	validate := validator.New()

	store, closeStore, err := openStore(ctx, cfg, probes)
	if err != nil {
		logr.Fatal("failed to open document store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	defer closeStore()

	var cacheRepo service.CacheRepository
	if cfg.Cache.Enabled {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, caching disabled", zap.Error(err))
		} else {
			repo := repository.NewCacheRepository(client, "igaming-events:")
			defer repo.Close() //nolint:errcheck
			cacheRepo = repo
			probes["redis"] = repo.Ping
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Cache.TTL, logr, cacheRepo != nil)

	var publisher service.SubmissionPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		p := messaging.NewSubmissionPublisher(cfg.Kafka.Brokers, cfg.Kafka.SubmissionsTopic)
		defer p.Close() //nolint:errcheck
		publisher = p
	}

	var inviteMailer service.InviteMailer
	if m, err := mailer.NewSMTPMailer(cfg.Mail); err != nil {
		logr.Warn("smtp not configured, invites will fail", zap.Error(err))
	} else {
		inviteMailer = m
	}

	location, err := time.LoadLocation(cfg.Invite.Timezone)
	if err != nil {
		logr.Warn("unknown INVITE_TIMEZONE, using UTC", zap.String("timezone", cfg.Invite.Timezone), zap.Error(err))
		location = time.UTC
	}

	eventsSvc := service.NewEventsService(store, repository.NewStaticEventRepository(cfg.Fallback.EventsFile), cacheSvc, metrics, logr, service.EventsConfig{
		MaxPages:  cfg.Store.MaxPages,
		PageSize:  cfg.Store.PageSize,
		CacheTTL:  cfg.Cache.TTL,
		UIDDomain: cfg.Invite.UIDDomain,
	})
	submissionSvc := service.NewSubmissionService(store, publisher, cacheSvc, metrics, validate, logr, service.SubmissionConfig{
		MaxPages:       cfg.Store.MaxPages,
		PageSize:       cfg.Store.PageSize,
		MaxConcurrency: cfg.Bulk.MaxConcurrency,
	})
	inviteSvc := service.NewInviteService(inviteMailer, store, metrics, validate, logr, service.InviteConfig{
		UIDDomain:      cfg.Invite.UIDDomain,
		Location:       location,
		OrganizerName:  cfg.Invite.Organizer,
		OrganizerEmail: cfg.Mail.Username,
	})

	routes := handler.Routes{
		Submissions: handler.NewSubmissionHandler(submissionSvc, eventsSvc),
		Invites:     handler.NewInviteHandler(inviteSvc),
		Events:      handler.NewEventsHandler(eventsSvc),
		Ops:         handler.NewMetricsHandler(metrics, probes),
	}
	if cfg.Moderation.AuthEnabled {
		auth, err := service.NewModeratorAuth(cfg.Moderation.JWTSecret)
		if err != nil {
			logr.Fatal("moderation auth enabled without a secret", zap.Error(err))
		}
		routes.Moderator = internalmiddleware.Moderator(auth)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr, "/health", "/metrics"))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metrics))
	routes.Register(r)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env), zap.String("store", cfg.Store.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}

func openStore(ctx context.Context, cfg *config.Config, probes map[string]handler.Probe) (eventStore, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		probes["postgres"] = db.PingContext
		return repository.NewPostgresEventRepository(db, cfg.Store.PageSize), func() { _ = db.Close() }, nil
	case config.StoreDriverNotion, "":
		client := repository.NewNotionClient(cfg.Notion, cfg.Store.Timeout)
		return repository.NewNotionEventRepository(client, cfg.Notion, cfg.Store.PageSize), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.Store.Driver)
	}
}
