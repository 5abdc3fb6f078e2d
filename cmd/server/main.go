package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Kilat-Pet-Delivery/service-lodging/internal/application"
	"github.com/Kilat-Pet-Delivery/service-lodging/internal/authz"
	"github.com/Kilat-Pet-Delivery/service-lodging/internal/config"
	"github.com/Kilat-Pet-Delivery/service-lodging/internal/domain/inventory"
	"github.com/Kilat-Pet-Delivery/service-lodging/internal/email"
	lodgingEvents "github.com/Kilat-Pet-Delivery/service-lodging/internal/events"
	"github.com/Kilat-Pet-Delivery/service-lodging/internal/handler"
	"github.com/Kilat-Pet-Delivery/service-lodging/internal/identity"
	"github.com/Kilat-Pet-Delivery/service-lodging/internal/platform/database"
	"github.com/Kilat-Pet-Delivery/service-lodging/internal/platform/health"
	"github.com/Kilat-Pet-Delivery/service-lodging/internal/platform/kafka"
	"github.com/Kilat-Pet-Delivery/service-lodging/internal/platform/logger"
	"github.com/Kilat-Pet-Delivery/service-lodging/internal/platform/middleware"
	"github.com/Kilat-Pet-Delivery/service-lodging/internal/repository"
	"github.com/Kilat-Pet-Delivery/service-lodging/internal/scheduler"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const serviceName = "service-lodging"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, serviceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting "+serviceName,
		zap.String("port", cfg.Port),
		zap.String("env", cfg.AppEnv),
	)

	if err := run(cfg, log); err != nil {
		log.Error(serviceName+" exited with error", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
	log.Info(serviceName + " stopped")
}

func run(cfg *config.ServiceConfig, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.Connect(cfg.DBConfig, log)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer func() { _ = sqlDB.Close() }()
	}

	// Run database migrations
	if cfg.IsDevelopment() {
		if err := db.AutoMigrate(
			&repository.PropertyModel{},
			&repository.RoomTypeModel{},
			&repository.RoomModel{},
			&repository.BookingModel{},
		); err != nil {
			return fmt.Errorf("failed to run auto-migration: %w", err)
		}
		log.Info("database migration completed (dev auto-migrate)")
	} else if err := database.RunMigrations(cfg.DBConfig.DatabaseURL(), "migrations", log); err != nil {
		return err
	}

	// Identity: JWT verification plus optional session revocation in Redis
	readyChecks := map[string]health.Check{
		"database": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}

	var sessions identity.SessionStore
	if cfg.RedisConfig.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisConfig.Addr,
			Password: cfg.RedisConfig.Password,
			DB:       cfg.RedisConfig.DB,
		})
		defer func() { _ = rdb.Close() }()
		store := identity.NewRedisSessionStore(rdb)
		sessions = store
		readyChecks["redis"] = store.Ping
	}

	var gateway *identity.JWTGateway
	if cfg.JWTConfig.JWKSURL != "" {
		gateway, err = identity.NewJWKSGateway(ctx, cfg.JWTConfig.JWKSURL, cfg.JWTConfig.Issuer, sessions, log)
		if err != nil {
			return err
		}
	} else {
		gateway = identity.NewHMACGateway(cfg.JWTConfig.Secret, cfg.JWTConfig.Issuer, sessions, log)
	}
	resolver := authz.NewResolver(gateway, cfg.IdentityTimeout, log)

	// Initialize Kafka producer
	kafkaProducer := kafka.NewProducer(cfg.KafkaConfig.Brokers, log)
	defer func() { _ = kafkaProducer.Close() }()

	// Initialize repositories
	bookingRepo := repository.NewGormBookingRepository(db)
	propertyRepo := repository.NewGormPropertyRepository(db)
	roomTypeRepo := repository.NewGormRoomTypeRepository(db)
	roomRepo := repository.NewGormRoomRepository(db)
	unitOfWork := repository.NewGormUnitOfWork(db)

	// Initialize application services
	var mailer application.Mailer
	if cfg.MailEnabled() {
		mailer = email.NewClient(email.Config{
			Host:     cfg.SMTPConfig.Host,
			Port:     cfg.SMTPConfig.Port,
			Username: cfg.SMTPConfig.Username,
			Password: cfg.SMTPConfig.Password,
			From:     cfg.SMTPConfig.From,
		}, log)
	}

	availabilityService := application.NewAvailabilityService(bookingRepo, roomRepo, propertyRepo, log)
	bookingService := application.NewBookingService(application.BookingServiceDeps{
		Bookings:          bookingRepo,
		UnitOfWork:        unitOfWork,
		Rooms:             roomRepo,
		RoomTypes:         roomTypeRepo,
		Properties:        propertyRepo,
		Availability:      availabilityService,
		Billing:           lodgingEvents.NewBillingPublisher(kafkaProducer, cfg.KafkaConfig.BillingTopic, log),
		Mailer:            mailer,
		SideEffectTimeout: cfg.BillingTimeout,
	}, log)
	inventoryService := application.NewInventoryService(propertyRepo, roomTypeRepo, roomRepo, log)

	walker := inventory.NewOwnershipWalker(propertyRepo, roomTypeRepo, roomRepo)
	guardedBookings := application.NewGuardedBookingService(bookingService, availabilityService)
	guardedInventory := application.NewGuardedInventoryService(inventoryService, walker)

	// Background workers
	paymentConsumer := lodgingEvents.NewPaymentEventConsumer(
		cfg.KafkaConfig.Brokers,
		cfg.KafkaConfig.GroupPrefix+"-payments",
		cfg.KafkaConfig.PaymentTopic,
		bookingService,
		log,
	)
	defer func() { _ = paymentConsumer.Close() }()

	lifecycle := scheduler.NewLifecycleScheduler(bookingService, cfg.SweepInterval, log)

	// Setup Gin router
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.CORSMiddleware(cfg.CORSOrigins))
	router.Use(middleware.SecurityHeadersMiddleware())

	// Register health check routes
	health.NewHandler(serviceName, readyChecks, log).RegisterRoutes(router)

	// Register routes
	authMW := handler.AuthMiddleware(resolver)
	handler.NewBookingHandler(guardedBookings, bookingService).
		RegisterRoutes(&router.RouterGroup, authMW, handler.ServiceKeyMiddleware(cfg.ServiceAPIKey))
	handler.NewAvailabilityHandler(guardedBookings).RegisterRoutes(&router.RouterGroup, authMW)
	handler.NewInventoryHandler(guardedInventory).RegisterRoutes(&router.RouterGroup, authMW)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("HTTP server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		log.Info("starting payment event consumer")
		return paymentConsumer.Start(gctx)
	})
	g.Go(func() error {
		return lifecycle.Run(gctx)
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down " + serviceName + "...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("HTTP server forced shutdown", zap.Error(err))
		}
		// Let detached billing and mail calls finish before the producer closes.
		if err := bookingService.Drain(shutdownCtx); err != nil {
			log.Warn("side effects still running at shutdown", zap.Error(err))
		}
		return nil
	})

	return g.Wait()
}
