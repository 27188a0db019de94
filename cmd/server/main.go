package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/campus-halls/service-booking/internal/application"
	"github.com/campus-halls/service-booking/internal/auth"
	"github.com/campus-halls/service-booking/internal/config"
	"github.com/campus-halls/service-booking/internal/database"
	"github.com/campus-halls/service-booking/internal/events"
	"github.com/campus-halls/service-booking/internal/handler"
	"github.com/campus-halls/service-booking/internal/health"
	"github.com/campus-halls/service-booking/internal/logger"
	"github.com/campus-halls/service-booking/internal/metrics"
	"github.com/campus-halls/service-booking/internal/middleware"
	"github.com/campus-halls/service-booking/internal/repository"
)

func main() {
	// Optional .env for local development
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewNamed(cfg.AppEnv, "service-booking")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-booking",
		zap.String("port", cfg.Port),
		zap.String("env", cfg.AppEnv),
	)

	db, err := database.Connect(cfg.DB.DSN(), log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	if cfg.AppEnv == "development" {
		if err := db.AutoMigrate(
			&repository.DepartmentModel{},
			&repository.HallModel{},
			&repository.BookingModel{},
		); err != nil {
			log.Fatal("failed to run auto-migration", zap.Error(err))
		}
		log.Info("database migration completed (dev auto-migrate)")
	} else {
		if err := database.RunMigrations(cfg.DB.URL(), cfg.MigrationsPath, log); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() { _ = rdb.Close() }()

	jwtManager := auth.NewJWTManager(cfg.JWT.Secret, 15*time.Minute)

	producer := events.NewProducer(cfg.Kafka.Brokers, log)
	defer func() { _ = producer.Close() }()
	notifier := events.NewKafkaNotifier(producer)

	bookingRepo := repository.NewGormBookingRepository(db)
	hallRepo := repository.NewCachedHallRepository(
		repository.NewGormHallRepository(db),
		rdb,
		5*time.Minute,
		log,
	)
	departmentRepo := repository.NewGormDepartmentRepository(db)

	departmentService := application.NewDepartmentService(departmentRepo, log)
	hallService := application.NewHallService(hallRepo, log)
	bookingService := application.NewBookingService(bookingRepo, hallRepo, departmentService, notifier, log)
	availabilityService := application.NewAvailabilityService(bookingRepo, hallRepo, log)

	bookingHandler := handler.NewBookingHandler(bookingService)
	availabilityHandler := handler.NewAvailabilityHandler(availabilityService)
	hallHandler := handler.NewHallHandler(hallService)
	departmentHandler := handler.NewDepartmentHandler(departmentService, bookingService)
	adminHandler := handler.NewAdminHandler(bookingService)

	if cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(middleware.Recovery(log))
	router.Use(middleware.Logger(log))
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())
	router.Use(middleware.SecurityHeaders())
	router.Use(metrics.Middleware())

	healthHandler := health.NewHandler(db, rdb, "service-booking")
	healthHandler.RegisterRoutes(router)
	metrics.RegisterRoutes(router)

	bookingHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	availabilityHandler.RegisterRoutes(&router.RouterGroup)
	hallHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	departmentHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	adminHandler.RegisterRoutes(&router.RouterGroup, jwtManager)

	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down service-booking...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("service-booking stopped")
}
