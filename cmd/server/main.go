package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GowthamiKadiyala/workout-tracker/internal/api"
	"github.com/GowthamiKadiyala/workout-tracker/internal/auth"
	"github.com/GowthamiKadiyala/workout-tracker/internal/config"
	"github.com/GowthamiKadiyala/workout-tracker/internal/logging"
	"github.com/GowthamiKadiyala/workout-tracker/internal/metrics"
	"github.com/GowthamiKadiyala/workout-tracker/internal/repository/mongo"
	"github.com/GowthamiKadiyala/workout-tracker/internal/service"
	"github.com/GowthamiKadiyala/workout-tracker/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	log "github.com/sirupsen/logrus"
)

// @title Workout Tracker API
// @version 1.0
// @description API for logging workouts, planning future sessions and charting training volume.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	configPath := flag.String("config", ".", "directory containing config.yaml")
	flag.Parse()

	// --- Configuration ---
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logging.Setup(logging.Params{
		LogFileName:   cfg.Log.File,
		LogToStdout:   cfg.Log.ToStdout,
		LogLevel:      cfg.Log.Level,
		LogFormatJSON: cfg.Log.JSON,
	})
	log.Println("starting workout tracker server...")

	statsLocation, err := cfg.StatsLocation()
	if err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	// --- Database Connection ---
	ctx := context.Background()
	store, err := mongo.Connect(ctx, cfg.Database.URI, cfg.Database.Name, cfg.Database.Timeout)
	if err != nil {
		log.Fatalf("could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Println("disconnecting MongoDB...")
		if err := store.Close(context.Background()); err != nil {
			log.Errorf("failed to disconnect MongoDB: %v", err)
		}
	}()
	log.WithField("database", cfg.Database.Name).Info("database connection established")

	indexCtx, cancelIndexes := context.WithTimeout(ctx, time.Minute)
	err = store.EnsureIndexes(indexCtx)
	cancelIndexes()
	if err != nil {
		log.Fatalf("could not create database indexes: %v", err)
	}

	// --- Initialize Storage ---
	var fileStorage storage.FileStorage
	if cfg.S3.BucketName != "" {
		fileStorage, err = storage.NewS3Storage(ctx, cfg.S3)
		if err != nil {
			log.Fatalf("failed to initialize S3 storage: %v", err)
		}
	} else {
		log.Warn("s3.bucket_name is not set, stats export is disabled")
	}

	// --- Initialize Repositories ---
	appDB := store.Database()
	userRepo := mongo.NewMongoUserRepository(appDB)
	workoutRepo := mongo.NewMongoWorkoutRepository(appDB)
	scheduleRepo := mongo.NewMongoScheduleRepository(appDB)
	statsExportRepo := mongo.NewMongoStatsExportRepository(appDB)

	// --- Initialize Services ---
	tokens, err := auth.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.Expiration, cfg.JWT.Issuer)
	if err != nil {
		log.Fatalf("failed to create token issuer: %v", err)
	}
	authService := service.NewAuthService(userRepo, auth.NewBcryptHasher(cfg.Auth.BcryptCost), tokens)
	workoutService := service.NewWorkoutService(workoutRepo)
	scheduleService := service.NewScheduleService(scheduleRepo)
	statsService := service.NewStatsService(workoutRepo, statsExportRepo, fileStorage, service.StatsOptions{
		Window:        cfg.Stats.Window,
		Location:      statsLocation,
		PresignExpiry: cfg.S3.PresignExpiry,
	})

	// --- Metrics ---
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metricsManager := metrics.NewManager(cfg.Metrics.Namespace, "server", registry)
	var gatherer prometheus.Gatherer
	if cfg.Metrics.Enabled {
		gatherer = registry
	}

	// --- Initialize Gin Engine ---
	if cfg.Server.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	api.SetupRoutes(router, api.Dependencies{
		AuthService:     authService,
		WorkoutService:  workoutService,
		ScheduleService: scheduleService,
		StatsService:    statsService,
		DB:              store,
		Metrics:         metricsManager,
		Gatherer:        gatherer,
		EnforceLedger:   cfg.Auth.EnforceLedger,
	})

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Infof("server listening on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ListenAndServe error: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down server...")

	// The context is used to inform the server it has 5 seconds to finish
	// the requests it is currently handling
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Errorf("server forced to shutdown: %v", err)
	}

	log.Println("server exiting")
}
