package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/rs/cors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"sentinel-backend/internal/auth"
	"sentinel-backend/internal/config"
	"sentinel-backend/internal/controller"
	"sentinel-backend/internal/mailer"
	"sentinel-backend/internal/middleware"
	"sentinel-backend/internal/models"
	"sentinel-backend/internal/repository"
	"sentinel-backend/internal/routes"
	"sentinel-backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	// Credential store
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Device{}); err != nil {
		log.Fatalf("Error migrating database schema: %v", err)
	}

	// Reading store
	influxClient := influxdb2.NewClient(cfg.InfluxURL, cfg.InfluxToken)
	defer influxClient.Close()
	health, err := influxClient.Health(context.Background())
	if err != nil {
		log.Fatalf("Error connecting to InfluxDB: %v", err)
	}
	if health.Status != "pass" {
		log.Fatalf("InfluxDB health check failed: %v", health.Message)
	}
	log.Println("Successfully connected to InfluxDB")

	readingRepo := repository.NewInfluxReadingRepository(influxClient, cfg.InfluxOrg, cfg.InfluxBucket)
	if err := readingRepo.EnsureBucket(context.Background()); err != nil {
		log.Fatalf("Error preparing readings bucket: %v", err)
	}

	// Reset-token store
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("Error connecting to Redis: %v", err)
	}
	log.Println("Connected to Redis successfully")

	tokenService := auth.NewTokenService(cfg.JWTSecret, cfg.UserTokenTTL)

	var resetMailer service.ResetMailer
	if cfg.MailAPIURL != "" {
		resetMailer = mailer.New(cfg.MailAPIURL, cfg.MailFrom)
	} else {
		log.Println("MAIL_API_URL not set, password reset emails disabled")
	}

	authService := service.NewAuthService(
		repository.NewGormUserRepository(db),
		repository.NewGormDeviceRepository(db),
		repository.NewRedisResetTokenStore(redisClient),
		tokenService,
		resetMailer,
		cfg.ResetTokenTTL,
	)
	dataService := service.NewDataService(readingRepo, cfg.TrustBodyOwner)
	statsService := service.NewStatsService(readingRepo)

	router := routes.SetupRouter(
		controller.NewAuthController(authService),
		controller.NewDataController(dataService),
		controller.NewStatsController(statsService),
		middleware.NewAuthenticator(tokenService),
	)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(router)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      corsHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Printf("Server is running on port %s...", cfg.Port)
	if err := server.ListenAndServe(); err != nil {
		log.Fatal("Error starting server:", err)
	}
}
