package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"mentorhub/backend/internal/ai"
	"mentorhub/backend/internal/api/handler"
	"mentorhub/backend/internal/chathub"
	"mentorhub/backend/internal/config"
	"mentorhub/backend/internal/email"
	"mentorhub/backend/internal/models"
	"mentorhub/backend/internal/scheduler"
	"mentorhub/backend/internal/storage"
	"mentorhub/backend/internal/telegram"
)

func setupDependencies(cfg *config.Config) (*gorm.DB, *redis.Client) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.ChatMessage{},
		&models.Meeting{},
		&models.Todo{},
		&models.StudySession{},
		&models.Resume{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func main() {
	log.Println("Starting MentorHub Backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatalf("Failed to create upload dir: %v", err)
	}

	db, rdb := setupDependencies(cfg)
	s := storage.NewStorageService(db, rdb)

	hub := chathub.NewManagerService(s)
	relay := chathub.NewRelayService(hub, s)

	if cfg.TelegramBotToken != "" {
		notifier, err := telegram.NewNotifier(cfg.TelegramBotToken, s, cfg.FrontendURL)
		if err != nil {
			log.Fatalf("Failed to start Telegram notifier: %v", err)
		}
		relay.Notifier = notifier
	} else {
		log.Println("TELEGRAM_BOT_TOKEN not set, Telegram notifications disabled")
	}

	var mailer email.Mailer
	if m := email.NewSMTPMailer(cfg.SMTPAddr, cfg.SMTPUser, cfg.SMTPPass, cfg.FrontendURL); m != nil {
		mailer = m
	} else {
		log.Println("SMTP_ADDR not set, outgoing mail disabled")
	}

	var meetingNotifier scheduler.MeetingNotifier
	if n, ok := relay.Notifier.(*telegram.Notifier); ok {
		meetingNotifier = n
	}
	jobs, err := scheduler.New(s, mailer, meetingNotifier)
	if err != nil {
		log.Fatalf("Failed to build scheduler: %v", err)
	}

	go hub.Run()
	go jobs.Run(context.Background())

	assistant := ai.NewAssistant(cfg.OpenAIAPIKey, cfg.OpenAIModel)

	r := gin.Default()
	h := handler.NewHandler(hub, relay, s, cfg, mailer, assistant)
	h.RegisterRoutes(r)

	server := &http.Server{
		Addr:           cfg.HTTPAddr,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Printf("Listening on %s", cfg.HTTPAddr)
	log.Fatal(server.ListenAndServe())
}
