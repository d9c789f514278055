// Package config loads the backend configuration from the environment.
package config

import (
	"fmt"
	"time"

	env "github.com/Netflix/go-env"
)

// Config holds every tunable the backend reads at startup. Values come from
// the environment; main loads a .env file first in development.
type Config struct {
	HTTPAddr string `env:"HTTP_ADDR,default=:8080"`

	DBHost     string `env:"DB_HOST,default=localhost"`
	DBPort     int    `env:"DB_PORT,default=5432"`
	DBUser     string `env:"DB_USER,default=mentorhub"`
	DBPassword string `env:"DB_PASSWORD,default=mentorhub"`
	DBName     string `env:"DB_NAME,default=mentorhub"`

	RedisAddr     string `env:"REDIS_ADDR,default=localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB,default=0"`

	JWTSecret string        `env:"JWT_SECRET,required=true"`
	JWTTTL    time.Duration `env:"JWT_TTL,default=24h"`

	UploadDir string `env:"UPLOAD_DIR,default=./uploads"`

	SMTPAddr    string `env:"SMTP_ADDR"`
	SMTPUser    string `env:"SMTP_USER"`
	SMTPPass    string `env:"SMTP_PASS"`
	FrontendURL string `env:"FRONTEND_URL,default=http://localhost:5173"`

	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`

	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
	OpenAIModel  string `env:"OPENAI_MODEL,default=gpt-3.5-turbo"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// DSN builds the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}
