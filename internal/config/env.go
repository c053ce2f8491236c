package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// EnvConfig holds everything read from the environment.
type EnvConfig struct {
	TelegramBotToken string
	// WebhookSecret is compared with the secret token header of webhook
	// requests. Empty disables the check.
	WebhookSecret string
	// DatabaseURL enables the chat registry when set.
	DatabaseURL string
	Port        string
	// PolicyPath is a YAML moderation policy. Empty uses the defaults.
	PolicyPath string
	// PollerDB is the bbolt file storing getUpdates offsets.
	PollerDB string
}

// LoadDotEnv loads variables from a .env file in the working directory, if
// there is one.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("warning: could not load .env: %v", err)
			return err
		}
	}
	return nil
}

// LoadEnvConfig reads the environment. Only TELEGRAM_BOT_TOKEN is required.
func LoadEnvConfig() (*EnvConfig, error) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable is required")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	pollerDB := os.Getenv("POLLER_DB")
	if pollerDB == "" {
		pollerDB = "poller.db"
	}

	return &EnvConfig{
		TelegramBotToken: token,
		WebhookSecret:    os.Getenv("TELEGRAM_WEBHOOK_SECRET"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		Port:             port,
		PolicyPath:       os.Getenv("MODBOT_POLICY"),
		PollerDB:         pollerDB,
	}, nil
}
