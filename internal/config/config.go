package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL       string
	DataDir          string
	DatabaseURL      string
	TelegramBotToken string
	TelegramChatID   string
}

func Load() Config {
	_ = godotenv.Load()

	return Config{
		APIBaseURL:       getEnv("SKILLHIVE_API_URL", ""),
		DataDir:          getEnv("SKILLHIVE_DATA_DIR", "data"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:   getEnv("TELEGRAM_CHAT_ID", ""),
	}
}

func getEnv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}
