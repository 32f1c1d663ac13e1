package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort      string
	Environment     string
	FirebaseProject string
	FirebaseApiKey  string
	StorageBucket   string
	MailgunDomain   string
	MailgunApiKey   string
	MailFrom        string
	AdminEmail      string
	PublicBaseURL   string
	OutboxBatchSize int
	OutboxMaxTries  int
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		FirebaseProject: getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseApiKey:  getEnv("FIREBASE_API_KEY", ""),
		StorageBucket:   getEnv("STORAGE_BUCKET", ""),
		MailgunDomain:   getEnv("MAILGUN_DOMAIN", ""),
		MailgunApiKey:   getEnv("MAILGUN_API_KEY", ""),
		MailFrom:        getEnv("MAIL_FROM", "Créa'Cakes <no-reply@creacakes.fr>"),
		AdminEmail:      getEnv("ADMIN_EMAIL", "contact@creacakes.fr"),
		PublicBaseURL:   getEnv("PUBLIC_BASE_URL", "https://creacakes.fr"),
		OutboxBatchSize: getEnvAsInt("OUTBOX_BATCH_SIZE", 25),
		OutboxMaxTries:  getEnvAsInt("OUTBOX_MAX_TRIES", 5),
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.Atoi(value)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}
