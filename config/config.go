package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Storage backend names accepted in STORAGE_BACKEND.
const (
	StorageJSONFile = "jsonfile"
	StoragePostgres = "postgres"
)

// Notifier backend names accepted in NOTIFIER_BACKEND.
const (
	NotifierLog  = "log"
	NotifierSMTP = "smtp"
	NotifierAMQP = "amqp"
)

type Config struct {
	ServerPort int
	Storage    StorageConfig
	Database   DatabaseConfig
	Notifier   NotifierConfig
}

type StorageConfig struct {
	// Backend selects the persistence gateway: "jsonfile" or "postgres".
	Backend string

	// DataDir holds the flat-file collections for the jsonfile backend.
	DataDir string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	UseSSL   bool
}

type NotifierConfig struct {
	// Backend selects the delivery gateway: "log", "smtp" or "amqp".
	Backend string

	// Sender is the from-address stamped on outbound notifications.
	Sender string

	// SupportAddress receives support-channel requests.
	SupportAddress string

	SMTP SMTPConfig
	AMQP AMQPConfig
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

type AMQPConfig struct {
	URL   string
	Queue string
}

func LoadConfig() Config {
	if os.Getenv("ENV") == "dev" {
		godotenv.Load()
	}

	return Config{
		ServerPort: getEnvInt("SERVER_PORT", 8080),
		Storage: StorageConfig{
			Backend: getEnv("STORAGE_BACKEND", StorageJSONFile),
			DataDir: getEnv("DATA_DIR", "data"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "equipamentos"),
			Password: getEnv("DB_PASSWORD", "password"),
			DBName:   getEnv("DB_NAME", "equipamentos_db"),
			UseSSL:   getEnvBool("DB_USE_SSL", false),
		},
		Notifier: NotifierConfig{
			Backend:        getEnv("NOTIFIER_BACKEND", NotifierLog),
			Sender:         getEnv("NOTIFY_SENDER", "no-reply@universidade.com"),
			SupportAddress: getEnv("SUPPORT_ADDRESS", "suporte@universidade.com"),
			SMTP: SMTPConfig{
				Host:     getEnv("SMTP_HOST", "smtp.gmail.com"),
				Port:     getEnvInt("SMTP_PORT", 587),
				Username: getEnv("SMTP_USERNAME", ""),
				Password: getEnv("SMTP_PASSWORD", ""),
			},
			AMQP: AMQPConfig{
				URL:   getEnv("AMQP_URL", ""),
				Queue: getEnv("AMQP_QUEUE", "notifications"),
			},
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		var value int
		fmt.Sscanf(valueStr, "%d", &value)
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		return value == "true" || value == "1"
	}
	return defaultValue
}
