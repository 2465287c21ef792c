package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	DBUser        string
	DBPassword    string
	DBHost        string
	DBPort        string
	DBName        string
	MaxOpenConns  int
	MaxIdleConns  int
	ServerPort    string
	RabbitMQURL   string
	OrderExchange string
	OrderQueue    string
}

func LoadConfig() *Config {
	// .env is a development convenience; in containers everything
	// arrives through the environment.
	if err := godotenv.Load(); err != nil {
		logrus.Debugf("no .env file loaded: %v", err)
	}

	return &Config{
		DBUser:        getEnv("DB_USER", "root"),
		DBPassword:    getEnvFromFile("DB_PASSWORD_FILE", "DB_PASSWORD", ""),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "3306"),
		DBName:        getEnv("DB_NAME", "food_ordering"),
		MaxOpenConns:  getEnvInt("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:  getEnvInt("DB_MAX_IDLE_CONNS", 5),
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		RabbitMQURL:   getEnv("RABBITMQ_URL", ""),
		OrderExchange: getEnv("ORDER_EXCHANGE", "food_orders_exchange"),
		OrderQueue:    getEnv("ORDER_QUEUE", "food_orders_queue"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

// getEnvFromFile supports Docker-style secret files: KEY_FILE points at a
// file whose contents win over the plain KEY variable.
func getEnvFromFile(fileKey, envKey, defaultValue string) string {
	if filePath := os.Getenv(fileKey); filePath != "" {
		if content, err := os.ReadFile(filePath); err == nil {
			return strings.TrimSpace(string(content))
		}
	}
	return getEnv(envKey, defaultValue)
}
