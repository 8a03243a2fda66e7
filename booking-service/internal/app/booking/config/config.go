package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server         ServerConfig
	MongoDB        MongoDBConfig
	Redis          RedisConfig
	Kafka          KafkaConfig
	JWT            JWTConfig
	CatalogService CatalogServiceConfig
	Booking        BookingConfig
}

type ServerConfig struct {
	Host string // Адрес хоста (по умолчанию 0.0.0.0)
	Port string // Порт сервера (по умолчанию 8082)
}

type MongoDBConfig struct {
	URI      string // URI подключения, для транзакций нужен replica set
	Database string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Brokers     []string // host:port через запятую
	Topic       string   // RESERVATION_CREATED, RESERVATION_CANCELLED, RESERVATION_MODIFIED
	ReviewTopic string   // REVIEW_CREATED, REVIEW_UPDATED, REVIEW_DELETED
}

type JWTConfig struct {
	Secret string // Должен совпадать с секретом провайдера идентификации
}

type CatalogServiceConfig struct {
	URL     string
	Timeout time.Duration
}

// BookingConfig - параметры движка бронирования
type BookingConfig struct {
	MaxRetries           int           // Повторы при конфликте версии баланса
	LockTTL              time.Duration // Время жизни пользовательской блокировки
	LockWait             time.Duration // Сколько ждать блокировку
	ReversalPolicy       string        // clamp или strict
	RequireCompletedStay bool          // Отзыв только после завершенного проживания
}

func Load() (*Config, error) {
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB value: %w", err)
	}

	policy := strings.ToLower(getEnv("LOYALTY_REVERSAL_POLICY", "clamp"))
	if policy != "clamp" && policy != "strict" {
		return nil, fmt.Errorf("invalid LOYALTY_REVERSAL_POLICY value: %q", policy)
	}

	maxRetries := getEnvInt("BOOKING_MAX_RETRIES", 3)
	if maxRetries < 1 {
		return nil, fmt.Errorf("BOOKING_MAX_RETRIES must be positive, got %d", maxRetries)
	}

	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8082"),
		},
		MongoDB: MongoDBConfig{
			URI:      getEnv("MONGODB_URI", "mongodb://localhost:27017/?replicaSet=rs0"),
			Database: getEnv("MONGODB_DATABASE", "booking_service"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Kafka: KafkaConfig{
			Brokers:     splitList(getEnv("KAFKA_BROKERS", "localhost:9092")),
			Topic:       getEnv("KAFKA_TOPIC", "reservation_events"),
			ReviewTopic: getEnv("KAFKA_REVIEW_TOPIC", "review_events"),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-secret-key-change-this-in-production"),
		},
		CatalogService: CatalogServiceConfig{
			URL:     getEnv("CATALOG_SERVICE_URL", "http://localhost:8081"),
			Timeout: getEnvDuration("CATALOG_SERVICE_TIMEOUT", 5*time.Second),
		},
		Booking: BookingConfig{
			MaxRetries:           maxRetries,
			LockTTL:              getEnvDuration("BOOKING_LOCK_TTL", 10*time.Second),
			LockWait:             getEnvDuration("BOOKING_LOCK_WAIT", 3*time.Second),
			ReversalPolicy:       policy,
			RequireCompletedStay: getEnvBool("REVIEW_REQUIRE_COMPLETED_STAY", false),
		},
	}, nil
}

func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

func (c *RedisConfig) Address() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
