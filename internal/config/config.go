package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	Kafka        KafkaConfig
	Gateway      ServiceConfig
	Notification ServiceConfig
	Features     FeatureFlags
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

func (d DatabaseConfig) ConnectionString() string {
	return "host=" + d.Host +
		" port=" + strconv.Itoa(d.Port) +
		" user=" + d.User +
		" password=" + d.Password +
		" dbname=" + d.Name +
		" sslmode=" + d.SSLMode
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	TTL      time.Duration
}

type KafkaConfig struct {
	Brokers       []string
	ComandasTopic string
	PaymentsTopic string
	ConsumerGroup string
}

type ServiceConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type FeatureFlags struct {
	EnableComandaCaching bool
	EnableComandaEvents  bool
	EnableNotifications  bool
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port:         getEnvInt("SERVER_PORT", 8080),
			ReadTimeout:  time.Duration(getEnvInt("SERVER_READ_TIMEOUT", 30)) * time.Second,
			WriteTimeout: time.Duration(getEnvInt("SERVER_WRITE_TIMEOUT", 30)) * time.Second,
		},
		Database: DatabaseConfig{
			Host:         getEnvString("DB_HOST", "localhost"),
			Port:         getEnvInt("DB_PORT", 5432),
			User:         getEnvString("DB_USER", "comandas"),
			Password:     getEnvString("DB_PASSWORD", "comandas"),
			Name:         getEnvString("DB_NAME", "comandas"),
			SSLMode:      getEnvString("DB_SSLMODE", "disable"),
			MaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  time.Duration(getEnvInt("DB_MAX_LIFETIME_MINUTES", 5)) * time.Minute,
		},
		Redis: RedisConfig{
			Host:     getEnvString("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnvString("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			TTL:      time.Duration(getEnvInt("REDIS_TTL_SECONDS", 300)) * time.Second,
		},
		Kafka: KafkaConfig{
			Brokers:       strings.Split(getEnvString("KAFKA_BROKERS", "localhost:9092"), ","),
			ComandasTopic: getEnvString("KAFKA_COMANDAS_TOPIC", "comandas.events"),
			PaymentsTopic: getEnvString("KAFKA_PAYMENTS_TOPIC", "payments.events"),
			ConsumerGroup: getEnvString("KAFKA_CONSUMER_GROUP", "comandas-service"),
		},
		Gateway: ServiceConfig{
			BaseURL: getEnvString("GATEWAY_URL", "http://localhost:8083"),
			APIKey:  getEnvString("GATEWAY_API_KEY", ""),
			Timeout: time.Duration(getEnvInt("GATEWAY_TIMEOUT", 30)) * time.Second,
		},
		Notification: ServiceConfig{
			BaseURL: getEnvString("NOTIFICATION_URL", "http://localhost:8084"),
			APIKey:  getEnvString("NOTIFICATION_API_KEY", ""),
			Timeout: time.Duration(getEnvInt("NOTIFICATION_TIMEOUT", 10)) * time.Second,
		},
		Features: FeatureFlags{
			EnableComandaCaching: getEnvBool("FEATURE_COMANDA_CACHING", true),
			EnableComandaEvents:  getEnvBool("FEATURE_COMANDA_EVENTS", true),
			EnableNotifications:  getEnvBool("FEATURE_NOTIFICATIONS", true),
		},
	}
}

func getEnvString(key, defaultValue string) string {
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
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
