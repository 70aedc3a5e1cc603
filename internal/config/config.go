package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config - глобальная конфигурация бота
type Config struct {
	Env      string // "local", "prod"
	Telegram TelegramConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Monitor  MonitorConfig
	HTTP     HTTPConfig
}

type TelegramConfig struct {
	BotToken string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Enabled  bool
}

// MonitorConfig - параметры цикла авто-мониторинга
type MonitorConfig struct {
	Interval      time.Duration // период тика
	InitialDelay  time.Duration // пауза до первого тика
	ThresholdPct  string        // порог алерта в процентах, например "0.5"
	AlertCooldown time.Duration // окно подавления повторных алертов по символу
}

type HTTPConfig struct {
	Timeout time.Duration // таймаут одного запроса к бирже
}

// LoadConfig собирает настройки из переменных окружения.
// .env подхватывается через godotenv/autoload в main.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Env: getEnv("APP_ENV", "local"),
		Telegram: TelegramConfig{
			BotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: os.Getenv("DB_PASSWORD"),
			DBName:   getEnv("DB_NAME", "arbitrage"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvInt("REDIS_DB", 0),
			Enabled:  getEnvBool("REDIS_ENABLED", false),
		},
		Monitor: MonitorConfig{
			Interval:      getEnvDuration("MONITOR_INTERVAL", 60*time.Second),
			InitialDelay:  getEnvDuration("MONITOR_INITIAL_DELAY", 5*time.Second),
			ThresholdPct:  getEnv("ALERT_THRESHOLD_PCT", "0.5"),
			AlertCooldown: getEnvDuration("ALERT_COOLDOWN", 10*time.Minute),
		},
		HTTP: HTTPConfig{
			Timeout: getEnvDuration("HTTP_TIMEOUT", 10*time.Second),
		},
	}

	if cfg.Telegram.BotToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}

	return cfg, nil
}

// --- env helpers ---

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
