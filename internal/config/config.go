// Package config читает конфигурацию из переменных окружения
// со значениями по умолчанию для локального запуска.
package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppEnv   string
	LogLevel string

	HTTPPort int
	StateDir string

	// CheckoutDelay имитация обработки платежа при оформлении заказа
	CheckoutDelay time.Duration
	// NotificationTTL время жизни уведомления до автоочистки
	NotificationTTL time.Duration
}

func Load() Config {
	return Config{
		AppEnv:          getEnv("APP_ENV", "dev"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		HTTPPort:        getEnvInt("HTTP_PORT", 9091),
		StateDir:        getEnv("STATE_DIR", "./state"),
		CheckoutDelay:   getEnvDuration("CHECKOUT_DELAY", 2500*time.Millisecond),
		NotificationTTL: getEnvDuration("NOTIFICATION_TTL", 3*time.Second),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
