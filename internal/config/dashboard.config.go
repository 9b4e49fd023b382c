package config

import (
	"os"
	"strconv"
)

type AppConfig struct {
	HTTPAddr  string
	RedisAddr string
	RedisPass string

	// Base URL of the platform API, e.g. https://api.promohatt.example
	APIBaseURL string

	// Publishable key handed to the checkout widget on the purchase page.
	RazorpayKeyID string

	TelemetryEndpoint string
	TelemetryInsecure bool
	ServiceName       string
}

func Load() AppConfig {
	return AppConfig{
		HTTPAddr:          getEnv("HTTP_ADDR", ":7020"),
		RedisAddr:         getEnv("REDIS_ADDR", "redis:6379"),
		RedisPass:         getEnv("REDIS_PASS", ""),
		APIBaseURL:        getEnv("API_BASE_URL", "http://localhost:8000"),
		RazorpayKeyID:     getEnv("RAZORPAY_KEY_ID", ""),
		TelemetryEndpoint: getEnv("OTEL_EXPORTER_ENDPOINT", ""),
		TelemetryInsecure: getEnvBool("OTEL_EXPORTER_INSECURE", false),
		ServiceName:       getEnv("SERVICE_NAME", "dashboard-service"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
