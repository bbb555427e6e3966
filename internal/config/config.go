package config

import (
	"os"
	"strconv"
	"time"
)

// Defaults are for local development only. Any shared deployment must
// override APP_ID and APP_CERTIFICATE.
const (
	defaultPort         = "8080"
	defaultAppID        = "dev-app-id"
	defaultCertificate  = "dev-app-certificate"
	defaultTTLSeconds   = 3600
	defaultPushEndpoint = "https://exp.host/--/api/v2/push/send"
)

type Config struct {
	Port           string
	AppID          string
	AppCertificate string
	TokenTTL       time.Duration
	PushEndpoint   string
}

func Load() Config {
	ttl := defaultTTLSeconds
	if v := os.Getenv("TOKEN_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			ttl = n
		}
	}

	return Config{
		Port:           envOrDefault("PORT", defaultPort),
		AppID:          envOrDefault("APP_ID", defaultAppID),
		AppCertificate: envOrDefault("APP_CERTIFICATE", defaultCertificate),
		TokenTTL:       time.Duration(ttl) * time.Second,
		PushEndpoint:   envOrDefault("PUSH_ENDPOINT", defaultPushEndpoint),
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
