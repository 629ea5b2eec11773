package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	MongoURI      string
	MongoDatabase string
	RedisAddr     string
	HTTPPort      string
	AdminUsername string
	AdminPassword string
	JWTSecret     string
	RosterTTL     time.Duration
	StatsTTL      time.Duration
}

func Load() *Config {
	return &Config{
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", "ascdash"),
		RedisAddr:     getEnv("REDIS_URI", "localhost:6379"),
		HTTPPort:      getEnv("PORT", "8080"),
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "password123"),
		JWTSecret:     getEnv("JWT_SECRET", "super-secret-key-change-in-production"),
		RosterTTL:     getDuration("ROSTER_TTL_SECONDS", 300),
		StatsTTL:      getDuration("STATS_TTL_SECONDS", 60),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getDuration(key string, defaultSeconds int) time.Duration {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return time.Duration(defaultSeconds) * time.Second
}
