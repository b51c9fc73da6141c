package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
}

type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	DSN string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret []byte
	// ExpiresIn bounds session tokens; InviteExpiresIn bounds signed
	// invitation links.
	ExpiresIn       time.Duration
	InviteExpiresIn time.Duration
}

// Load reads the configuration from the environment, after loading a
// .env file when one is present.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: no .env file loaded")
	}

	return &Config{
		Server: ServerConfig{
			Addr:         getEnvOrDefault("PORT", ":8080"),
			ReadTimeout:  getDurationOrDefault("READ_TIMEOUT", "10s"),
			WriteTimeout: getDurationOrDefault("WRITE_TIMEOUT", "10s"),
		},
		Database: DatabaseConfig{
			DSN: getEnvOrDefault("DATABASE_DSN",
				"host=localhost user=user password=password dbname=drawspace port=5432 sslmode=disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		JWT: JWTConfig{
			Secret:          []byte(getEnvOrFatal("JWT_SECRET")),
			ExpiresIn:       getDurationOrDefault("JWT_EXPIRES_IN", "72h"),
			InviteExpiresIn: getDurationOrDefault("INVITE_EXPIRES_IN", "24h"),
		},
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvOrFatal(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalf("%s environment variable is required", key)
	}
	return value
}

func getDurationOrDefault(key, defaultValue string) time.Duration {
	value := getEnvOrDefault(key, defaultValue)
	duration, err := time.ParseDuration(value)
	if err != nil {
		log.Fatalf("Invalid duration for %s: %v", key, err)
	}
	return duration
}
