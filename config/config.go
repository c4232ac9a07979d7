package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the application
type Config struct {
	Env Environment `envconfig:"ENV" default:"development"`

	// Server configuration
	ServerHost      string        `envconfig:"SERVER_HOST" default:""`
	ServerPort      string        `envconfig:"SERVER_PORT" default:"8080"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	// Database configuration
	DBDriver   string `envconfig:"DB_DRIVER" default:"sqlite"`
	DBPath     string `envconfig:"DB_PATH" default:"recipes.db"`
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME" default:"recipes"`
	DBSSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`

	// JWT configuration
	JWTSecret string        `envconfig:"JWT_SECRET" required:"true"`
	JWTTTL    time.Duration `envconfig:"JWT_TTL" default:"720h"`

	// Redis backs rate limiting; empty disables it
	RedisURL              string `envconfig:"REDIS_URL"`
	RecipeCreationPerHour int    `envconfig:"RATE_LIMIT_RECIPES_PER_HOUR" default:"20"`
	UpvotesPerHour        int    `envconfig:"RATE_LIMIT_UPVOTES_PER_HOUR" default:"100"`

	// Image storage. S3 is used when S3Bucket is set, local disk otherwise.
	MediaRoot   string `envconfig:"MEDIA_ROOT" default:"media"`
	MediaURL    string `envconfig:"MEDIA_URL" default:"/media/"`
	S3Bucket    string `envconfig:"S3_BUCKET_NAME"`
	S3Region    string `envconfig:"AWS_REGION" default:"us-east-1"`
	S3Endpoint  string `envconfig:"S3_ENDPOINT"`
	S3AccessKey string `envconfig:"S3_ACCESS_KEY"`
	S3SecretKey string `envconfig:"S3_SECRET_KEY"`

	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:5173"`
}

// LoadConfig reads an optional .env file, then the process environment, and validates the result
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := ValidateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// PostgresDSN returns the connection string for the postgres driver
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}
