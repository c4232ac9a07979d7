package config

import (
	"fmt"
	"strings"
)

const minProductionSecretLength = 32

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the configuration is usable for the configured environment
func ValidateConfig(cfg *Config) error {
	var errs []string
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg}.Error())
	}

	if !cfg.Env.Valid() {
		add("ENV", fmt.Sprintf("unknown environment %q", cfg.Env))
	}

	switch cfg.DBDriver {
	case "sqlite":
		if cfg.DBPath == "" {
			add("DB_PATH", "required for the sqlite driver")
		}
	case "postgres":
		if cfg.DBHost == "" {
			add("DB_HOST", "required for the postgres driver")
		}
		if cfg.DBName == "" {
			add("DB_NAME", "required for the postgres driver")
		}
		if cfg.DBUser == "" {
			add("DB_USER", "required for the postgres driver")
		}
	default:
		add("DB_DRIVER", fmt.Sprintf("unsupported driver %q", cfg.DBDriver))
	}

	if cfg.JWTSecret == "" {
		add("JWT_SECRET", "is required")
	} else if cfg.Env == Production && len(cfg.JWTSecret) < minProductionSecretLength {
		add("JWT_SECRET", fmt.Sprintf("must be at least %d bytes in production", minProductionSecretLength))
	}
	if cfg.JWTTTL <= 0 {
		add("JWT_TTL", "must be positive")
	}

	if cfg.RecipeCreationPerHour <= 0 {
		add("RATE_LIMIT_RECIPES_PER_HOUR", "must be positive")
	}
	if cfg.UpvotesPerHour <= 0 {
		add("RATE_LIMIT_UPVOTES_PER_HOUR", "must be positive")
	}

	if cfg.S3Endpoint != "" && cfg.S3Bucket == "" {
		add("S3_ENDPOINT", "set without S3_BUCKET_NAME")
	}
	if cfg.S3Bucket == "" && cfg.MediaRoot == "" {
		add("MEDIA_ROOT", "required when S3 is not configured")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errs, "\n"))
	}

	return nil
}
