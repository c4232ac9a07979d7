package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_USER", "chef")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "cookbook")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_TTL", "1h")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test,http://b.test")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, Test, cfg.Env)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "host=db.internal port=6543 user=chef password=secret dbname=cookbook sslmode=disable", cfg.PostgresDSN())
	assert.Equal(t, time.Hour, cfg.JWTTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfigWithDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, Development, cfg.Env)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "recipes.db", cfg.DBPath)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 720*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 20, cfg.RecipeCreationPerHour)
	assert.Equal(t, 100, cfg.UpvotesPerHour)
	assert.Equal(t, "media", cfg.MediaRoot)
	assert.Empty(t, cfg.RedisURL)
}

func TestLoadConfigRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func validConfig() *Config {
	return &Config{
		Env:                   Development,
		DBDriver:              "sqlite",
		DBPath:                "recipes.db",
		JWTSecret:             "test-secret",
		JWTTTL:                time.Hour,
		RecipeCreationPerHour: 1,
		UpvotesPerHour:        1,
		MediaRoot:             "media",
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"unknown driver", func(c *Config) { c.DBDriver = "oracle" }, "DB_DRIVER"},
		{"postgres without host", func(c *Config) { c.DBDriver = "postgres"; c.DBName = "x"; c.DBUser = "x" }, "DB_HOST"},
		{"short production secret", func(c *Config) { c.Env = Production }, "JWT_SECRET"},
		{"zero upvote limit", func(c *Config) { c.UpvotesPerHour = 0 }, "RATE_LIMIT_UPVOTES_PER_HOUR"},
		{"endpoint without bucket", func(c *Config) { c.S3Endpoint = "http://minio:9000" }, "S3_ENDPOINT"},
		{"unknown env", func(c *Config) { c.Env = "staging" }, "ENV"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := ValidateConfig(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
