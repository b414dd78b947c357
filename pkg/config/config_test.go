package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SESSION_SECRET", "test-secret")
	t.Setenv("OMDB_API_KEY", "test-key")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load("test-version")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "test-version", cfg.Version)
	assert.Equal(t, "http://www.omdbapi.com/", cfg.OMDB.BaseURL)
	assert.Equal(t, 3, cfg.OMDB.MaxRetries)
	assert.Equal(t, 5*time.Second, cfg.OMDB.Timeout())
	assert.Equal(t, "data/response.json", cfg.OMDB.SnapshotPath)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "migrations", cfg.MigrationsPath)
}

func TestLoad_EnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("OMDB_MAX_RETRIES", "5")
	t.Setenv("LLM_PROVIDER", "anthropic")

	cfg, err := Load("dev")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 5, cfg.OMDB.MaxRetries)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
}

func TestLoad_MissingSessionSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("OMDB_API_KEY", "test-key")

	_, err := Load("dev")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_SECRET")
}

func TestLoad_MissingAPIKey(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")
	t.Setenv("OMDB_API_KEY", "")

	_, err := Load("dev")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OMDB_API_KEY")
}

func TestValidate_BadValues(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "zero retries",
			mutate:  func(c *Config) { c.OMDB.MaxRetries = 0 },
			wantErr: "OMDB_MAX_RETRIES",
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.OMDB.TimeoutSeconds = 0 },
			wantErr: "OMDB_TIMEOUT_SECONDS",
		},
		{
			name:    "unknown provider",
			mutate:  func(c *Config) { c.LLM.Provider = "bard" },
			wantErr: "LLM_PROVIDER",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				SessionSecret: "s",
				OMDB:          OMDBConfig{APIKey: "k", MaxRetries: 3, TimeoutSeconds: 5},
				LLM:           LLMConfig{Provider: "openai"},
			}
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDatabaseConfig_URL(t *testing.T) {
	c := &DatabaseConfig{
		Host:     "db.example.com",
		Port:     5433,
		User:     "latefee",
		Password: "pw",
		Database: "latefee_movies",
		SSLMode:  "require",
	}
	assert.Equal(t,
		"postgres://latefee:pw@db.example.com:5433/latefee_movies?sslmode=require",
		c.URL())
}
