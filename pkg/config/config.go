package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for latefee.
// Configuration can come from a YAML file (config.yaml) or environment
// variables. Environment variables always override YAML values. Secrets
// (API keys, passwords, session secret) must only come from the environment.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"PORT" env-default:"8080"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	Version  string `yaml:"-"` // Set at load time, not from config

	// SessionSecret signs the flash-message cookie. Any passphrase works;
	// it is hashed to a 32-byte key. Required.
	SessionSecret string `yaml:"-" env:"SESSION_SECRET"`

	// Database configuration (PostgreSQL)
	Database DatabaseConfig `yaml:"database"`

	// MigrationsPath is the directory containing golang-migrate SQL files.
	MigrationsPath string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"migrations"`

	// OMDB configures the movie-metadata lookup client.
	OMDB OMDBConfig `yaml:"omdb"`

	// LLM configures the narrative-generation client.
	LLM LLMConfig `yaml:"llm"`
}

// DatabaseConfig holds PostgreSQL database configuration.
type DatabaseConfig struct {
	Host           string `yaml:"host" env:"PGHOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"PGPORT" env-default:"5432"`
	User           string `yaml:"user" env:"PGUSER" env-default:"latefee"`
	Password       string `yaml:"-" env:"PGPASSWORD"` // Secret - not in YAML
	Database       string `yaml:"database" env:"PGDATABASE" env-default:"latefee_movies"`
	MaxConnections int32  `yaml:"max_connections" env:"PGMAX_CONNECTIONS" env-default:"25"`
	SSLMode        string `yaml:"ssl_mode" env:"PGSSLMODE" env-default:"disable"`
}

// URL builds a postgres connection string from the parts.
func (c *DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, c.SSLMode)
}

// OMDBConfig holds settings for the OMDb metadata lookup client.
type OMDBConfig struct {
	BaseURL        string `yaml:"base_url" env:"OMDB_BASE_URL" env-default:"http://www.omdbapi.com/"`
	APIKey         string `yaml:"-" env:"OMDB_API_KEY"` // Secret - not in YAML
	MaxRetries     int    `yaml:"max_retries" env:"OMDB_MAX_RETRIES" env-default:"3"`
	TimeoutSeconds int    `yaml:"timeout_seconds" env:"OMDB_TIMEOUT_SECONDS" env-default:"5"`
	// SnapshotPath is where the raw payload of the last successful lookup
	// is written, best-effort, for inspection. Empty disables the write.
	SnapshotPath string `yaml:"snapshot_path" env:"OMDB_SNAPSHOT_PATH" env-default:"data/response.json"`
}

// Timeout returns the per-attempt request timeout.
func (c *OMDBConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// LLMConfig holds settings for the narrative-generation client.
type LLMConfig struct {
	// Provider selects the chat backend: "openai" (default, covers any
	// OpenAI-compatible endpoint) or "anthropic".
	Provider        string `yaml:"provider" env:"LLM_PROVIDER" env-default:"openai"`
	BaseURL         string `yaml:"base_url" env:"LLM_BASE_URL" env-default:""`
	Model           string `yaml:"model" env:"LLM_MODEL" env-default:"gpt-4o-mini"`
	OpenAIAPIKey    string `yaml:"-" env:"OPENAI_API_KEY"`    // Secret - not in YAML
	AnthropicAPIKey string `yaml:"-" env:"ANTHROPIC_API_KEY"` // Secret - not in YAML
}

// Load reads configuration from config.yaml (if present) and the
// environment, then validates it.
func Load(version string) (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat("config.yaml"); err == nil {
		if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
			return nil, fmt.Errorf("failed to read config.yaml: %w", err)
		}
	} else {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	cfg.Version = version

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that required secrets and sane values are present.
func (c *Config) Validate() error {
	if c.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}
	if c.OMDB.APIKey == "" {
		return fmt.Errorf("OMDB_API_KEY is required")
	}
	if c.OMDB.MaxRetries < 1 {
		return fmt.Errorf("OMDB_MAX_RETRIES must be >= 1, got %d", c.OMDB.MaxRetries)
	}
	if c.OMDB.TimeoutSeconds < 1 {
		return fmt.Errorf("OMDB_TIMEOUT_SECONDS must be >= 1, got %d", c.OMDB.TimeoutSeconds)
	}
	switch c.LLM.Provider {
	case "openai", "anthropic":
	default:
		return fmt.Errorf("LLM_PROVIDER must be openai or anthropic, got %q", c.LLM.Provider)
	}
	return nil
}
