package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the support-desk backend
type Config struct {
	General GeneralConfig `mapstructure:"general"`
	LLM     LLMConfig     `mapstructure:"llm"`
	Storage StorageConfig `mapstructure:"storage"`
	Memory  MemoryConfig  `mapstructure:"memory"`
}

// GeneralConfig contains general application settings
type GeneralConfig struct {
	Listen          string `mapstructure:"listen"`
	Debug           bool   `mapstructure:"debug"`
	LogLevel        string `mapstructure:"log_level"`
	DefaultLanguage string `mapstructure:"default_language"`
}

// LLMConfig contains completion/embedding provider settings
type LLMConfig struct {
	Provider string       `mapstructure:"provider"` // openai only for now
	OpenAI   OpenAIConfig `mapstructure:"openai"`
}

// OpenAIConfig contains the OpenAI provider settings
type OpenAIConfig struct {
	APIKey          string        `mapstructure:"api_key"`
	BaseURL         string        `mapstructure:"base_url"`
	CompletionModel string        `mapstructure:"completion_model"`
	EmbeddingModel  string        `mapstructure:"embedding_model"`
	Temperature     float64       `mapstructure:"temperature"`
	MaxTokens       int           `mapstructure:"max_tokens"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

func (l LLMConfig) Validate() error {
	if l.Provider == "" {
		return fmt.Errorf("llm.provider required")
	}
	if l.Provider == "openai" && strings.TrimSpace(l.OpenAI.APIKey) == "" {
		return fmt.Errorf("llm.openai.api_key required (or OPENAI_API_KEY)")
	}
	return nil
}

// StorageConfig contains record store and coordination settings
type StorageConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

// PostgresConfig contains Postgres connection settings
type PostgresConfig struct {
	URL      string        `mapstructure:"url"`
	Host     string        `mapstructure:"host"`
	Port     string        `mapstructure:"port"`
	User     string        `mapstructure:"user"`
	Password string        `mapstructure:"password"`
	DBName   string        `mapstructure:"dbname"`
	SSLMode  string        `mapstructure:"sslmode"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

func (p PostgresConfig) Validate() error {
	if strings.TrimSpace(p.URL) != "" {
		return nil
	}
	if strings.TrimSpace(p.Host) == "" {
		return fmt.Errorf("storage.postgres.host required when url is not provided")
	}
	if strings.TrimSpace(p.DBName) == "" {
		return fmt.Errorf("storage.postgres.dbname required when url is not provided")
	}
	return nil
}

// DSN builds the postgres connection string from the configured fields.
func (p PostgresConfig) DSN() string {
	if p.URL != "" {
		return p.URL
	}
	port := p.Port
	if port == "" {
		port = "5432"
	}
	ssl := p.SSLMode
	if ssl == "" {
		ssl = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", p.User, p.Password, p.Host, port, p.DBName, ssl)
}

// RedisConfig contains Redis connection settings. Redis is optional: when host
// is empty the ticket claim stays in-process.
type RedisConfig struct {
	Host     string        `mapstructure:"host"`
	Port     string        `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// Enabled reports whether a redis endpoint is configured.
func (r RedisConfig) Enabled() bool { return strings.TrimSpace(r.Host) != "" }

// MemoryConfig controls the per-session vector store and session registry.
type MemoryConfig struct {
	EmbeddingDimensions int           `mapstructure:"embedding_dimensions"`
	SearchTopK          int           `mapstructure:"search_top_k"`
	SessionTTL          time.Duration `mapstructure:"session_ttl"`
	MaxSessions         int           `mapstructure:"max_sessions"`
	TicketClaimTTL      time.Duration `mapstructure:"ticket_claim_ttl"`
}

func (m MemoryConfig) Validate() error {
	if m.EmbeddingDimensions <= 0 {
		return fmt.Errorf("memory.embedding_dimensions must be > 0")
	}
	if m.SearchTopK <= 0 {
		return fmt.Errorf("memory.search_top_k must be > 0")
	}
	return nil
}

// LoadConfig loads config from file
func LoadConfig(path string) *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("json")
	viper.SetDefault("general.listen", ":8001")
	viper.SetDefault("general.log_level", "info")
	viper.SetDefault("general.default_language", "en")
	viper.SetDefault("llm.provider", "openai")
	viper.SetDefault("llm.openai.completion_model", "gpt-4o-mini")
	viper.SetDefault("llm.openai.embedding_model", "text-embedding-3-small")
	viper.SetDefault("llm.openai.temperature", 0.2)
	viper.SetDefault("llm.openai.max_tokens", 1024)
	viper.SetDefault("llm.openai.timeout", 30*time.Second)
	viper.SetDefault("memory.embedding_dimensions", 384)
	viper.SetDefault("memory.search_top_k", 5)
	viper.SetDefault("memory.session_ttl", 12*time.Hour)
	viper.SetDefault("memory.max_sessions", 10000)
	viper.SetDefault("memory.ticket_claim_ttl", 24*time.Hour)

	if path == "" {
		viper.AddConfigPath("./config")
		viper.AddConfigPath(".")
		exe, _ := os.Executable()
		exeDir := filepath.Dir(exe)
		viper.AddConfigPath(exeDir)
		viper.AddConfigPath(filepath.Join(exeDir, ".."))
	} else {
		viper.SetConfigFile(path)
	}

	viper.SetEnvPrefix("AISHA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match (AISHA_*)

	if err := viper.ReadInConfig(); err != nil {
		panic(fmt.Errorf("fatal error config file: %w", err))
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		panic(fmt.Errorf("fatal error config file: %w", err))
	}

	// env fallback matching the provider's conventional variable
	if config.LLM.OpenAI.APIKey == "" {
		config.LLM.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	if err := config.LLM.Validate(); err != nil {
		panic(err)
	}
	if err := config.Storage.Postgres.Validate(); err != nil {
		panic(err)
	}
	if err := config.Memory.Validate(); err != nil {
		panic(err)
	}
	return &config
}
