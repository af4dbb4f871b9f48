// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configs/config.yaml, merges config.<APP_ENVIRONMENT>.yaml on
// top, then applies environment overrides and defaults.
func Load() (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // env overlay is optional

	return finish(v)
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return finish(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	// APIS_OPENAI_API_KEY overrides apis.openai.api_key, and so on.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// Zero is meaningful for these, so they default through viper rather
	// than applyDefaults.
	v.SetDefault("chat.session_request_limit", 5)
	v.SetDefault("chat.faq_threshold", 0.4)
	return v
}

func finish(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}
	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// findProjectRoot walks up from the working directory looking for go.mod.
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// expandEnvVars resolves ${VAR} placeholders in string values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			expanded := os.ExpandEnv(strVal)
			if expanded != strVal && expanded != "" {
				v.Set(key, expanded)
			}
		}
	}
}

func overrideEmptyConfig(cfg *Config) {
	setIfEmpty(&cfg.APIs.OpenAI.APIKey, "OPENAI_API_KEY")
	setIfEmpty(&cfg.APIs.Translation.APIKey, "TRANSLATION_API_KEY")
	setIfEmpty(&cfg.APIs.Translation.BaseURL, "TRANSLATION_BASE_URL")
	setIfEmpty(&cfg.Database.Redis.Address, "REDIS_ADDRESS")
	setIfEmpty(&cfg.Database.Postgres.User, "DB_USER")
	setIfEmpty(&cfg.Database.Postgres.Password, "DB_PASSWORD")
}

func setIfEmpty(dst *string, envKey string) {
	if *dst != "" {
		return
	}
	if val := os.Getenv(envKey); val != "" {
		*dst = val
	}
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "archibald"
	}

	if cfg.Server.Address == "" {
		cfg.Server.Address = ":5000"
	}
	if cfg.Server.SessionCookie == "" {
		cfg.Server.SessionCookie = "archibald_session"
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = 30000
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 10000
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 35000
	}

	if cfg.Camunda.MaxJobsActive == 0 {
		cfg.Camunda.MaxJobsActive = 10
	}
	if cfg.Camunda.Timeout == 0 {
		cfg.Camunda.Timeout = 30000
	}
	if cfg.Camunda.RequestTimeout == 0 {
		cfg.Camunda.RequestTimeout = 30000
	}

	if cfg.Database.Postgres.Port == 0 {
		cfg.Database.Postgres.Port = 5432
	}
	if cfg.Database.Postgres.MaxConnections == 0 {
		cfg.Database.Postgres.MaxConnections = 5
	}
	if cfg.Database.Postgres.MaxIdle == 0 {
		cfg.Database.Postgres.MaxIdle = 2
	}
	if cfg.Database.Postgres.SSLMode == "" {
		cfg.Database.Postgres.SSLMode = "disable"
	}

	if cfg.Knowledge.Source == "" {
		cfg.Knowledge.Source = KnowledgeSourceFile
	}
	if cfg.Knowledge.Path == "" {
		cfg.Knowledge.Path = "configs/knowledge.json"
	}
	if cfg.Knowledge.Table == "" {
		cfg.Knowledge.Table = "knowledge_sections"
	}

	if cfg.APIs.OpenAI.Model == "" {
		cfg.APIs.OpenAI.Model = "gpt-4o-mini"
	}
	if cfg.APIs.OpenAI.MaxTokens == 0 {
		cfg.APIs.OpenAI.MaxTokens = 300
	}
	if cfg.APIs.OpenAI.Temperature == 0 {
		cfg.APIs.OpenAI.Temperature = 0.7
	}
	if cfg.APIs.OpenAI.Timeout == 0 {
		cfg.APIs.OpenAI.Timeout = 20000
	}
	if cfg.APIs.OpenAI.RequestsPerSecond == 0 {
		cfg.APIs.OpenAI.RequestsPerSecond = 3
	}
	if cfg.APIs.OpenAI.Burst == 0 {
		cfg.APIs.OpenAI.Burst = 5
	}
	if cfg.APIs.Translation.BaseURL == "" {
		cfg.APIs.Translation.BaseURL = "http://localhost:5050"
	}
	if cfg.APIs.Translation.Timeout == 0 {
		cfg.APIs.Translation.Timeout = 5000
	}
	if cfg.APIs.Translation.RequestsPerSecond == 0 {
		cfg.APIs.Translation.RequestsPerSecond = 10
	}
	if cfg.APIs.Translation.Burst == 0 {
		cfg.APIs.Translation.Burst = 15
	}

	if cfg.Chat.WorkingLanguage == "" {
		cfg.Chat.WorkingLanguage = "fr"
	}
	if cfg.Chat.FallbackLanguage == "" {
		cfg.Chat.FallbackLanguage = "en"
	}
	if len(cfg.Chat.SupportedLanguages) == 0 {
		cfg.Chat.SupportedLanguages = []string{"fr", "en", "de", "es", "pt", "nl"}
	}
	if cfg.Chat.SessionWindow == 0 {
		cfg.Chat.SessionWindow = 24 * 60 * 60 * 1000
	}
	if cfg.Chat.SiteURL == "" {
		cfg.Chat.SiteURL = "https://phareducapferret.com"
	}
	if cfg.Chat.ScheduleURL == "" {
		cfg.Chat.ScheduleURL = "https://phareducapferret.com/horaires-et-tarifs/"
	}
	if cfg.Chat.MaxReplyChars == 0 {
		cfg.Chat.MaxReplyChars = 450
	}
	if cfg.Chat.Timezone == "" {
		cfg.Chat.Timezone = "Europe/Paris"
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
}

func validateConfig(cfg *Config) error {
	switch cfg.Knowledge.Source {
	case KnowledgeSourceFile:
		if cfg.Knowledge.Path == "" {
			return fmt.Errorf("knowledge.path is required for the file source")
		}
	case KnowledgeSourcePostgres:
		if cfg.Database.Postgres.Host == "" {
			return fmt.Errorf("database.postgres.host is required for the postgres knowledge source")
		}
		if cfg.Database.Postgres.Database == "" {
			return fmt.Errorf("database.postgres.database is required for the postgres knowledge source")
		}
		if cfg.Database.Postgres.User == "" {
			return fmt.Errorf("database.postgres.user is required for the postgres knowledge source")
		}
	default:
		return fmt.Errorf("knowledge.source must be %q or %q, got %q",
			KnowledgeSourceFile, KnowledgeSourcePostgres, cfg.Knowledge.Source)
	}

	if cfg.Camunda.Enabled && cfg.Camunda.BrokerAddress == "" {
		return fmt.Errorf("camunda.broker_address is required when camunda is enabled")
	}

	if !contains(cfg.Chat.SupportedLanguages, cfg.Chat.FallbackLanguage) {
		return fmt.Errorf("chat.fallback_language %q is not in chat.supported_languages", cfg.Chat.FallbackLanguage)
	}
	if !contains(cfg.Chat.SupportedLanguages, cfg.Chat.WorkingLanguage) {
		return fmt.Errorf("chat.working_language %q is not in chat.supported_languages", cfg.Chat.WorkingLanguage)
	}
	if cfg.Chat.SessionRequestLimit < 0 {
		return fmt.Errorf("chat.session_request_limit must not be negative")
	}
	if cfg.Chat.FAQThreshold < 0 || cfg.Chat.FAQThreshold > 1 {
		return fmt.Errorf("chat.faq_threshold must be within [0, 1]")
	}
	if _, err := time.LoadLocation(cfg.Chat.Timezone); err != nil {
		return fmt.Errorf("chat.timezone: %w", err)
	}

	return nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
