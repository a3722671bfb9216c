// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configs/config.yaml, merges config.<APP_ENVIRONMENT>.yaml on top,
// then lets environment variables override any key (server.address becomes
// SERVER_ADDRESS).
func Load() (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigName("config")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")
	if root := findProjectRoot(); root != "" {
		v.AddConfigPath(filepath.Join(root, "configs"))
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}
	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // overlay is optional

	return finish(v)
}

// LoadFromFile reads a single YAML file with the same env override rules as Load.
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return finish(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)
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

// setDefaults registers every key so AutomaticEnv can override keys that are
// absent from the YAML files.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "jobboard-api")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.environment", "development")

	v.SetDefault("server.address", ":4000")
	v.SetDefault("server.metrics_address", ":8080")
	v.SetDefault("server.read_timeout_ms", 15000)
	v.SetDefault("server.write_timeout_ms", 30000)
	v.SetDefault("server.shutdown_timeout_ms", 30000)
	v.SetDefault("server.cors_origins", []string{"http://localhost:3000"})

	v.SetDefault("database.elasticsearch.url", "")
	v.SetDefault("database.elasticsearch.addresses", []string{"http://localhost:9200"})
	v.SetDefault("database.elasticsearch.username", "")
	v.SetDefault("database.elasticsearch.password", "")
	v.SetDefault("database.elasticsearch.ssl_enabled", false)
	v.SetDefault("database.elasticsearch.max_retries", 3)
	v.SetDefault("database.redis.address", "localhost:6379")
	v.SetDefault("database.redis.password", "")
	v.SetDefault("database.redis.db", 0)

	v.SetDefault("indices.offers", "offers")
	v.SetDefault("indices.users", "users")

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.issuer", "jobboard-api")
	v.SetDefault("auth.token_ttl_minutes", 60*24*7)

	v.SetDefault("search.default_limit", 20)
	v.SetDefault("search.max_limit", 100)
	v.SetDefault("search.timeout_ms", 10000)

	v.SetDefault("analytics.timeout_ms", 15000)
	v.SetDefault("analytics.max_concurrency", 8)
	v.SetDefault("analytics.top_skills", 20)
	v.SetDefault("analytics.top_companies", 15)
	v.SetDefault("analytics.top_locations", 10)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stdout")

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.jaeger_endpoint", "")
	v.SetDefault("tracing.sample_ratio", 1.0)
}

func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env", // tests under test/e2e
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
			break
		}
		dir = parent
	}
	return ""
}

func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			if expanded := os.ExpandEnv(strVal); expanded != strVal {
				v.Set(key, expanded)
			}
		}
	}
}

// overrideEmptyConfig honours the short variable names used by docker-compose files.
func overrideEmptyConfig(cfg *Config) {
	if cfg.Auth.JWTSecret == "" {
		if val := os.Getenv("JWT_SECRET"); val != "" {
			cfg.Auth.JWTSecret = val
		}
	}
	if cfg.Database.Elasticsearch.URL == "" {
		if val := os.Getenv("ELASTICSEARCH_URL"); val != "" {
			cfg.Database.Elasticsearch.URL = val
		}
	}
	if val := os.Getenv("REDIS_ADDR"); val != "" && cfg.Database.Redis.Address == "localhost:6379" {
		cfg.Database.Redis.Address = val
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Search.DefaultLimit <= 0 {
		cfg.Search.DefaultLimit = 20
	}
	if cfg.Search.MaxLimit <= 0 {
		cfg.Search.MaxLimit = 100
	}
	if cfg.Search.DefaultLimit > cfg.Search.MaxLimit {
		cfg.Search.DefaultLimit = cfg.Search.MaxLimit
	}
	if cfg.Analytics.MaxConcurrency <= 0 {
		cfg.Analytics.MaxConcurrency = 8
	}
	if cfg.Analytics.TopSkills <= 0 {
		cfg.Analytics.TopSkills = 20
	}
	if cfg.Analytics.TopCompanies <= 0 {
		cfg.Analytics.TopCompanies = 15
	}
	if cfg.Analytics.TopLocations <= 0 {
		cfg.Analytics.TopLocations = 10
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Address == "" {
		return fmt.Errorf("server.address is required")
	}
	if len(cfg.Database.Elasticsearch.Addresses) == 0 && cfg.Database.Elasticsearch.URL == "" {
		return fmt.Errorf("database.elasticsearch.addresses or url is required")
	}
	if cfg.Database.Redis.Address == "" {
		return fmt.Errorf("database.redis.address is required")
	}
	if cfg.Indices.Offers == "" || cfg.Indices.Users == "" {
		return fmt.Errorf("indices.offers and indices.users are required")
	}
	if cfg.Indices.Offers == cfg.Indices.Users {
		return fmt.Errorf("indices.offers and indices.users must differ")
	}
	if len(cfg.Auth.JWTSecret) < 16 {
		return fmt.Errorf("auth.jwt_secret must be at least 16 characters")
	}
	if cfg.Tracing.Enabled && cfg.Tracing.JaegerEndpoint == "" {
		return fmt.Errorf("tracing.jaeger_endpoint is required when tracing is enabled")
	}
	return nil
}
