// internal/common/config/config.go
package config

import "time"

type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Indices   IndexConfig     `mapstructure:"indices"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Search    SearchConfig    `mapstructure:"search"`
	Analytics AnalyticsConfig `mapstructure:"analytics"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address         string   `mapstructure:"address"`
	MetricsAddress  string   `mapstructure:"metrics_address"`
	ReadTimeout     int      `mapstructure:"read_timeout_ms"`
	WriteTimeout    int      `mapstructure:"write_timeout_ms"`
	ShutdownTimeout int      `mapstructure:"shutdown_timeout_ms"`
	CORSOrigins     []string `mapstructure:"cors_origins"`
}

type DatabaseConfig struct {
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type ElasticsearchConfig struct {
	Addresses  []string `mapstructure:"addresses"`
	Username   string   `mapstructure:"username"`
	Password   string   `mapstructure:"password"`
	SSLEnabled bool     `mapstructure:"ssl_enabled"`
	URL        string   `mapstructure:"url"` // single URL, wins over Addresses
	MaxRetries int      `mapstructure:"max_retries"`
}

func (e ElasticsearchConfig) GetURL() string {
	if e.URL != "" {
		return e.URL
	}
	if len(e.Addresses) > 0 {
		return e.Addresses[0]
	}
	return ""
}

// GetAddresses returns the node list handed to the client.
func (e ElasticsearchConfig) GetAddresses() []string {
	if e.URL != "" {
		return []string{e.URL}
	}
	return e.Addresses
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// IndexConfig names the Elasticsearch indices holding each collection.
type IndexConfig struct {
	Offers string `mapstructure:"offers"`
	Users  string `mapstructure:"users"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	Issuer    string `mapstructure:"issuer"`
	TokenTTL  int    `mapstructure:"token_ttl_minutes"`
}

type SearchConfig struct {
	DefaultLimit int `mapstructure:"default_limit"`
	MaxLimit     int `mapstructure:"max_limit"`
	Timeout      int `mapstructure:"timeout_ms"`
}

type AnalyticsConfig struct {
	Timeout        int `mapstructure:"timeout_ms"`
	MaxConcurrency int `mapstructure:"max_concurrency"`
	TopSkills      int `mapstructure:"top_skills"`
	TopCompanies   int `mapstructure:"top_companies"`
	TopLocations   int `mapstructure:"top_locations"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

type TracingConfig struct {
	Enabled        bool    `mapstructure:"enabled"`
	JaegerEndpoint string  `mapstructure:"jaeger_endpoint"`
	SampleRatio    float64 `mapstructure:"sample_ratio"`
}

// GetDuration converts a millisecond setting into a time.Duration.
func GetDuration(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
