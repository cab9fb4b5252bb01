package config

type Config struct {
	// App: service identity shown in the startup banner
	App AppInfoConfig `mapstructure:"app"`

	// Server: network binding and request limits
	Server ServerConfig `mapstructure:"server"`

	// Database: SQLite file location and maintenance policy
	Database DatabaseConfig `mapstructure:"database"`

	// Static: pre-built frontend bundle served at "/"
	Static StaticConfig `mapstructure:"static"`

	// Security: CORS whitelist and request throttling
	Security SecurityConfig `mapstructure:"security"`

	// Logging: minimum level printed by pkg/logger
	Logging LoggingConfig `mapstructure:"logging"`

	// BaseURL: public root URL printed at startup
	BaseURL string `mapstructure:"base_url"`
}

type AppInfoConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
}

type ServerConfig struct {
	// Port: TCP port the HTTP server binds to (env PORT, default 3000)
	Port int `mapstructure:"port"`

	// Env: development, staging, production
	Env string `mapstructure:"env"`

	// MaxBodySize: JSON body limit, proofs travel base64-encoded (e.g. "10MB")
	MaxBodySize string `mapstructure:"max_body_size"`
}

type DatabaseConfig struct {
	// Path: SQLite file (env DB_PATH, default ./leaderboard.db)
	Path string `mapstructure:"path"`

	// MaxSize: file size above which the cleaner considers a VACUUM (e.g. "512MB")
	MaxSize string `mapstructure:"max_size"`

	// VacuumInterval: how often the cleaner inspects the file (e.g. "30m")
	VacuumInterval string `mapstructure:"vacuum_interval"`
}

type StaticConfig struct {
	// Dir: directory holding index.html and assets; empty disables serving
	Dir string `mapstructure:"dir"`
}

type SecurityConfig struct {
	// CorsOrigins: allowed origins, supports "*", "*.example.com", "**.example.com"
	CorsOrigins []string `mapstructure:"cors_origins"`

	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type RateLimitConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// Requests: allowed requests per Window
	Requests int `mapstructure:"requests"`

	// Window: e.g. "1s", "1m"
	Window string `mapstructure:"window"`

	// Burst: bucket size above the steady rate
	Burst int `mapstructure:"burst"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}
