package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"calboard/pkg/logger"
	"calboard/pkg/utils"
)

var AppConfig *Config

func (c *Config) GetBaseUrl() string {
	if c.BaseURL != "" {
		return strings.TrimRight(c.BaseURL, "/")
	}
	return fmt.Sprintf("http://localhost:%d", c.Server.Port)
}

// Load reads config.yaml (optional), environment variables and defaults into
// AppConfig. A configuration that fails validation terminates the process.
func Load() *Config {
	v := New()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logger.LogInfo("Config file not found. Using Environment Variables and Defaults.")
		} else {
			logger.LogWarn("Config file found but unreadable: %v", err)
		}
	}

	cfg, err := Parse(v)
	if err != nil {
		logger.LogFatal("CONFIGURATION ERROR: %v", err)
	}
	AppConfig = cfg

	logger.LogInfo("⚙️  %s v%s Initialized | Env: %s | Port: %d",
		cfg.App.Name,
		cfg.App.Version,
		cfg.Server.Env,
		cfg.Server.Port,
	)
	return cfg
}

// New returns a viper instance with defaults, config file lookup and env
// bindings in place, but nothing read yet.
func New() *viper.Viper {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("CALBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Plain names kept for deployments that predate the prefix.
	v.BindEnv("server.port", "CALBOARD_SERVER_PORT", "PORT")
	v.BindEnv("database.path", "CALBOARD_DATABASE_PATH", "DB_PATH")

	return v
}

// Parse unmarshals and validates whatever v currently holds.
func Parse(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg.BaseURL = cfg.GetBaseUrl()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// App
	v.SetDefault("app.name", "Calboard")
	v.SetDefault("app.version", "0.1.0")

	// Server
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.env", "development")
	v.SetDefault("server.max_body_size", "10MB")

	// Database
	v.SetDefault("database.path", "leaderboard.db")
	v.SetDefault("database.max_size", "512MB")
	v.SetDefault("database.vacuum_interval", "30m")

	// Static bundle
	v.SetDefault("static.dir", "public")

	// Security & Limits
	v.SetDefault("security.cors_origins", []string{"*"})
	v.SetDefault("security.rate_limit.enabled", false)
	v.SetDefault("security.rate_limit.requests", 20)
	v.SetDefault("security.rate_limit.window", "1s")
	v.SetDefault("security.rate_limit.burst", 50)

	v.SetDefault("logging.level", "info")
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}

	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("database.path cannot be empty")
	}

	if utils.SizeToBytes(c.Server.MaxBodySize, -1) <= 0 {
		return fmt.Errorf("invalid server.max_body_size '%s'", c.Server.MaxBodySize)
	}

	if utils.SizeToBytes(c.Database.MaxSize, -1) <= 0 {
		return fmt.Errorf("invalid database.max_size '%s'", c.Database.MaxSize)
	}

	if _, err := time.ParseDuration(c.Database.VacuumInterval); err != nil {
		return fmt.Errorf("invalid database.vacuum_interval format '%s': %v", c.Database.VacuumInterval, err)
	}

	if c.Security.RateLimit.Enabled {
		if _, err := time.ParseDuration(c.Security.RateLimit.Window); err != nil {
			return fmt.Errorf("invalid rate_limit.window format '%s': %v", c.Security.RateLimit.Window, err)
		}
	}

	if len(c.Security.CorsOrigins) == 0 {
		logger.LogWarn("security.cors_origins is empty: browsers on other origins will be refused.")
	}
	return nil
}
