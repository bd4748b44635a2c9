package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "campusvoice/internal/shared/config"
	"campusvoice/internal/shared/utils"
)

type Config struct {
	Timezone  string                       `mapstructure:"timezone"`
	Server    sharedConfig.ServerConfig    `mapstructure:"server"`
	Database  sharedConfig.DatabaseConfig  `mapstructure:"database"`
	Logger    sharedConfig.LoggerConfig    `mapstructure:"logger"`
	Redis     sharedConfig.RedisConfig     `mapstructure:"redis"`
	Priority  sharedConfig.PriorityConfig  `mapstructure:"priority"`
	Routing   sharedConfig.RoutingConfig   `mapstructure:"routing"`
	Retry     sharedConfig.RetryConfig     `mapstructure:"retry"`
	Integrity sharedConfig.IntegrityConfig `mapstructure:"integrity"`
	Throttle  sharedConfig.ThrottleConfig  `mapstructure:"throttle"`
	Email     sharedConfig.EmailConfig     `mapstructure:"email"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load loads configuration from file and environment variables. A missing
// config file is tolerated; defaults and CAMPUSVOICE_* variables apply.
func Load(env string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../configs")
	v.AddConfigPath("../../configs")

	v.SetEnvPrefix("CAMPUSVOICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Allow env parameter to override server mode if provided
	if env != "" && env != "default" {
		v.Set("server.mode", env)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := utils.ValidateStruct(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("timezone", "Asia/Kolkata")

	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.requests_per_minute", 120)

	// Database defaults
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.username", "root")
	v.SetDefault("database.password", "")
	v.SetDefault("database.database", "campusvoice.db")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", 60)

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	// Redis defaults
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// Priority defaults
	v.SetDefault("priority.vote_multiplier", 2.0)
	v.SetDefault("priority.base_scores.low", 10)
	v.SetDefault("priority.base_scores.medium", 30)
	v.SetDefault("priority.base_scores.high", 60)
	v.SetDefault("priority.base_scores.critical", 100)
	v.SetDefault("priority.thresholds.medium", 25)
	v.SetDefault("priority.thresholds.high", 50)
	v.SetDefault("priority.thresholds.critical", 90)

	// Routing defaults
	v.SetDefault("routing.department_fallback", "submitter")
	v.SetDefault("routing.alert_cooldown", "15m")

	// Retry defaults
	v.SetDefault("retry.max_attempts", 5)
	v.SetDefault("retry.initial_interval", "20ms")
	v.SetDefault("retry.max_interval", "500ms")

	// Integrity defaults
	v.SetDefault("integrity.enabled", true)
	v.SetDefault("integrity.interval", "1h")

	// Submission throttle defaults
	v.SetDefault("throttle.submissions_per_hour", 5)
	v.SetDefault("throttle.submissions_per_day", 20)

	// Email defaults
	v.SetDefault("email.smtp_host", "")
	v.SetDefault("email.smtp_port", 587)
	v.SetDefault("email.from_address", "campusvoice@localhost")
	v.SetDefault("email.alert_to", []string{})
}
