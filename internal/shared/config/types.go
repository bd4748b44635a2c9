// Package config holds the configuration sections shared by the application
// and infrastructure layers.
package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port" validate:"gt=0,lte=65535"`
	Mode           string   `mapstructure:"mode" validate:"oneof=debug release test"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	// RequestsPerMinute caps requests per client IP. Zero disables the limit.
	RequestsPerMinute int `mapstructure:"requests_per_minute" validate:"gte=0"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func (s *ServerConfig) IsDebug() bool {
	return s.Mode == "debug"
}

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver" validate:"oneof=mysql sqlite"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database" validate:"required"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

// GetDSN returns the driver-specific data source name. For sqlite, Database
// is the file path (or ":memory:").
func (d *DatabaseConfig) GetDSN() string {
	if d.Driver == "sqlite" {
		return d.Database
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format" validate:"oneof=console json"`
	OutputPath string `mapstructure:"output_path"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// PriorityConfig parameterises the vote-driven priority score.
type PriorityConfig struct {
	VoteMultiplier float64       `mapstructure:"vote_multiplier" validate:"gt=0"`
	BaseScores     TierScores    `mapstructure:"base_scores"`
	Thresholds     TierThreshold `mapstructure:"thresholds"`
}

// TierScores is the fixed score every complaint of a tier starts from.
type TierScores struct {
	Low      float64 `mapstructure:"low" validate:"gte=0"`
	Medium   float64 `mapstructure:"medium" validate:"gte=0"`
	High     float64 `mapstructure:"high" validate:"gte=0"`
	Critical float64 `mapstructure:"critical" validate:"gte=0"`
}

// TierThreshold holds the lower bound of each tier above Low.
type TierThreshold struct {
	Medium   float64 `mapstructure:"medium" validate:"gt=0"`
	High     float64 `mapstructure:"high" validate:"gtfield=Medium"`
	Critical float64 `mapstructure:"critical" validate:"gtfield=High"`
}

// RoutingConfig controls placement of Department complaints.
type RoutingConfig struct {
	// DepartmentFallback is "submitter" to route uncoded Department complaints
	// to the submitter's own department, or "reject" to refuse them.
	DepartmentFallback string        `mapstructure:"department_fallback" validate:"oneof=submitter reject"`
	AlertCooldown      time.Duration `mapstructure:"alert_cooldown"`
}

func (r *RoutingConfig) RejectsUncodedDepartment() bool {
	return r.DepartmentFallback == "reject"
}

// RetryConfig bounds the optimistic-lock retry loop of mutating operations.
type RetryConfig struct {
	MaxAttempts     uint          `mapstructure:"max_attempts" validate:"gte=1"`
	InitialInterval time.Duration `mapstructure:"initial_interval"`
	MaxInterval     time.Duration `mapstructure:"max_interval"`
}

type IntegrityConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Interval time.Duration `mapstructure:"interval"`
}

// ThrottleConfig caps how many complaints one student may submit. Zero
// disables a window.
type ThrottleConfig struct {
	SubmissionsPerHour int `mapstructure:"submissions_per_hour" validate:"gte=0"`
	SubmissionsPerDay  int `mapstructure:"submissions_per_day" validate:"gte=0"`
}

// EmailConfig configures the SMTP relay that receives operational alerts.
// An empty Host disables email delivery.
type EmailConfig struct {
	SMTPHost     string   `mapstructure:"smtp_host"`
	SMTPPort     int      `mapstructure:"smtp_port" validate:"gte=0,lte=65535"`
	SMTPUser     string   `mapstructure:"smtp_user"`
	SMTPPassword string   `mapstructure:"smtp_password"`
	FromAddress  string   `mapstructure:"from_address"`
	AlertTo      []string `mapstructure:"alert_to"`
}

func (e *EmailConfig) Enabled() bool {
	return e.SMTPHost != "" && len(e.AlertTo) > 0
}
