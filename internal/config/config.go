package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Email     EmailConfig     `yaml:"email"`
	Gateway   GatewayConfig   `yaml:"gateway"`
	JWT       JWTConfig       `yaml:"jwt"`
	Log       LogConfig       `yaml:"log"`
	Rental    RentalConfig    `yaml:"rental"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// EmailConfig contains SendGrid settings
type EmailConfig struct {
	APIKey    string `yaml:"api_key"`
	FromEmail string `yaml:"from_email"`
	FromName  string `yaml:"from_name"`
}

// GatewayConfig contains payment gateway settings
type GatewayConfig struct {
	BaseURL   string `yaml:"base_url"`
	KeyID     string `yaml:"key_id"`
	KeySecret string `yaml:"key_secret"`
	// TimeoutSeconds bounds every outbound gateway call.
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// JWTConfig contains JWT token settings
type JWTConfig struct {
	Secret            string `yaml:"secret"`
	AccessTokenExpiry int    `yaml:"access_token_expiry_minutes"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// RentalConfig contains order lifecycle policy settings
type RentalConfig struct {
	// ApprovalTimeoutHours is how long a vendor has to act on a pending
	// order before it is auto-rejected and refunded.
	ApprovalTimeoutHours int `yaml:"approval_timeout_hours"`
	// ApprovalReminderHours is how long before the timeout the vendor
	// reminder goes out.
	ApprovalReminderHours int `yaml:"approval_reminder_hours"`
	// LateFeeGraceMinutes past the period end before a return counts late.
	LateFeeGraceMinutes int `yaml:"late_fee_grace_minutes"`
	// LateFeePctBps is the per-started-day late charge as basis points of
	// the item's daily rate (e.g. 15000 = 150%).
	LateFeePctBps int `yaml:"late_fee_pct_bps"`
	// CancelFullRefundHours before rental start for a 100% refund.
	CancelFullRefundHours int `yaml:"cancel_full_refund_hours"`
	// CancelPartialRefundPctBps refund inside the full-refund window but
	// before the rental starts.
	CancelPartialRefundPctBps int `yaml:"cancel_partial_refund_pct_bps"`
	// AutoApproveMaxCents: orders at or under this total skip vendor
	// approval regardless of the vendor's trusted flag. 0 disables.
	AutoApproveMaxCents int64 `yaml:"auto_approve_max_cents"`
	Currency            string `yaml:"currency"`
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	ExpireStaleApprovals  string `yaml:"expire_stale_approvals"`
	SendApprovalReminders string `yaml:"send_approval_reminders"`
	ActivateDueRentals    string `yaml:"activate_due_rentals"`
	DetectLateReturns     string `yaml:"detect_late_returns"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Override with environment variables if present
	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// Email
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.Email.APIKey = val
	}
	if val := os.Getenv("EMAIL_FROM"); val != "" {
		c.Email.FromEmail = val
	}

	// Gateway
	if val := os.Getenv("GATEWAY_BASE_URL"); val != "" {
		c.Gateway.BaseURL = val
	}
	if val := os.Getenv("GATEWAY_KEY_ID"); val != "" {
		c.Gateway.KeyID = val
	}
	if val := os.Getenv("GATEWAY_KEY_SECRET"); val != "" {
		c.Gateway.KeySecret = val
	}

	// JWT
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.JWT.Secret = val
	}

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	// Set defaults for log if not configured
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	// Database validation
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	// JWT validation
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}
	if c.JWT.AccessTokenExpiry == 0 {
		c.JWT.AccessTokenExpiry = 60
	}

	// Gateway validation
	if c.Gateway.KeyID == "" || c.Gateway.KeySecret == "" {
		return fmt.Errorf("gateway key id and secret are required")
	}
	if c.Gateway.TimeoutSeconds == 0 {
		c.Gateway.TimeoutSeconds = 10
	}

	// Rental policy defaults
	if c.Rental.ApprovalTimeoutHours == 0 {
		c.Rental.ApprovalTimeoutHours = 24
	}
	if c.Rental.ApprovalReminderHours == 0 {
		c.Rental.ApprovalReminderHours = 6
	}
	if c.Rental.LateFeePctBps == 0 {
		c.Rental.LateFeePctBps = 15000 // 150% of daily rate per started day
	}
	if c.Rental.CancelFullRefundHours == 0 {
		c.Rental.CancelFullRefundHours = 48
	}
	if c.Rental.CancelPartialRefundPctBps == 0 {
		c.Rental.CancelPartialRefundPctBps = 5000 // 50%
	}
	if c.Rental.Currency == "" {
		c.Rental.Currency = "INR"
	}

	// Scheduler defaults
	if c.Scheduler.ExpireStaleApprovals == "" {
		c.Scheduler.ExpireStaleApprovals = "0 */10 * * * *" // every 10 minutes
	}
	if c.Scheduler.SendApprovalReminders == "" {
		c.Scheduler.SendApprovalReminders = "0 0 * * * *" // hourly
	}
	if c.Scheduler.ActivateDueRentals == "" {
		c.Scheduler.ActivateDueRentals = "0 */15 * * * *" // every 15 minutes
	}
	if c.Scheduler.DetectLateReturns == "" {
		c.Scheduler.DetectLateReturns = "0 30 * * * *" // hourly at :30
	}

	return nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
