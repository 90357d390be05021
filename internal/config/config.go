package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Uploads  UploadsConfig  `mapstructure:"uploads"`
	Backup   BackupConfig   `mapstructure:"backup"`
	Audit    AuditConfig    `mapstructure:"audit"`
	Rate     RateConfig     `mapstructure:"rate_limit"`
	Admin    AdminConfig    `mapstructure:"admin"`
}

type ServerConfig struct {
	Port           int `mapstructure:"port" envconfig:"SERVER_PORT"`
	TimeoutSeconds int `mapstructure:"timeout_seconds" envconfig:"SERVER_TIMEOUT_SECONDS"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path" envconfig:"DATABASE_PATH"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret" envconfig:"JWT_SECRET"`
	ExpiryHours int    `mapstructure:"expiry_hours" envconfig:"JWT_EXPIRY_HOURS"`
}

func (c JWTConfig) Expiry() time.Duration {
	return time.Duration(c.ExpiryHours) * time.Hour
}

type UploadsConfig struct {
	Dir string `mapstructure:"dir" envconfig:"UPLOADS_DIR"`
}

type BackupConfig struct {
	Dir string `mapstructure:"dir" envconfig:"BACKUP_DIR"`
}

type AuditConfig struct {
	RetentionDays int `mapstructure:"retention_days" envconfig:"AUDIT_RETENTION_DAYS"`
}

func (c AuditConfig) Retention() time.Duration {
	return time.Duration(c.RetentionDays) * 24 * time.Hour
}

type RateConfig struct {
	RPS   float64 `mapstructure:"rps" envconfig:"RATE_LIMIT_RPS"`
	Burst int     `mapstructure:"burst" envconfig:"RATE_LIMIT_BURST"`
}

// AdminConfig seeds the first admin account on an empty database.
type AdminConfig struct {
	Username string `mapstructure:"username" envconfig:"ADMIN_USERNAME"`
	Password string `mapstructure:"password" envconfig:"ADMIN_PASSWORD"`
}

// Load reads config.yml (optional) and then applies CLINICA_* environment
// overrides on top.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := envconfig.Process("clinica", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment overrides: %w", err)
	}

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.timeout_seconds", 30)
	viper.SetDefault("database.path", "data/clinica.db")
	viper.SetDefault("jwt.expiry_hours", 720)
	viper.SetDefault("uploads.dir", "data/uploads")
	viper.SetDefault("backup.dir", "data/backups")
	viper.SetDefault("audit.retention_days", 365)
	viper.SetDefault("rate_limit.rps", 50)
	viper.SetDefault("rate_limit.burst", 100)
	viper.SetDefault("admin.username", "admin")
	viper.SetDefault("admin.password", "admin123")
}
