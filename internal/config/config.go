package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config application configuration
type Config struct {
	App      AppConfig      `yaml:"app"`
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	Payment  PaymentConfig  `yaml:"payment"`
}

// AppConfig general application settings
type AppConfig struct {
	Env     string `yaml:"env"`
	BaseURL string `yaml:"base_url"`
}

// ServerConfig HTTP server settings
type ServerConfig struct {
	Port         int      `yaml:"port"`
	AllowOrigins []string `yaml:"allow_origins"`
}

// DatabaseConfig MySQL settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// DSN builds the MySQL DSN string
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

// RedisConfig Redis settings
type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

// JWTConfig token settings
type JWTConfig struct {
	Secret             string `yaml:"secret"`
	AccessTTLMinutes   int    `yaml:"access_ttl_minutes"`
	RefreshTTLDays     int    `yaml:"refresh_ttl_days"`
}

// PaymentConfig payment gateway settings
type PaymentConfig struct {
	CallbackBaseURL string             `yaml:"callback_base_url"`
	OrangeMoney     OrangeMoneyConfig  `yaml:"orange_money"`
	Wave            WaveConfig         `yaml:"wave"`
}

// OrangeMoneyConfig Orange Money API credentials
type OrangeMoneyConfig struct {
	MerchantKey string `yaml:"merchant_key"`
	APIBaseURL  string `yaml:"api_base_url"`
	AuthHeader  string `yaml:"auth_header"`
	Sandbox     bool   `yaml:"sandbox"`
}

// WaveConfig Wave API credentials
type WaveConfig struct {
	APIKey     string `yaml:"api_key"`
	APIBaseURL string `yaml:"api_base_url"`
	Sandbox    bool   `yaml:"sandbox"`
}

// Load reads the YAML config file then applies environment overrides
func Load(path string) (*Config, error) {
	cfg := defaults()

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required (JWT_SECRET)")
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		App: AppConfig{
			Env:     "local",
			BaseURL: "http://localhost:8080",
		},
		Server: ServerConfig{
			Port:         8080,
			AllowOrigins: []string{"*"},
		},
		Database: DatabaseConfig{
			Host: "localhost",
			Port: 3306,
			User: "agrobissau",
			Name: "agrobissau",
		},
		Redis: RedisConfig{
			Host:     "localhost",
			Port:     6379,
			PoolSize: 10,
		},
		JWT: JWTConfig{
			AccessTTLMinutes: 30,
			RefreshTTLDays:   14,
		},
	}
}

// applyEnvOverrides lets environment variables win over YAML values
func applyEnvOverrides(cfg *Config) {
	setString(&cfg.App.Env, "APP_ENV")
	setString(&cfg.App.BaseURL, "APP_BASE_URL")
	setInt(&cfg.Server.Port, "SERVER_PORT")
	setString(&cfg.Database.Host, "DB_HOST")
	setInt(&cfg.Database.Port, "DB_PORT")
	setString(&cfg.Database.User, "DB_USER")
	setString(&cfg.Database.Password, "DB_PASSWORD")
	setString(&cfg.Database.Name, "DB_NAME")
	setString(&cfg.Redis.Host, "REDIS_HOST")
	setInt(&cfg.Redis.Port, "REDIS_PORT")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")
	setString(&cfg.JWT.Secret, "JWT_SECRET")
	setString(&cfg.Payment.CallbackBaseURL, "PAYMENT_CALLBACK_BASE_URL")
	setString(&cfg.Payment.OrangeMoney.MerchantKey, "ORANGE_MONEY_MERCHANT_KEY")
	setString(&cfg.Payment.OrangeMoney.AuthHeader, "ORANGE_MONEY_AUTH_HEADER")
	setString(&cfg.Payment.Wave.APIKey, "WAVE_API_KEY")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
